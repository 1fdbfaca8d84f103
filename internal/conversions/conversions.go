// Package conversions holds unsafe conversions used on hot decode paths.
package conversions

import (
	"unsafe"
)

// ByteSlice2String converts bs to a string without copying. bs must not be modified, or
// used at all, after this call. Use it only on a slice the caller just allocated.
func ByteSlice2String(bs []byte) string {
	if len(bs) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(bs), len(bs))
}
