package mapping

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/bearlytools/tracefield/errors"
)

// ErrUnknownSchema is returned by Registry.Lookup when no usable schema is registered.
var ErrUnknownSchema = errors.New("unknown schema")

// Registry maps events to their schemas. Lookups are lock free and safe for concurrent use.
// Registration is copy on write and is expected to happen at startup.
type Registry struct {
	// schemas holds the versions of each event sorted ascending by Version.
	schemas atomic.Pointer[map[Key][]*Schema]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	m := map[Key][]*Schema{}
	r := &Registry{}
	r.schemas.Store(&m)
	return r
}

// Register validates s and adds it to the Registry. Registering the same provider, id and
// version twice is an error.
func (r *Registry) Register(s *Schema) error {
	if s == nil {
		return errors.New("cannot register a nil Schema")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	for {
		old := r.schemas.Load()
		k := s.Key()
		versions := (*old)[k]
		i, found := slices.BinarySearchFunc(versions, s.Version, func(e *Schema, v uint8) int {
			return int(e.Version) - int(v)
		})
		if found {
			return fmt.Errorf("schema %s is already registered", s)
		}

		nv := make([]*Schema, 0, len(versions)+1)
		nv = append(nv, versions[:i]...)
		nv = append(nv, s)
		nv = append(nv, versions[i:]...)

		newMap := maps.Clone(*old)
		newMap[k] = nv
		if r.schemas.CompareAndSwap(old, &newMap) {
			return nil
		}
	}
}

// MustRegister is Register but panics on error.
func (r *Registry) MustRegister(schemas ...*Schema) {
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
}

// Lookup finds the schema for an event. If the exact version is not registered, the newest
// registered version below it is returned: newer emitters only append fields, so an older
// field list still decodes a prefix of the payload. Versions newer than the requested one
// are never used because the payload would be missing their trailing fields.
func (r *Registry) Lookup(provider string, id uint16, version uint8) (*Schema, error) {
	k := Key{Provider: provider, ID: id}
	versions := (*r.schemas.Load())[k]
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, k)
	}

	i, found := slices.BinarySearchFunc(versions, version, func(e *Schema, v uint8) int {
		return int(e.Version) - int(v)
	})
	if found {
		return versions[i], nil
	}
	if i == 0 {
		return nil, fmt.Errorf("%w: %s has no version <= %d, lowest is %d", ErrUnknownSchema, k, version, versions[0].Version)
	}
	return versions[i-1], nil
}

// Versions returns the registered versions of an event in ascending order.
func (r *Registry) Versions(provider string, id uint16) []uint8 {
	versions := (*r.schemas.Load())[Key{Provider: provider, ID: id}]
	out := make([]uint8, 0, len(versions))
	for _, s := range versions {
		out = append(out, s.Version)
	}
	return out
}

// Len returns the number of registered schemas, counting each version.
func (r *Registry) Len() int {
	n := 0
	for _, v := range *r.schemas.Load() {
		n += len(v)
	}
	return n
}
