package cursor

import (
	"testing"

	"github.com/gostdlib/base/context"
)

func TestPool(t *testing.T) {
	ctx := context.Background()

	c := Get(ctx, requestSchema, requestPayload())
	if _, err := c.Int64(0); err != nil {
		t.Fatalf("TestPool: got err == %s", err)
	}
	if _, err := c.Bool(2); err != nil {
		t.Fatalf("TestPool: got err == %s", err)
	}
	c.Release(ctx)

	// Whatever the pool hands back must start from an empty cache.
	c = Get(ctx, mixedSchema, mixedPayload(), WithPointerSize(4))
	defer c.Release(ctx)

	if c.hwm != 0 || c.Scans() != 0 {
		t.Errorf("TestPool: got hwm %d scans %d from pool, want 0 0", c.hwm, c.Scans())
	}
	if len(c.offsets) != mixedSchema.Len()+1 {
		t.Errorf("TestPool: got %d offset slots, want %d", len(c.offsets), mixedSchema.Len()+1)
	}
	for i := 1; i < len(c.offsets); i++ {
		if c.offsets[i] != unresolved {
			t.Errorf("TestPool: slot %d = %d, want unresolved", i, c.offsets[i])
		}
	}
	if s, err := c.String(3); err != nil || s != "dee" {
		t.Errorf("TestPool: String(3) = (%q, %v), want (\"dee\", nil)", s, err)
	}

	var nilCursor *Cursor
	nilCursor.Release(ctx)
}
