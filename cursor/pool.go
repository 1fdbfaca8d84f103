package cursor

import (
	"github.com/gostdlib/base/concurrency/sync"
	"github.com/gostdlib/base/context"

	"github.com/bearlytools/tracefield/mapping"
)

// cursorPool lets an event callback get a Cursor without allocating its offset cache.
var cursorPool = sync.NewPool[*Cursor](
	context.Background(),
	"cursor.Cursor",
	func() *Cursor {
		return &Cursor{offsets: make([]int, 0, 32)}
	},
)

// Get returns a pooled Cursor bound to s and buf. Call Release when the payload has been
// decoded.
func Get(ctx context.Context, s *mapping.Schema, buf []byte, options ...Option) *Cursor {
	c := cursorPool.Get(ctx)
	c.Bind(s, buf, options...)
	return c
}

// Release returns the Cursor to the pool. The Cursor must not be used after calling Release.
func (c *Cursor) Release(ctx context.Context) {
	if c == nil {
		return
	}
	cursorPool.Put(ctx, c)
}
