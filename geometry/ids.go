package geometry

import "sync/atomic"

// IDAllocator hands out object identities.  Ids start at 0, increase by one
// per call, and are never reused by the same allocator.  It is safe for
// concurrent use.
//
// The zero value is ready to use.
type IDAllocator struct {
	next atomic.Int32
}

func (a *IDAllocator) Next() int {
	return int(a.next.Add(1) - 1)
}
