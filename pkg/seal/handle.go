package seal

import (
	"runtime"

	"github.com/s0l0ist/sealgo/internal/bindings"
)

// Handle is the opaque engine identifier behind every wrapped object. The
// zero Handle is empty.
type Handle = bindings.Handle

// handle is embedded by every wrapped type.
//
// Objects own their handle: Delete releases it and the owning Go value
// becomes empty. A finalizer calls Delete as a safety net, but callers
// should Delete explicitly, preferably with defer.
type handle struct {
	h Handle
}

// Instance returns the engine handle. It stays owned by the receiver.
func (x *handle) Instance() Handle { return x.h }

// UnsafeInject releases the current handle and adopts h without checking
// what it refers to. Calls made with a handle of the wrong kind fail with
// ErrTypeMismatch.
func (x *handle) UnsafeInject(h Handle) {
	if x.h != h {
		bindings.Delete(x.h)
	}
	x.h = h
}

// Delete releases the handle. It is safe to call Delete more than once.
func (x *handle) Delete() {
	bindings.Delete(x.h)
	x.h = 0
}

// adopt takes the handle of src, leaving src empty.
func (x *handle) adopt(src *handle) {
	if x == src {
		return
	}
	x.UnsafeInject(src.h)
	src.h = 0
}

type deleter interface{ Delete() }

// track arms the finalizer of a freshly wrapped object.
func track[T deleter](v T) T {
	runtime.SetFinalizer(v, func(v T) { v.Delete() })
	return v
}
