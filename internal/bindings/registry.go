package bindings

import (
	"sync"
)

// Handle is an opaque identifier for an object owned by the engine.
type Handle uintptr

// releaser is implemented by objects that scrub or return memory when their
// handle is deleted.
type releaser interface {
	release()
}

var (
	mu   sync.Mutex
	next Handle = 1
	reg         = map[Handle]any{}
)

func put(v any) Handle {
	mu.Lock()
	h := next
	next++
	reg[h] = v
	mu.Unlock()
	return h
}

// swap replaces the object stored under h. It is used by load paths that
// rebuild an object in place.
func swap(h Handle, v any) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := reg[h]; !ok {
		return CodeInvalidHandle
	}
	reg[h] = v
	return nil
}

func get[T any](h Handle) (T, error) {
	var zero T
	if h == 0 {
		return zero, CodeInvalidHandle
	}
	mu.Lock()
	v, ok := reg[h]
	mu.Unlock()
	if !ok {
		return zero, CodeInvalidHandle
	}
	t, ok := v.(T)
	if !ok {
		return zero, CodeTypeMismatch
	}
	return t, nil
}

// Delete releases the object behind h. Deleting the empty handle or a handle
// that was already deleted is a no-op.
func Delete(h Handle) {
	if h == 0 {
		return
	}
	mu.Lock()
	v, ok := reg[h]
	delete(reg, h)
	mu.Unlock()
	if !ok {
		return
	}
	if r, ok := v.(releaser); ok {
		r.release()
	}
}

// Valid reports whether h currently names a live object.
func Valid(h Handle) bool {
	if h == 0 {
		return false
	}
	mu.Lock()
	_, ok := reg[h]
	mu.Unlock()
	return ok
}

// Live returns the number of live handles.
func Live() int {
	mu.Lock()
	n := len(reg)
	mu.Unlock()
	return n
}
