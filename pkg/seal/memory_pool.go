package seal

import "github.com/s0l0ist/sealgo/internal/bindings"

// MemoryPoolHandle refers to a pool of engine scratch space. Encoders,
// evaluators and decryptors draw their temporary buffers from the pool they
// are bound to. Several handles may share one pool.
type MemoryPoolHandle struct {
	handle
}

// MemoryPoolGlobal returns a handle to the process-wide pool.
func MemoryPoolGlobal() *MemoryPoolHandle {
	return track(&MemoryPoolHandle{handle{bindings.PoolGlobal()}})
}

// MemoryPoolThreadLocal returns a handle to a new private pool. Goroutines
// are not pinned to threads, so the pool is local to whoever holds it.
func MemoryPoolThreadLocal() *MemoryPoolHandle {
	return MemoryPoolNew(false)
}

// MemoryPoolNew returns a handle to a new pool. With clearOnDestruction the
// scratch space is dropped when the last handle is deleted.
func MemoryPoolNew(clearOnDestruction bool) *MemoryPoolHandle {
	return track(&MemoryPoolHandle{handle{bindings.PoolNew(clearOnDestruction)}})
}

// Share returns another handle to the same pool.
func (p *MemoryPoolHandle) Share() (*MemoryPoolHandle, error) {
	h, err := bindings.PoolShare(p.h)
	if err != nil {
		return nil, translate(err)
	}
	return track(&MemoryPoolHandle{handle{h}}), nil
}

// AllocByteCount estimates the bytes of scratch space held by the pool.
func (p *MemoryPoolHandle) AllocByteCount() (int64, error) {
	n, err := bindings.PoolAllocByteCount(p.h)
	return n, translate(err)
}

// PoolCount returns the number of scratch workspaces allocated.
func (p *MemoryPoolHandle) PoolCount() (int64, error) {
	n, err := bindings.PoolCount(p.h)
	return n, translate(err)
}

// UseCount returns the number of handles sharing the pool.
func (p *MemoryPoolHandle) UseCount() (int64, error) {
	n, err := bindings.PoolUseCount(p.h)
	return n, translate(err)
}

func (p *MemoryPoolHandle) IsInitialized() bool {
	return bindings.PoolIsInitialized(p.h)
}

// Clear drops the scratch space of the pool.
func (p *MemoryPoolHandle) Clear() error {
	return translate(bindings.PoolClear(p.h))
}
