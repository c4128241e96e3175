package bindings

import (
	"sync"
	"sync/atomic"

	"github.com/tuneinsight/lattigo/v6/ring"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
	"github.com/tuneinsight/lattigo/v6/schemes/ckks"
)

// poolObj owns engine scratch space. Workspaces are cached per context
// inside the context itself and tagged with the pool generation, so
// clearing a pool only bumps its generation.
type poolObj struct {
	clearOnDestruction bool

	gen   atomic.Uint64
	refs  atomic.Int64
	count atomic.Int64
	bytes atomic.Int64
}

type poolRef struct {
	pool *poolObj
}

func (r *poolRef) release() {
	if r.pool.refs.Add(-1) == 0 && r.pool.clearOnDestruction {
		r.pool.reset()
	}
}

func (p *poolObj) reset() {
	p.gen.Add(1)
	p.count.Store(0)
	p.bytes.Store(0)
}

var globalPool = &poolObj{}

func newPoolRef(p *poolObj) Handle {
	p.refs.Add(1)
	return put(&poolRef{pool: p})
}

// PoolGlobal returns a new handle to the process-wide pool.
func PoolGlobal() Handle { return newPoolRef(globalPool) }

// PoolNew returns a handle to a new private pool.
func PoolNew(clearOnDestruction bool) Handle {
	return newPoolRef(&poolObj{clearOnDestruction: clearOnDestruction})
}

// PoolShare returns a second handle to the pool behind h.
func PoolShare(h Handle) (Handle, error) {
	r, err := get[*poolRef](h)
	if err != nil {
		return 0, err
	}
	return newPoolRef(r.pool), nil
}

func lookupPool(h Handle) (*poolObj, error) {
	if h == 0 {
		return globalPool, nil
	}
	r, err := get[*poolRef](h)
	if err != nil {
		return nil, err
	}
	return r.pool, nil
}

func PoolAllocByteCount(h Handle) (int64, error) {
	p, err := lookupPool(h)
	if err != nil {
		return 0, err
	}
	return p.bytes.Load(), nil
}

func PoolCount(h Handle) (int64, error) {
	p, err := lookupPool(h)
	if err != nil {
		return 0, err
	}
	return p.count.Load(), nil
}

// PoolUseCount returns the number of handles sharing the pool.
func PoolUseCount(h Handle) (int64, error) {
	p, err := lookupPool(h)
	if err != nil {
		return 0, err
	}
	return p.refs.Load(), nil
}

func PoolIsInitialized(h Handle) bool {
	_, err := get[*poolRef](h)
	return err == nil
}

// PoolClear drops every workspace owned by the pool.
func PoolClear(h Handle) error {
	p, err := lookupPool(h)
	if err != nil {
		return err
	}
	p.reset()
	return nil
}

// workspace pairs the context's shared engine objects with the buffers a
// single call writes to. A workspace is used by one call at a time.
type workspace struct {
	bgvEnc   *bgv.Encoder
	bgvEval  *bgv.Evaluator
	ckksEnc  *ckks.Encoder
	ckksEval *ckks.Evaluator
	bufT     ring.Poly
}

type scratch struct {
	gen  uint64
	pool sync.Pool
}

// newWorkspace hands out the engine objects built once per context. The
// engine allows concurrent calls on one evaluator, so only bufT is private.
func (c *contextObj) newWorkspace() *workspace {
	c.protoOnce.Do(func() {
		c.proto = c.buildWorkspace()
	})
	w := *c.proto
	if c.scheme().batched() {
		w.bufT = c.bgv.RingT().NewPoly()
	}
	return &w
}

func (c *contextObj) buildWorkspace() *workspace {
	w := &workspace{}
	switch c.scheme() {
	case SchemeBFV:
		w.bgvEval = bgv.NewEvaluator(c.bgv, nil, true)
		w.bgvEnc = bgv.NewEncoder(c.bgv)
	case SchemeBGV:
		w.bgvEval = bgv.NewEvaluator(c.bgv, nil)
		w.bgvEnc = bgv.NewEncoder(c.bgv)
	case SchemeCKKS:
		w.ckksEval = ckks.NewEvaluator(c.ckks, nil)
		w.ckksEnc = ckks.NewEncoder(c.ckks)
	}
	return w
}

// workspaceBytes estimates the buffer footprint of one workspace: a handful
// of polynomials at the key level.
func (c *contextObj) workspaceBytes() int64 {
	n := int64(c.parms.PolyModulusDegree)
	return 12 * n * int64(len(c.parms.CoeffModulus)) * 8
}

// acquire takes a workspace for this context from pool p. The caller must
// hand it back with the returned function.
func (c *contextObj) acquire(p *poolObj) (*workspace, func()) {
	gen := p.gen.Load()

	v, _ := c.scratch.LoadOrStore(p, &scratch{gen: gen})
	s := v.(*scratch)
	if s.gen != gen {
		fresh := &scratch{gen: gen}
		if c.scratch.CompareAndSwap(p, s, fresh) {
			s = fresh
		} else {
			v, _ = c.scratch.Load(p)
			s = v.(*scratch)
		}
	}

	w, _ := s.pool.Get().(*workspace)
	if w == nil {
		w = c.newWorkspace()
		p.count.Add(1)
		p.bytes.Add(c.workspaceBytes())
	}
	return w, func() {
		if p.gen.Load() == s.gen {
			s.pool.Put(w)
		}
	}
}
