package bindings

import (
	"sync"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
)

type keygenObj struct {
	ctx *contextObj

	mu   sync.Mutex
	kgen *rlwe.KeyGenerator
	sk   *rlwe.SecretKey
}

func (o *keygenObj) release() {
	if o.sk != nil {
		scrubPoly(o.sk.Value.Q)
		scrubPoly(o.sk.Value.P)
		o.sk = nil
	}
}

// NewKeyGenerator creates a key generator. If skH is 0 a fresh secret key is
// sampled; otherwise a copy of the given key is used.
func NewKeyGenerator(ctxH, skH Handle) (h Handle, err error) {
	defer guard(&err)

	c, err := lookupSetContext(ctxH)
	if err != nil {
		return 0, err
	}
	o := &keygenObj{ctx: c, kgen: rlwe.NewKeyGenerator(c.rlwe)}
	if skH == 0 {
		o.sk = o.kgen.GenSecretKeyNew()
	} else {
		sk, err := lookupSecretKey(skH, c)
		if err != nil {
			return 0, err
		}
		if sk.Value.Q.N() != c.n() || sk.LevelQ() != c.rlwe.MaxLevelQ() || sk.LevelP() != c.rlwe.MaxLevelP() {
			return 0, raise(CodeInvalidArgument, "secret key is not valid for encryption parameters")
		}
		o.sk = sk.CopyNew()
	}
	return put(o), nil
}

func lookupKeygen(h Handle) (*keygenObj, error) {
	return get[*keygenObj](h)
}

// KeygenSecretKey returns a new handle holding a copy of the secret key.
func KeygenSecretKey(h Handle) (Handle, error) {
	o, err := lookupKeygen(h)
	if err != nil {
		return 0, err
	}
	return put(&secretKeyObj{ctx: o.ctx, sk: o.sk.CopyNew()}), nil
}

func KeygenCreatePublicKey(h Handle) (out Handle, err error) {
	defer guard(&err)

	o, err := lookupKeygen(h)
	if err != nil {
		return 0, err
	}
	o.mu.Lock()
	pk := o.kgen.GenPublicKeyNew(o.sk)
	o.mu.Unlock()
	return put(&publicKeyObj{ctx: o.ctx, pk: pk}), nil
}

func (o *keygenObj) requireKeyswitching() error {
	if o.ctx.key == o.ctx.first {
		return raise(CodeInvalidArgument, "keyswitching is not supported by the context")
	}
	return nil
}

func KeygenCreateRelinKeys(h Handle) (out Handle, err error) {
	defer guard(&err)

	o, err := lookupKeygen(h)
	if err != nil {
		return 0, err
	}
	if err := o.requireKeyswitching(); err != nil {
		return 0, err
	}
	o.mu.Lock()
	rlk := o.kgen.GenRelinearizationKeyNew(o.sk)
	o.mu.Unlock()
	return put(&relinKeysObj{ctx: o.ctx, rlk: rlk}), nil
}

// GaloisElementsFromSteps maps rotation steps to Galois elements. An empty
// list selects every power-of-two step in both directions plus the row swap;
// step 0 stands for the row swap itself.
func GaloisElementsFromSteps(ctxH Handle, steps []int) (els []uint64, err error) {
	defer guard(&err)

	c, err := lookupSetContext(ctxH)
	if err != nil {
		return nil, err
	}
	return c.galoisElements(steps), nil
}

func (c *contextObj) galoisElements(steps []int) []uint64 {
	if len(steps) == 0 {
		half := c.n() / 2
		for k := 1; k < half; k <<= 1 {
			steps = append(steps, k, -k)
		}
		steps = append(steps, 0)
	}
	seen := map[uint64]bool{}
	var els []uint64
	for _, k := range steps {
		g := c.galoisElement(k)
		if !seen[g] {
			seen[g] = true
			els = append(els, g)
		}
	}
	return els
}

func (c *contextObj) galoisElement(step int) uint64 {
	if step == 0 {
		return c.rlwe.GaloisElementOrderTwoOrthogonalSubgroup()
	}
	return c.rlwe.GaloisElement(step)
}

func (c *contextObj) checkGaloisElement(galEl uint64) error {
	if galEl&1 == 0 || galEl < 1 || galEl >= 2*uint64(c.n()) {
		return raise(CodeInvalidArgument, "Galois element %d is not valid", galEl)
	}
	return nil
}

// KeygenCreateGaloisKeys generates one key per Galois element.
func KeygenCreateGaloisKeys(h Handle, galEls []uint64) (out Handle, err error) {
	defer guard(&err)

	o, err := lookupKeygen(h)
	if err != nil {
		return 0, err
	}
	if err := o.requireKeyswitching(); err != nil {
		return 0, err
	}
	for _, g := range galEls {
		if err := o.ctx.checkGaloisElement(g); err != nil {
			return 0, err
		}
	}

	keys := make(map[uint64]*rlwe.GaloisKey, len(galEls))
	o.mu.Lock()
	for _, gk := range o.kgen.GenGaloisKeysNew(galEls, o.sk) {
		keys[gk.GaloisElement] = gk
	}
	o.mu.Unlock()
	return put(&galoisKeysObj{ctx: o.ctx, keys: keys}), nil
}
