package bindings

import (
	"math/big"
	"sync"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
)

type decryptorObj struct {
	ctx *contextObj

	pool *poolObj

	mu  sync.Mutex
	dec *rlwe.Decryptor
	key *rlwe.SecretKey
}

func (o *decryptorObj) release() {
	if o.key != nil {
		scrubPoly(o.key.Value.Q)
		scrubPoly(o.key.Value.P)
		o.key = nil
	}
}

// NewDecryptor creates a decryptor that takes scratch space from poolH, or
// from the global pool if poolH is 0.
func NewDecryptor(ctxH, skH, poolH Handle) (h Handle, err error) {
	defer guard(&err)

	c, err := lookupSetContext(ctxH)
	if err != nil {
		return 0, err
	}
	pool, err := lookupPool(poolH)
	if err != nil {
		return 0, err
	}
	sk, err := lookupSecretKey(skH, c)
	if err != nil {
		return 0, err
	}
	key := sk.CopyNew()
	return put(&decryptorObj{ctx: c, pool: pool, key: key, dec: rlwe.NewDecryptor(c.rlwe, key)}), nil
}

// phase decrypts ct without decoding: the result is c0 + c1*s + ... in
// NTT form at the ciphertext level, carrying the ciphertext metadata.
func (o *decryptorObj) phase(ctH Handle) (*rlwe.Plaintext, *chainNode, error) {
	src, err := lookupCipher(ctH)
	if err != nil {
		return nil, nil, err
	}
	c := o.ctx
	if err := c.validCipher(src); err != nil {
		return nil, nil, err
	}
	ct, err := src.engineIn()
	if err != nil {
		return nil, nil, err
	}
	node, err := c.nodeAtLevel(ct.Level())
	if err != nil {
		return nil, nil, err
	}
	pt := c.newEnginePlain(ct.Level())
	o.mu.Lock()
	o.dec.Decrypt(ct, pt)
	o.mu.Unlock()
	return pt, node, nil
}

// Decrypt writes the plaintext of ctH into dstH. Integer schemes produce N
// coefficients mod t; CKKS produces an NTT-form plaintext at the
// ciphertext level.
func Decrypt(h, ctH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := get[*decryptorObj](h)
	if err != nil {
		return err
	}
	dst, err := lookupPlain(dstH)
	if err != nil {
		return err
	}
	pt, node, err := o.phase(ctH)
	if err != nil {
		return err
	}

	c := o.ctx
	if c.scheme() == SchemeCKKS {
		c.storeNTT(dst, pt, node, pt.Scale.Float64())
		return nil
	}

	w, done := c.acquire(o.pool)
	defer done()
	c.lowerToRingT(w, pt)
	c.storeRingT(w, dst)
	return nil
}

// InvariantNoiseBudget returns the number of bits of noise headroom left in
// an integer-scheme ciphertext, or 0 if it can no longer be decrypted
// correctly.
func InvariantNoiseBudget(h, ctH Handle) (bits int, err error) {
	defer guard(&err)

	o, err := get[*decryptorObj](h)
	if err != nil {
		return 0, err
	}
	c := o.ctx
	if !c.scheme().batched() {
		return 0, raise(CodeSchemeMismatch, "unsupported scheme")
	}
	pt, node, err := o.phase(ctH)
	if err != nil {
		return 0, err
	}

	level := node.level
	ringQ := c.rlwe.RingQ().AtLevel(level)
	if pt.IsNTT {
		ringQ.INTT(pt.Value, pt.Value)
	}
	// t * phase = m + t*e mod Q; its norm measures the noise.
	ringQ.MulScalar(pt.Value, c.parms.PlainModulus, pt.Value)

	n := c.n()
	coeffs := make([]*big.Int, n)
	for i := range coeffs {
		coeffs[i] = new(big.Int)
	}
	ringQ.PolyToBigintCentered(pt.Value, 1, coeffs)

	norm := new(big.Int)
	abs := new(big.Int)
	for _, x := range coeffs {
		if abs.Abs(x).Cmp(norm) > 0 {
			norm.Set(abs)
		}
	}

	q := new(big.Int).SetUint64(1)
	for _, p := range node.primes {
		q.Mul(q, new(big.Int).SetUint64(p))
	}

	bits = q.BitLen() - norm.BitLen() - 1
	if bits < 0 {
		bits = 0
	}
	return bits, nil
}
