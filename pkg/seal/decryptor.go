package seal

import "github.com/s0l0ist/sealgo/internal/bindings"

// Decryptor decrypts ciphertexts with a secret key.
type Decryptor struct {
	handle
	ctx *Context
	sk  *SecretKey
}

// NewDecryptor creates a decryptor bound to the default memory pool.
func NewDecryptor(ctx *Context, sk *SecretKey) (*Decryptor, error) {
	return newDecryptor(ctx, sk, nil)
}

func newDecryptor(ctx *Context, sk *SecretKey, pool *MemoryPoolHandle) (*Decryptor, error) {
	if ctx == nil || sk == nil {
		return nil, ErrInvalidHandle
	}
	poolH, err := poolOf(pool)
	if err != nil {
		return nil, err
	}
	h, err := bindings.NewDecryptor(ctx.h, sk.h, poolH)
	if err != nil {
		return nil, translate(err)
	}
	return track(&Decryptor{handle: handle{h}, ctx: ctx, sk: sk}), nil
}

// WithPool returns a new decryptor for the same key drawing scratch space
// from pool.
func (d *Decryptor) WithPool(pool *MemoryPoolHandle) (*Decryptor, error) {
	return newDecryptor(d.ctx, d.sk, pool)
}

// Decrypt writes the plaintext of ct into dst. For BFV and BGV the result
// can be decoded by a BatchEncoder; for CKKS it is an NTT-form plaintext at
// the ciphertext level.
func (d *Decryptor) Decrypt(ct *CipherText, dst *PlainText) error {
	return translate(bindings.Decrypt(d.h, ct.h, dst.h))
}

func (d *Decryptor) DecryptNew(ct *CipherText) (*PlainText, error) {
	dst, err := newPlain()
	if err != nil {
		return nil, err
	}
	if err := d.Decrypt(ct, dst); err != nil {
		dst.Delete()
		return nil, err
	}
	return dst, nil
}

// InvariantNoiseBudget returns the bits of noise headroom left in ct, or 0
// once it no longer decrypts correctly. CKKS fails with ErrSchemeMismatch.
func (d *Decryptor) InvariantNoiseBudget(ct *CipherText) (int, error) {
	n, err := bindings.InvariantNoiseBudget(d.h, ct.h)
	return n, translate(err)
}
