package seal

import (
	"context"

	"github.com/s0l0ist/sealgo/internal/bindings"
	"github.com/s0l0ist/sealgo/pkg/seal/logging"
)

// KeyGenerator derives public, relinearization and Galois keys from one
// secret key. It is safe for concurrent use.
type KeyGenerator struct {
	handle
	ctx *Context
}

// NewKeyGenerator creates a key generator for ctx. A nil sk samples a new
// secret key; otherwise a copy of sk is used after checking that it belongs
// to ctx.
func NewKeyGenerator(ctx *Context, sk *SecretKey) (*KeyGenerator, error) {
	if ctx == nil {
		return nil, ErrInvalidHandle
	}
	var skH Handle
	if sk != nil {
		if sk.h == 0 {
			return nil, ErrInvalidHandle
		}
		skH = sk.h
	}
	h, err := bindings.NewKeyGenerator(ctx.h, skH)
	if err != nil {
		return nil, translate(err)
	}
	if sk == nil {
		currentLogger().Debug(context.Background(), "secret key generated", logging.Redacted("secret_key"))
	}
	return track(&KeyGenerator{handle: handle{h}, ctx: ctx}), nil
}

// SecretKey returns a copy of the secret key.
func (g *KeyGenerator) SecretKey() (*SecretKey, error) {
	h, err := bindings.KeygenSecretKey(g.h)
	if err != nil {
		return nil, translate(err)
	}
	return track(&SecretKey{handle{h}}), nil
}

// CreatePublicKey samples a fresh public key. Every call returns a
// different key for the same secret key.
func (g *KeyGenerator) CreatePublicKey() (*PublicKey, error) {
	h, err := bindings.KeygenCreatePublicKey(g.h)
	if err != nil {
		return nil, translate(err)
	}
	return track(&PublicKey{handle{h}}), nil
}

// PublicKey returns a fresh public key.
//
// Deprecated: use CreatePublicKey.
func (g *KeyGenerator) PublicKey() (*PublicKey, error) {
	currentLogger().Warn(context.Background(), "KeyGenerator.PublicKey is deprecated, use CreatePublicKey")
	return g.CreatePublicKey()
}

// CreateRelinKeys fails with ErrInvalidArgument when the context has no
// special prime.
func (g *KeyGenerator) CreateRelinKeys() (*RelinKeys, error) {
	h, err := bindings.KeygenCreateRelinKeys(g.h)
	if err != nil {
		return nil, translate(err)
	}
	return track(&RelinKeys{handle{h}}), nil
}

// CreateGaloisKeys generates keys for the given rotation steps. Step 0
// stands for the row swap (BFV, BGV) or the complex conjugation (CKKS). An
// empty list selects every power-of-two step in both directions plus that
// element.
func (g *KeyGenerator) CreateGaloisKeys(steps []int) (*GaloisKeys, error) {
	els, err := bindings.GaloisElementsFromSteps(g.ctx.h, steps)
	if err != nil {
		return nil, translate(err)
	}
	return g.CreateGaloisKeysFromElements(els)
}

// CreateGaloisKeysFromElements generates one key per Galois element. Each
// element must be odd and below 2N.
func (g *KeyGenerator) CreateGaloisKeysFromElements(galEls []uint64) (*GaloisKeys, error) {
	h, err := bindings.KeygenCreateGaloisKeys(g.h, galEls)
	if err != nil {
		return nil, translate(err)
	}
	return track(&GaloisKeys{handle{h}}), nil
}

// GaloisElements maps rotation steps to the Galois elements used by
// CreateGaloisKeys.
func GaloisElements(ctx *Context, steps []int) ([]uint64, error) {
	if ctx == nil {
		return nil, ErrInvalidHandle
	}
	els, err := bindings.GaloisElementsFromSteps(ctx.h, steps)
	return els, translate(err)
}
