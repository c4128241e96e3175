package seal

import "github.com/s0l0ist/sealgo/internal/bindings"

// SecretKey is the secret key of a Context. Its coefficients are scrubbed
// when the handle is deleted.
//
// Memory Management:
// Keys must be explicitly freed by calling Delete when no longer needed.
// A finalizer is set as a safety net, but relying on it keeps secret
// material in memory for longer than necessary.
type SecretKey struct {
	handle
}

// PublicKey encrypts without revealing the secret key.
type PublicKey struct {
	handle
}

// RelinKeys reduce a size 3 ciphertext back to size 2.
type RelinKeys struct {
	handle
}

// GaloisKeys enable rotations, one key per Galois element.
type GaloisKeys struct {
	handle
}

func newKey(ctx *Context, fn func(Handle) (Handle, error)) (Handle, error) {
	if ctx == nil {
		return 0, ErrInvalidHandle
	}
	h, err := fn(ctx.h)
	return h, translate(err)
}

// NewSecretKey returns an empty secret key, to be filled by Load or Copy.
func NewSecretKey(ctx *Context) (*SecretKey, error) {
	h, err := newKey(ctx, bindings.NewSecretKey)
	if err != nil {
		return nil, err
	}
	return track(&SecretKey{handle{h}}), nil
}

func NewPublicKey(ctx *Context) (*PublicKey, error) {
	h, err := newKey(ctx, bindings.NewPublicKey)
	if err != nil {
		return nil, err
	}
	return track(&PublicKey{handle{h}}), nil
}

func NewRelinKeys(ctx *Context) (*RelinKeys, error) {
	h, err := newKey(ctx, bindings.NewRelinKeys)
	if err != nil {
		return nil, err
	}
	return track(&RelinKeys{handle{h}}), nil
}

func NewGaloisKeys(ctx *Context) (*GaloisKeys, error) {
	h, err := newKey(ctx, bindings.NewGaloisKeys)
	if err != nil {
		return nil, err
	}
	return track(&GaloisKeys{handle{h}}), nil
}

func cloneKey(h Handle) (Handle, error) {
	out, err := bindings.KeyClone(h)
	return out, translate(err)
}

func moveKey(dst, src *handle) error {
	if !bindings.Valid(src.h) {
		return ErrInvalidHandle
	}
	dst.adopt(src)
	return nil
}

// Save returns the base64 form of SaveArray. The intermediate binary form
// is zeroized; the returned string is not.
func (k *SecretKey) Save(mode ...ComprModeType) (string, error) {
	return saveString(k.h, mode)
}

// SaveArray serializes the key. Callers should ZeroizeBytes the result once
// it is stored.
func (k *SecretKey) SaveArray(mode ...ComprModeType) ([]byte, error) {
	return saveArray(k.h, mode)
}

func (k *SecretKey) Load(ctx *Context, s string) error       { return loadString(ctx, k.h, s) }
func (k *SecretKey) LoadArray(ctx *Context, b []byte) error  { return loadArray(ctx, k.h, b) }
func (k *SecretKey) Copy(src *SecretKey) error               { return translate(bindings.KeyCopy(k.h, src.h)) }
func (k *SecretKey) Move(src *SecretKey) error               { return moveKey(&k.handle, &src.handle) }
func (k *PublicKey) Load(ctx *Context, s string) error       { return loadString(ctx, k.h, s) }
func (k *PublicKey) LoadArray(ctx *Context, b []byte) error  { return loadArray(ctx, k.h, b) }
func (k *PublicKey) Copy(src *PublicKey) error               { return translate(bindings.KeyCopy(k.h, src.h)) }
func (k *PublicKey) Move(src *PublicKey) error               { return moveKey(&k.handle, &src.handle) }
func (k *RelinKeys) Load(ctx *Context, s string) error       { return loadString(ctx, k.h, s) }
func (k *RelinKeys) LoadArray(ctx *Context, b []byte) error  { return loadArray(ctx, k.h, b) }
func (k *RelinKeys) Copy(src *RelinKeys) error               { return translate(bindings.KeyCopy(k.h, src.h)) }
func (k *RelinKeys) Move(src *RelinKeys) error               { return moveKey(&k.handle, &src.handle) }
func (k *GaloisKeys) Load(ctx *Context, s string) error      { return loadString(ctx, k.h, s) }
func (k *GaloisKeys) LoadArray(ctx *Context, b []byte) error { return loadArray(ctx, k.h, b) }
func (k *GaloisKeys) Copy(src *GaloisKeys) error             { return translate(bindings.KeyCopy(k.h, src.h)) }
func (k *GaloisKeys) Move(src *GaloisKeys) error             { return moveKey(&k.handle, &src.handle) }

func (k *PublicKey) Save(mode ...ComprModeType) (string, error)      { return saveString(k.h, mode) }
func (k *PublicKey) SaveArray(mode ...ComprModeType) ([]byte, error) { return saveArray(k.h, mode) }
func (k *RelinKeys) Save(mode ...ComprModeType) (string, error)      { return saveString(k.h, mode) }
func (k *RelinKeys) SaveArray(mode ...ComprModeType) ([]byte, error) { return saveArray(k.h, mode) }
func (k *GaloisKeys) Save(mode ...ComprModeType) (string, error)     { return saveString(k.h, mode) }
func (k *GaloisKeys) SaveArray(mode ...ComprModeType) ([]byte, error) {
	return saveArray(k.h, mode)
}

func (k *SecretKey) Clone() (*SecretKey, error) {
	h, err := cloneKey(k.h)
	if err != nil {
		return nil, err
	}
	return track(&SecretKey{handle{h}}), nil
}

func (k *PublicKey) Clone() (*PublicKey, error) {
	h, err := cloneKey(k.h)
	if err != nil {
		return nil, err
	}
	return track(&PublicKey{handle{h}}), nil
}

func (k *RelinKeys) Clone() (*RelinKeys, error) {
	h, err := cloneKey(k.h)
	if err != nil {
		return nil, err
	}
	return track(&RelinKeys{handle{h}}), nil
}

func (k *GaloisKeys) Clone() (*GaloisKeys, error) {
	h, err := cloneKey(k.h)
	if err != nil {
		return nil, err
	}
	return track(&GaloisKeys{handle{h}}), nil
}

// Size returns the number of Galois elements with a key.
func (k *GaloisKeys) Size() (int, error) {
	n, err := bindings.GaloisKeysSize(k.h)
	return n, translate(err)
}

func (k *GaloisKeys) HasKey(galEl uint64) (bool, error) {
	ok, err := bindings.GaloisKeysHas(k.h, galEl)
	return ok, translate(err)
}

// GaloisElements returns the elements with a key, in increasing order.
func (k *GaloisKeys) GaloisElements() ([]uint64, error) {
	els, err := bindings.GaloisKeysElements(k.h)
	return els, translate(err)
}
