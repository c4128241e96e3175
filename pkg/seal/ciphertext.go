package seal

import "github.com/s0l0ist/sealgo/internal/bindings"

// CipherText is an encrypted polynomial vector bound to one level of a
// Context chain.
type CipherText struct {
	handle
}

// CipherTextParams positions a new CipherText in the chain.
type CipherTextParams struct {
	// ParmsId selects the level. ParmsIdZero selects the first data level.
	ParmsId ParmsId
	// SizeCapacity is the number of polynomials the ciphertext can hold
	// without growing. Zero selects 2.
	SizeCapacity int
}

// NewCipherText allocates an empty ciphertext under ctx. A nil p uses the
// first data level and a size capacity of 2.
func NewCipherText(ctx *Context, p *CipherTextParams) (*CipherText, error) {
	if ctx == nil {
		return nil, ErrInvalidHandle
	}
	if p == nil {
		p = &CipherTextParams{}
	}
	capacity := p.SizeCapacity
	if capacity == 0 {
		capacity = 2
	}
	h, err := bindings.NewCipherText(ctx.h, p.ParmsId, capacity)
	if err != nil {
		return nil, translate(err)
	}
	return track(&CipherText{handle{h}}), nil
}

// CoeffModulusSize returns the number of primes at the ciphertext level.
func (c *CipherText) CoeffModulusSize() (int, error) {
	n, err := bindings.CipherCoeffModulusSize(c.h)
	return n, translate(err)
}

func (c *CipherText) PolyModulusDegree() (int, error) {
	n, err := bindings.CipherPolyModulusDegree(c.h)
	return n, translate(err)
}

// Size returns the number of polynomials; a fresh encryption has size 2.
func (c *CipherText) Size() (int, error) {
	n, err := bindings.CipherSize(c.h)
	return n, translate(err)
}

func (c *CipherText) SizeCapacity() (int, error) {
	n, err := bindings.CipherSizeCapacity(c.h)
	return n, translate(err)
}

// IsTransparent reports whether the ciphertext would reveal its plaintext.
func (c *CipherText) IsTransparent() (bool, error) {
	ok, err := bindings.CipherIsTransparent(c.h)
	return ok, translate(err)
}

func (c *CipherText) IsNTTForm() (bool, error) {
	ok, err := bindings.CipherIsNTTForm(c.h)
	return ok, translate(err)
}

func (c *CipherText) ParmsId() (ParmsId, error) {
	id, err := bindings.CipherParmsId(c.h)
	return id, translate(err)
}

func (c *CipherText) Scale() (float64, error) {
	s, err := bindings.CipherScale(c.h)
	return s, translate(err)
}

// SetScale overrides the CKKS scale. Other schemes fail with
// ErrSchemeMismatch.
func (c *CipherText) SetScale(scale float64) error {
	return translate(bindings.CipherSetScale(c.h, scale))
}

func (c *CipherText) Reserve(capacity int) error {
	return translate(bindings.CipherReserve(c.h, capacity))
}

// Resize sets the number of polynomials, between 2 and 16.
func (c *CipherText) Resize(size int) error {
	return translate(bindings.CipherResize(c.h, size))
}

func (c *CipherText) Release() error {
	return translate(bindings.CipherRelease(c.h))
}

func (c *CipherText) Save(mode ...ComprModeType) (string, error) {
	return saveString(c.h, mode)
}

func (c *CipherText) SaveArray(mode ...ComprModeType) ([]byte, error) {
	return saveArray(c.h, mode)
}

// Load replaces the ciphertext with the output of Save, validated against
// ctx. Data saved under other parameters fails with ErrInvalidData.
func (c *CipherText) Load(ctx *Context, s string) error {
	return loadString(ctx, c.h, s)
}

func (c *CipherText) LoadArray(ctx *Context, data []byte) error {
	return loadArray(ctx, c.h, data)
}

func (c *CipherText) Copy(src *CipherText) error {
	return translate(bindings.CipherCopy(c.h, src.h))
}

func (c *CipherText) Clone() (*CipherText, error) {
	h, err := bindings.CipherClone(c.h)
	if err != nil {
		return nil, translate(err)
	}
	return track(&CipherText{handle{h}}), nil
}

// Move transfers the handle of src to c, leaving src empty.
func (c *CipherText) Move(src *CipherText) error {
	if !bindings.Valid(src.h) {
		return ErrInvalidHandle
	}
	c.adopt(&src.handle)
	return nil
}
