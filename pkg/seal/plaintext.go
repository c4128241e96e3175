package seal

import "github.com/s0l0ist/sealgo/internal/bindings"

// PlainText holds an encoded polynomial.
//
// An integer plaintext produced by a BatchEncoder holds N coefficients
// modulo the plain modulus and carries ParmsIdZero. NTT-form plaintexts,
// produced by the CKKSEncoder or by Evaluator.PlainTransformToNTT, hold one
// residue block per prime of their level and carry the ParmsId of that
// level.
type PlainText struct {
	handle
}

// PlainTextParams pre-sizes a new PlainText.
type PlainTextParams struct {
	// Capacity is the number of coefficients allocated up front.
	Capacity int
	// CoeffCount is the number of zero coefficients the plaintext starts
	// with. Capacity is raised to it if smaller.
	CoeffCount int
}

// NewPlainText allocates a plaintext. A nil p creates an empty one.
func NewPlainText(p *PlainTextParams) (*PlainText, error) {
	if p == nil {
		p = &PlainTextParams{}
	}
	h, err := bindings.NewPlainText(p.Capacity, p.CoeffCount)
	if err != nil {
		return nil, translate(err)
	}
	return track(&PlainText{handle{h}}), nil
}

func newPlain() (*PlainText, error) { return NewPlainText(nil) }

func (p *PlainText) CoeffCount() (int, error) {
	n, err := bindings.PlainCoeffCount(p.h)
	return n, translate(err)
}

func (p *PlainText) Capacity() (int, error) {
	n, err := bindings.PlainCapacity(p.h)
	return n, translate(err)
}

// IsZero reports whether every coefficient is zero.
func (p *PlainText) IsZero() (bool, error) {
	ok, err := bindings.PlainIsZero(p.h)
	return ok, translate(err)
}

func (p *PlainText) IsNTTForm() (bool, error) {
	ok, err := bindings.PlainIsNTTForm(p.h)
	return ok, translate(err)
}

func (p *PlainText) ParmsId() (ParmsId, error) {
	id, err := bindings.PlainParmsId(p.h)
	return id, translate(err)
}

// Scale is only meaningful for CKKS plaintexts.
func (p *PlainText) Scale() (float64, error) {
	s, err := bindings.PlainScale(p.h)
	return s, translate(err)
}

func (p *PlainText) SetScale(scale float64) error {
	return translate(bindings.PlainSetScale(p.h, scale))
}

func (p *PlainText) Coefficient(i int) (uint64, error) {
	v, err := bindings.PlainCoefficient(p.h, i)
	return v, translate(err)
}

func (p *PlainText) SetCoefficient(i int, v uint64) error {
	return translate(bindings.PlainSetCoefficient(p.h, i, v))
}

func (p *PlainText) NonZeroCoeffCount() (int, error) {
	n, err := bindings.PlainNonZeroCoeffCount(p.h)
	return n, translate(err)
}

// SignificantCoeffCount returns the index of the highest non-zero
// coefficient plus one.
func (p *PlainText) SignificantCoeffCount() (int, error) {
	n, err := bindings.PlainSignificantCoeffCount(p.h)
	return n, translate(err)
}

// ToPolynomial renders a non-NTT plaintext as a polynomial with hexadecimal
// coefficients, highest degree first, e.g. "7FFx^3 + 1x^1 + 3".
func (p *PlainText) ToPolynomial() (string, error) {
	s, err := bindings.PlainToPolynomial(p.h)
	return s, translate(err)
}

// FromPolynomial replaces the coefficients with those of poly, in the
// format produced by ToPolynomial.
func (p *PlainText) FromPolynomial(poly string) error {
	return translate(bindings.PlainFromPolynomial(p.h, poly))
}

func (p *PlainText) Reserve(capacity int) error {
	return translate(bindings.PlainReserve(p.h, capacity))
}

// Resize changes the coefficient count; new coefficients are zero.
func (p *PlainText) Resize(coeffCount int) error {
	return translate(bindings.PlainResize(p.h, coeffCount))
}

// Release frees the coefficients and resets every size to zero. The handle
// stays valid.
func (p *PlainText) Release() error {
	return translate(bindings.PlainRelease(p.h))
}

func (p *PlainText) SetZero() error {
	return translate(bindings.PlainSetZero(p.h))
}

// Save returns the base64 form of SaveArray.
func (p *PlainText) Save(mode ...ComprModeType) (string, error) {
	return saveString(p.h, mode)
}

// SaveArray serializes the plaintext. The compression mode defaults to the
// one set by Config.
func (p *PlainText) SaveArray(mode ...ComprModeType) ([]byte, error) {
	return saveArray(p.h, mode)
}

// Load replaces the plaintext with the output of Save, validated against
// ctx.
func (p *PlainText) Load(ctx *Context, s string) error {
	return loadString(ctx, p.h, s)
}

func (p *PlainText) LoadArray(ctx *Context, data []byte) error {
	return loadArray(ctx, p.h, data)
}

// Copy overwrites p with a deep copy of src.
func (p *PlainText) Copy(src *PlainText) error {
	return translate(bindings.PlainCopy(p.h, src.h))
}

// Clone returns an independent copy of p.
func (p *PlainText) Clone() (*PlainText, error) {
	h, err := bindings.PlainClone(p.h)
	if err != nil {
		return nil, translate(err)
	}
	return track(&PlainText{handle{h}}), nil
}

// Move transfers the handle of src to p. src is left empty and must not be
// used afterwards.
func (p *PlainText) Move(src *PlainText) error {
	if !bindings.Valid(src.h) {
		return ErrInvalidHandle
	}
	p.adopt(&src.handle)
	return nil
}
