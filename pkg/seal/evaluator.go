package seal

import (
	"reflect"
	"runtime"

	"github.com/s0l0ist/sealgo/internal/bindings"
)

// Evaluator runs homomorphic operations on ciphertexts of one Context.
//
// Every operation comes in two shapes: Op writes its result into a
// caller-supplied destination, which may alias an operand, and OpNew
// allocates the destination and returns it. Both produce the same result.
//
// Which schemes an operation supports is decided by the engine; calling an
// operation the context scheme does not support fails with
// ErrSchemeMismatch. Failures are never retried.
//
// The Evaluator holds no per-call state and is safe for concurrent use on
// distinct destinations.
type Evaluator struct {
	handle
	ctx *Context
}

// NewEvaluator creates an evaluator bound to the default memory pool.
func NewEvaluator(ctx *Context) (*Evaluator, error) {
	return newEvaluator(ctx, nil)
}

func newEvaluator(ctx *Context, pool *MemoryPoolHandle) (*Evaluator, error) {
	if ctx == nil {
		return nil, ErrInvalidHandle
	}
	poolH, err := poolOf(pool)
	if err != nil {
		return nil, err
	}
	h, err := bindings.NewEvaluator(ctx.h, poolH)
	if err != nil {
		return nil, translate(err)
	}
	return track(&Evaluator{handle: handle{h}, ctx: ctx}), nil
}

// WithPool returns a new evaluator for the same context drawing scratch
// space from pool.
func (e *Evaluator) WithPool(pool *MemoryPoolHandle) (*Evaluator, error) {
	if e == nil {
		return nil, ErrInvalidHandle
	}
	return newEvaluator(e.ctx, pool)
}

// cipherNew allocates a destination and runs op into it.
func (e *Evaluator) cipherNew(op func(dst *CipherText) error) (*CipherText, error) {
	if e == nil {
		return nil, ErrInvalidHandle
	}
	dst, err := NewCipherText(e.ctx, nil)
	if err != nil {
		return nil, err
	}
	if err := op(dst); err != nil {
		dst.Delete()
		return nil, err
	}
	return dst, nil
}

func (e *Evaluator) plainNew(op func(dst *PlainText) error) (*PlainText, error) {
	if e == nil {
		return nil, ErrInvalidHandle
	}
	dst, err := newPlain()
	if err != nil {
		return nil, err
	}
	if err := op(dst); err != nil {
		dst.Delete()
		return nil, err
	}
	return dst, nil
}

// call runs op once every operand is set, translates its error and keeps
// the operands reachable until op returns.
func (e *Evaluator) call(op func() error, operands ...any) error {
	if e == nil {
		return ErrInvalidHandle
	}
	for _, x := range operands {
		if isNil(x) {
			return ErrInvalidHandle
		}
	}
	err := op()
	runtime.KeepAlive(e)
	runtime.KeepAlive(operands)
	return translate(err)
}

func isNil(x any) bool {
	if x == nil {
		return true
	}
	v := reflect.ValueOf(x)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Negate writes -a into dst.
func (e *Evaluator) Negate(a, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalNegate(e.h, a.h, dst.h) }, a, dst)
}

func (e *Evaluator) NegateNew(a *CipherText) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.Negate(a, dst) })
}

// Add writes a + b into dst. The operands must share a ParmsId and, for
// CKKS, a scale.
func (e *Evaluator) Add(a, b, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalAdd(e.h, a.h, b.h, dst.h) }, a, b, dst)
}

func (e *Evaluator) AddNew(a, b *CipherText) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.Add(a, b, dst) })
}

// Sub writes a - b into dst.
func (e *Evaluator) Sub(a, b, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalSub(e.h, a.h, b.h, dst.h) }, a, b, dst)
}

func (e *Evaluator) SubNew(a, b *CipherText) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.Sub(a, b, dst) })
}

// Multiply writes a * b into dst. Both operands must have size 2; the
// result has size 3 and should be relinearized.
func (e *Evaluator) Multiply(a, b, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalMultiply(e.h, a.h, b.h, dst.h) }, a, b, dst)
}

func (e *Evaluator) MultiplyNew(a, b *CipherText) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.Multiply(a, b, dst) })
}

func (e *Evaluator) Square(a, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalSquare(e.h, a.h, dst.h) }, a, dst)
}

func (e *Evaluator) SquareNew(a *CipherText) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.Square(a, dst) })
}

// Relinearize reduces a size 3 ciphertext to size 2. A size 2 ciphertext
// is copied.
func (e *Evaluator) Relinearize(a *CipherText, rlk *RelinKeys, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalRelinearize(e.h, a.h, rlk.h, dst.h) }, a, rlk, dst)
}

func (e *Evaluator) RelinearizeNew(a *CipherText, rlk *RelinKeys) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.Relinearize(a, rlk, dst) })
}

// CipherModSwitchToNext drops the last prime of a without scaling. At the
// last level it fails with ErrEndOfModulusChain.
func (e *Evaluator) CipherModSwitchToNext(a, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalCipherModSwitchToNext(e.h, a.h, dst.h) }, a, dst)
}

func (e *Evaluator) CipherModSwitchToNextNew(a *CipherText) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.CipherModSwitchToNext(a, dst) })
}

// CipherModSwitchTo drops primes until the level named by id.
func (e *Evaluator) CipherModSwitchTo(a *CipherText, id ParmsId, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalCipherModSwitchTo(e.h, a.h, id, dst.h) }, a, dst)
}

func (e *Evaluator) CipherModSwitchToNew(a *CipherText, id ParmsId) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.CipherModSwitchTo(a, id, dst) })
}

// PlainModSwitchToNext drops the last residue block of an NTT-form
// plaintext.
func (e *Evaluator) PlainModSwitchToNext(p, dst *PlainText) error {
	return e.call(func() error { return bindings.EvalPlainModSwitchToNext(e.h, p.h, dst.h) }, p, dst)
}

func (e *Evaluator) PlainModSwitchToNextNew(p *PlainText) (*PlainText, error) {
	return e.plainNew(func(dst *PlainText) error { return e.PlainModSwitchToNext(p, dst) })
}

func (e *Evaluator) PlainModSwitchTo(p *PlainText, id ParmsId, dst *PlainText) error {
	return e.call(func() error { return bindings.EvalPlainModSwitchTo(e.h, p.h, id, dst.h) }, p, dst)
}

func (e *Evaluator) PlainModSwitchToNew(p *PlainText, id ParmsId) (*PlainText, error) {
	return e.plainNew(func(dst *PlainText) error { return e.PlainModSwitchTo(p, id, dst) })
}

// RescaleToNext divides a CKKS ciphertext by its last prime and adjusts
// the scale accordingly.
func (e *Evaluator) RescaleToNext(a, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalRescaleToNext(e.h, a.h, dst.h) }, a, dst)
}

func (e *Evaluator) RescaleToNextNew(a *CipherText) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.RescaleToNext(a, dst) })
}

// RescaleTo rescales one prime at a time down to the level named by id.
func (e *Evaluator) RescaleTo(a *CipherText, id ParmsId, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalRescaleTo(e.h, a.h, id, dst.h) }, a, dst)
}

func (e *Evaluator) RescaleToNew(a *CipherText, id ParmsId) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.RescaleTo(a, id, dst) })
}

// ModReduceTo drops a CKKS ciphertext to the level named by id, keeping
// its scale.
func (e *Evaluator) ModReduceTo(a *CipherText, id ParmsId, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalModReduceTo(e.h, a.h, id, dst.h) }, a, dst)
}

func (e *Evaluator) ModReduceToNew(a *CipherText, id ParmsId) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.ModReduceTo(a, id, dst) })
}

// Exponentiate raises a to exponent, relinearizing after every product.
// An exponent of 0 fails with ErrInvalidArgument.
func (e *Evaluator) Exponentiate(a *CipherText, exponent uint64, rlk *RelinKeys, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalExponentiate(e.h, a.h, exponent, rlk.h, dst.h) }, a, rlk, dst)
}

func (e *Evaluator) ExponentiateNew(a *CipherText, exponent uint64, rlk *RelinKeys) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.Exponentiate(a, exponent, rlk, dst) })
}

// AddPlain writes a + p into dst.
func (e *Evaluator) AddPlain(a *CipherText, p *PlainText, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalAddPlain(e.h, a.h, p.h, dst.h) }, a, p, dst)
}

func (e *Evaluator) AddPlainNew(a *CipherText, p *PlainText) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.AddPlain(a, p, dst) })
}

func (e *Evaluator) SubPlain(a *CipherText, p *PlainText, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalSubPlain(e.h, a.h, p.h, dst.h) }, a, p, dst)
}

func (e *Evaluator) SubPlainNew(a *CipherText, p *PlainText) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.SubPlain(a, p, dst) })
}

// MultiplyPlain writes a * p into dst. A zero plaintext fails with
// ErrZeroPlain.
func (e *Evaluator) MultiplyPlain(a *CipherText, p *PlainText, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalMultiplyPlain(e.h, a.h, p.h, dst.h) }, a, p, dst)
}

func (e *Evaluator) MultiplyPlainNew(a *CipherText, p *PlainText) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.MultiplyPlain(a, p, dst) })
}

// PlainTransformToNTT lifts an integer plaintext to the level named by id
// and transforms it, so that it can be used by MultiplyPlain on
// ciphertexts at that level.
func (e *Evaluator) PlainTransformToNTT(p *PlainText, id ParmsId, dst *PlainText) error {
	return e.call(func() error { return bindings.EvalPlainTransformToNTT(e.h, p.h, id, dst.h) }, p, dst)
}

func (e *Evaluator) PlainTransformToNTTNew(p *PlainText, id ParmsId) (*PlainText, error) {
	return e.plainNew(func(dst *PlainText) error { return e.PlainTransformToNTT(p, id, dst) })
}

// CipherTransformToNTT changes the representation of a BFV or BGV
// ciphertext. Transforming twice fails with ErrNTTForm.
func (e *Evaluator) CipherTransformToNTT(a, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalCipherTransformToNTT(e.h, a.h, dst.h) }, a, dst)
}

func (e *Evaluator) CipherTransformToNTTNew(a *CipherText) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.CipherTransformToNTT(a, dst) })
}

func (e *Evaluator) CipherTransformFromNTT(a, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalCipherTransformFromNTT(e.h, a.h, dst.h) }, a, dst)
}

func (e *Evaluator) CipherTransformFromNTTNew(a *CipherText) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.CipherTransformFromNTT(a, dst) })
}

// ApplyGalois applies the automorphism X -> X^galEl. galEl must be odd and
// below 2N, and gk must hold a key for it.
func (e *Evaluator) ApplyGalois(a *CipherText, galEl uint64, gk *GaloisKeys, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalApplyGalois(e.h, a.h, galEl, gk.h, dst.h) }, a, gk, dst)
}

func (e *Evaluator) ApplyGaloisNew(a *CipherText, galEl uint64, gk *GaloisKeys) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.ApplyGalois(a, galEl, gk, dst) })
}

// RotateRows rotates both rows of the batching matrix left by steps.
// Negative steps rotate right.
func (e *Evaluator) RotateRows(a *CipherText, steps int, gk *GaloisKeys, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalRotateRows(e.h, a.h, steps, gk.h, dst.h) }, a, gk, dst)
}

func (e *Evaluator) RotateRowsNew(a *CipherText, steps int, gk *GaloisKeys) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.RotateRows(a, steps, gk, dst) })
}

// RotateColumns swaps the two rows of the batching matrix.
func (e *Evaluator) RotateColumns(a *CipherText, gk *GaloisKeys, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalRotateColumns(e.h, a.h, gk.h, dst.h) }, a, gk, dst)
}

func (e *Evaluator) RotateColumnsNew(a *CipherText, gk *GaloisKeys) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.RotateColumns(a, gk, dst) })
}

// RotateVector rotates the CKKS slots left by steps.
func (e *Evaluator) RotateVector(a *CipherText, steps int, gk *GaloisKeys, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalRotateVector(e.h, a.h, steps, gk.h, dst.h) }, a, gk, dst)
}

func (e *Evaluator) RotateVectorNew(a *CipherText, steps int, gk *GaloisKeys) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.RotateVector(a, steps, gk, dst) })
}

// ComplexConjugate conjugates every CKKS slot.
func (e *Evaluator) ComplexConjugate(a *CipherText, gk *GaloisKeys, dst *CipherText) error {
	return e.call(func() error { return bindings.EvalComplexConjugate(e.h, a.h, gk.h, dst.h) }, a, gk, dst)
}

func (e *Evaluator) ComplexConjugateNew(a *CipherText, gk *GaloisKeys) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.ComplexConjugate(a, gk, dst) })
}
