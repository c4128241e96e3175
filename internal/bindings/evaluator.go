package bindings

import (
	"math"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
)

// evaluatorObj carries no per-call state; every operation takes its
// scratch space from pool.
type evaluatorObj struct {
	ctx  *contextObj
	pool *poolObj
}

// engine is the part of the scheme evaluators the binding dispatches to.
type engine interface {
	Add(op0 *rlwe.Ciphertext, op1 rlwe.Operand, opOut *rlwe.Ciphertext) error
	Sub(op0 *rlwe.Ciphertext, op1 rlwe.Operand, opOut *rlwe.Ciphertext) error
	Mul(op0 *rlwe.Ciphertext, op1 rlwe.Operand, opOut *rlwe.Ciphertext) error
	Relinearize(ctIn, opOut *rlwe.Ciphertext) error
	Automorphism(ctIn *rlwe.Ciphertext, galEl uint64, opOut *rlwe.Ciphertext) error
}

// keyedEngine multiplies with the unkeyed evaluator and uses the keyed
// copy only for key switching. The engine's WithKey drops the scale
// invariant flag and the tensoring buffers, so its Mul is unusable for BFV.
type keyedEngine struct {
	engine
	keyed engine
}

func (k keyedEngine) Relinearize(ctIn, opOut *rlwe.Ciphertext) error {
	return k.keyed.Relinearize(ctIn, opOut)
}

func (k keyedEngine) Automorphism(ctIn *rlwe.Ciphertext, galEl uint64, opOut *rlwe.Ciphertext) error {
	return k.keyed.Automorphism(ctIn, galEl, opOut)
}

func (w *workspace) engine(s Scheme, evk rlwe.EvaluationKeySet) engine {
	switch s {
	case SchemeBFV, SchemeBGV:
		if evk != nil {
			return keyedEngine{engine: w.bgvEval, keyed: w.bgvEval.WithKey(evk)}
		}
		return w.bgvEval
	default:
		if evk != nil {
			return w.ckksEval.WithKey(evk)
		}
		return w.ckksEval
	}
}

func NewEvaluator(ctxH, poolH Handle) (h Handle, err error) {
	defer guard(&err)

	c, err := lookupSetContext(ctxH)
	if err != nil {
		return 0, err
	}
	pool, err := lookupPool(poolH)
	if err != nil {
		return 0, err
	}
	return put(&evaluatorObj{ctx: c, pool: pool}), nil
}

func lookupEvaluator(h Handle) (*evaluatorObj, error) {
	return get[*evaluatorObj](h)
}

// operand looks up a ciphertext and checks it against the evaluator context.
func (o *evaluatorObj) operand(h Handle) (*cipherObj, error) {
	ct, err := lookupCipher(h)
	if err != nil {
		return nil, err
	}
	if err := o.ctx.validCipher(ct); err != nil {
		return nil, err
	}
	return ct, nil
}

// requireForm rejects ciphertexts that are not in the representation the
// scheme computes in.
func (c *contextObj) requireForm(ct *cipherObj) error {
	switch {
	case c.scheme() == SchemeBFV && ct.ntt:
		return raise(CodeNTTForm, "BFV encrypted cannot be in NTT form")
	case c.scheme() == SchemeBGV && !ct.ntt:
		return raise(CodeNTTForm, "BGV encrypted must be in NTT form")
	case c.scheme() == SchemeCKKS && !ct.ntt:
		return raise(CodeNTTForm, "CKKS encrypted must be in NTT form")
	}
	return nil
}

func (c *contextObj) requireScheme(ok bool) error {
	if !ok {
		return raise(CodeSchemeMismatch, "unsupported scheme")
	}
	return nil
}

// scalesClose matches scales that differ only by floating point error.
func scalesClose(a, b float64) bool {
	s := max(1, math.Abs(a), math.Abs(b))
	return math.Abs(a-b) < s*0x1p-52
}

func (c *contextObj) sameScale(a, b float64) error {
	if c.scheme() == SchemeCKKS && !scalesClose(a, b) {
		return raise(CodeScaleMismatch, "scale mismatch")
	}
	return nil
}

// output stores res into the ciphertext behind dstH.
func (o *evaluatorObj) output(dstH Handle, res *rlwe.Ciphertext, ntt bool) error {
	dst, err := lookupCipher(dstH)
	if err != nil {
		return err
	}
	return dst.install(o.ctx, res, ntt)
}

// EvalNegate writes -a into dst.
func EvalNegate(h, aH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	a, err := o.operand(aH)
	if err != nil {
		return err
	}
	res := a.ct.CopyNew()
	ringQ := o.ctx.rlwe.RingQ().AtLevel(res.Level())
	for i := range res.Value {
		ringQ.Neg(res.Value[i], res.Value[i])
	}
	return o.output(dstH, res, a.ntt)
}

func EvalAdd(h, aH, bH, dstH Handle) error { return binaryOp(h, aH, bH, dstH, false) }

func EvalSub(h, aH, bH, dstH Handle) error { return binaryOp(h, aH, bH, dstH, true) }

func binaryOp(h, aH, bH, dstH Handle, sub bool) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	a, err := o.operand(aH)
	if err != nil {
		return err
	}
	b, err := o.operand(bH)
	if err != nil {
		return err
	}
	c := o.ctx
	if a.node.id != b.node.id {
		return raise(CodeParameterMismatch, "encrypted1 and encrypted2 parameter mismatch")
	}
	if a.ntt != b.ntt {
		return raise(CodeNTTForm, "NTT form mismatch")
	}
	if err := c.sameScale(a.ct.Scale.Float64(), b.ct.Scale.Float64()); err != nil {
		return err
	}

	w, done := c.acquire(o.pool)
	defer done()

	x, err := a.engineIn()
	if err != nil {
		return err
	}
	y, err := b.engineIn()
	if err != nil {
		return err
	}
	if c.scheme() == SchemeCKKS && x.Scale.Cmp(y.Scale) != 0 {
		y = y.CopyNew()
		y.Scale = x.Scale
	}

	res := c.newEngineCipher(max(x.Degree(), y.Degree()), a.node.level)
	eval := w.engine(c.scheme(), nil)
	what := "add"
	if sub {
		what = "sub"
		err = eval.Sub(x, y, res)
	} else {
		err = eval.Add(x, y, res)
	}
	if err != nil {
		return wrap(CodeInvalidArgument, err, what)
	}
	return o.output(dstH, res, a.ntt)
}

// multiplicand checks a ciphertext for use in a tensor product.
func (o *evaluatorObj) multiplicand(h Handle) (*cipherObj, error) {
	ct, err := o.operand(h)
	if err != nil {
		return nil, err
	}
	if err := o.ctx.requireForm(ct); err != nil {
		return nil, err
	}
	if ct.size() != 2 {
		return nil, raise(CodeSizeMismatch, "encrypted size must be 2, not %d", ct.size())
	}
	return ct, nil
}

// checkProductScale rejects a CKKS product whose scale would not fit in the
// modulus at node.
func (c *contextObj) checkProductScale(s0, s1 float64, node *chainNode) error {
	if c.scheme() != SchemeCKKS {
		return nil
	}
	if math.Log2(s0)+math.Log2(s1) >= float64(totalBits(node.primes)) {
		return raise(CodeScaleOutOfBounds, "scale out of bounds")
	}
	return nil
}

// EvalMultiply writes a*b into dst. The result has size 3.
func EvalMultiply(h, aH, bH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	a, err := o.multiplicand(aH)
	if err != nil {
		return err
	}
	b, err := o.multiplicand(bH)
	if err != nil {
		return err
	}
	if a.node.id != b.node.id {
		return raise(CodeParameterMismatch, "encrypted1 and encrypted2 parameter mismatch")
	}
	return o.multiply(a, b, dstH)
}

func EvalSquare(h, aH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	a, err := o.multiplicand(aH)
	if err != nil {
		return err
	}
	return o.multiply(a, a, dstH)
}

func (o *evaluatorObj) multiply(a, b *cipherObj, dstH Handle) error {
	c := o.ctx
	if err := c.checkProductScale(a.ct.Scale.Float64(), b.ct.Scale.Float64(), a.node); err != nil {
		return err
	}

	w, done := c.acquire(o.pool)
	defer done()

	x, err := a.engineIn()
	if err != nil {
		return err
	}
	y := x
	if b != a {
		if y, err = b.engineIn(); err != nil {
			return err
		}
	}
	res := c.newEngineCipher(2, a.node.level)
	if err := w.engine(c.scheme(), nil).Mul(x, y, res); err != nil {
		return wrap(CodeInvalidArgument, err, "multiply")
	}
	return o.output(dstH, res, a.ntt)
}

// EvalRelinearize reduces a size 3 ciphertext to size 2. A size 2
// ciphertext is copied unchanged.
func EvalRelinearize(h, aH, rlkH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	a, err := o.operand(aH)
	if err != nil {
		return err
	}
	c := o.ctx
	if err := c.requireForm(a); err != nil {
		return err
	}
	rlk, err := lookupRelinKeys(rlkH, c)
	if err != nil {
		return err
	}
	switch a.size() {
	case 2:
		return o.output(dstH, a.ct.CopyNew(), a.ntt)
	case 3:
	default:
		return raise(CodeSizeMismatch, "not enough relinearization keys for encrypted of size %d", a.size())
	}

	w, done := c.acquire(o.pool)
	defer done()

	res, err := o.relinearize(w, a, rlk)
	if err != nil {
		return err
	}
	return o.output(dstH, res, a.ntt)
}

func (o *evaluatorObj) relinearize(w *workspace, a *cipherObj, rlk *rlwe.RelinearizationKey) (*rlwe.Ciphertext, error) {
	c := o.ctx
	x, err := a.engineIn()
	if err != nil {
		return nil, err
	}
	res := c.newEngineCipher(1, a.node.level)
	eval := w.engine(c.scheme(), rlwe.NewMemEvaluationKeySet(rlk))
	if err := eval.Relinearize(x, res); err != nil {
		return nil, wrap(CodeInvalidArgument, err, "relinearize")
	}
	return res, nil
}

// targetBelow resolves the node a value at from should be switched to.
func (c *contextObj) targetBelow(from *chainNode, id ParmsId) (*chainNode, error) {
	to, err := c.dataNode(id)
	if err != nil {
		return nil, err
	}
	if to.level > from.level {
		return nil, raise(CodeInvalidArgument, "cannot switch to higher level modulus")
	}
	return to, nil
}

func EvalCipherModSwitchToNext(h, aH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	a, err := o.operand(aH)
	if err != nil {
		return err
	}
	if a.node.next == nil {
		return raise(CodeEndOfModulusChain, "end of modulus switching chain reached")
	}
	return o.dropCipher(a, a.node.next, dstH)
}

func EvalCipherModSwitchTo(h, aH Handle, id ParmsId, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	a, err := o.operand(aH)
	if err != nil {
		return err
	}
	to, err := o.ctx.targetBelow(a.node, id)
	if err != nil {
		return err
	}
	return o.dropCipher(a, to, dstH)
}

// dropCipher removes the residues above the level of to. No rescaling is
// applied.
func (o *evaluatorObj) dropCipher(a *cipherObj, to *chainNode, dstH Handle) error {
	if err := o.ctx.requireForm(a); err != nil {
		return err
	}
	res := a.ct.CopyNew()
	res.Resize(res.Degree(), to.level)
	return o.output(dstH, res, a.ntt)
}

func EvalPlainModSwitchToNext(h, pH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	p, node, err := o.nttOperand(pH)
	if err != nil {
		return err
	}
	if node.next == nil {
		return raise(CodeEndOfModulusChain, "end of modulus switching chain reached")
	}
	return o.dropPlain(p, node.next, dstH)
}

func EvalPlainModSwitchTo(h, pH Handle, id ParmsId, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	p, node, err := o.nttOperand(pH)
	if err != nil {
		return err
	}
	to, err := o.ctx.targetBelow(node, id)
	if err != nil {
		return err
	}
	return o.dropPlain(p, to, dstH)
}

func (o *evaluatorObj) nttOperand(pH Handle) (*plainObj, *chainNode, error) {
	p, err := lookupPlain(pH)
	if err != nil {
		return nil, nil, err
	}
	if p.id.IsZero() {
		return nil, nil, raise(CodeNTTForm, "plain is not in NTT form")
	}
	if err := o.ctx.validNTTPlain(p); err != nil {
		return nil, nil, err
	}
	node, err := o.ctx.dataNode(p.id)
	if err != nil {
		return nil, nil, err
	}
	return p, node, nil
}

func (o *evaluatorObj) dropPlain(p *plainObj, to *chainNode, dstH Handle) error {
	dst, err := lookupPlain(dstH)
	if err != nil {
		return err
	}
	data := append([]uint64(nil), p.data[:o.ctx.n()*(to.level+1)]...)
	scale := p.scale
	dst.resize(len(data))
	copy(dst.data, data)
	dst.id = to.id
	dst.scale = scale
	return nil
}

func EvalRescaleToNext(h, aH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	if err := o.ctx.requireScheme(o.ctx.scheme() == SchemeCKKS); err != nil {
		return err
	}
	a, err := o.operand(aH)
	if err != nil {
		return err
	}
	if a.node.next == nil {
		return raise(CodeEndOfModulusChain, "end of modulus switching chain reached")
	}
	return o.rescale(a, a.node.next, dstH)
}

func EvalRescaleTo(h, aH Handle, id ParmsId, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	if err := o.ctx.requireScheme(o.ctx.scheme() == SchemeCKKS); err != nil {
		return err
	}
	a, err := o.operand(aH)
	if err != nil {
		return err
	}
	to, err := o.ctx.targetBelow(a.node, id)
	if err != nil {
		return err
	}
	return o.rescale(a, to, dstH)
}

// rescale divides by the dropped primes one at a time until the level of
// to is reached.
func (o *evaluatorObj) rescale(a *cipherObj, to *chainNode, dstH Handle) error {
	c := o.ctx
	if err := c.requireForm(a); err != nil {
		return err
	}

	w, done := c.acquire(o.pool)
	defer done()

	res := a.ct.CopyNew()
	for res.Level() > to.level {
		next := c.newEngineCipher(res.Degree(), res.Level())
		if err := w.ckksEval.Rescale(res, next); err != nil {
			return wrap(CodeInvalidArgument, err, "rescale")
		}
		res = next
	}
	return o.output(dstH, res, a.ntt)
}

// EvalModReduceTo drops a CKKS ciphertext to the level of id without
// changing its scale.
func EvalModReduceTo(h, aH Handle, id ParmsId, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	if err := o.ctx.requireScheme(o.ctx.scheme() == SchemeCKKS); err != nil {
		return err
	}
	a, err := o.operand(aH)
	if err != nil {
		return err
	}
	to, err := o.ctx.targetBelow(a.node, id)
	if err != nil {
		return err
	}
	return o.dropCipher(a, to, dstH)
}

// EvalExponentiate raises a to the power exponent by square and multiply,
// relinearizing after every product.
func EvalExponentiate(h, aH Handle, exponent uint64, rlkH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	c := o.ctx
	if err := c.requireScheme(c.scheme().batched()); err != nil {
		return err
	}
	a, err := o.multiplicand(aH)
	if err != nil {
		return err
	}
	if exponent == 0 {
		return raise(CodeInvalidArgument, "exponent cannot be 0")
	}
	rlk, err := lookupRelinKeys(rlkH, c)
	if err != nil {
		return err
	}
	if exponent == 1 {
		return o.output(dstH, a.ct.CopyNew(), a.ntt)
	}

	w, done := c.acquire(o.pool)
	defer done()

	base, err := a.engineIn()
	if err != nil {
		return err
	}
	eval := w.engine(c.scheme(), rlwe.NewMemEvaluationKeySet(rlk))
	mulRelin := func(x, y *rlwe.Ciphertext) (*rlwe.Ciphertext, error) {
		tmp := c.newEngineCipher(2, a.node.level)
		if err := eval.Mul(x, y, tmp); err != nil {
			return nil, wrap(CodeInvalidArgument, err, "multiply")
		}
		out := c.newEngineCipher(1, a.node.level)
		if err := eval.Relinearize(tmp, out); err != nil {
			return nil, wrap(CodeInvalidArgument, err, "relinearize")
		}
		return out, nil
	}

	var acc *rlwe.Ciphertext
	for e := exponent; ; {
		if e&1 == 1 {
			if acc == nil {
				acc = base.CopyNew()
			} else if acc, err = mulRelin(acc, base); err != nil {
				return err
			}
		}
		e >>= 1
		if e == 0 {
			break
		}
		if base, err = mulRelin(base, base); err != nil {
			return err
		}
	}
	return o.output(dstH, acc, a.ntt)
}

// plainOperand prepares plainH for combination with ct. Integer schemes
// lift a non-NTT plaintext to the ciphertext level; an NTT-form plaintext
// must already sit at that level.
func (o *evaluatorObj) plainOperand(w *workspace, ct *cipherObj, plainH Handle, allowNTT bool) (*rlwe.Plaintext, error) {
	c := o.ctx
	p, err := lookupPlain(plainH)
	if err != nil {
		return nil, err
	}
	if c.scheme() == SchemeCKKS {
		return c.nttPlain(p, ct.node)
	}
	if err := c.validPlain(p); err != nil {
		return nil, err
	}
	if !p.id.IsZero() {
		if !allowNTT {
			return nil, raise(CodeNTTForm, "plain cannot be in NTT form")
		}
		return c.nttPlain(p, ct.node)
	}
	return c.liftPlain(w, p, ct.node)
}

func EvalAddPlain(h, aH, plainH, dstH Handle) error { return binaryPlain(h, aH, plainH, dstH, false) }

func EvalSubPlain(h, aH, plainH, dstH Handle) error { return binaryPlain(h, aH, plainH, dstH, true) }

func binaryPlain(h, aH, plainH, dstH Handle, sub bool) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	a, err := o.operand(aH)
	if err != nil {
		return err
	}
	c := o.ctx
	if err := c.requireForm(a); err != nil {
		return err
	}

	w, done := c.acquire(o.pool)
	defer done()

	pt, err := o.plainOperand(w, a, plainH, false)
	if err != nil {
		return err
	}
	if c.scheme() == SchemeCKKS {
		if err := c.sameScale(a.ct.Scale.Float64(), pt.Scale.Float64()); err != nil {
			return err
		}
		pt.Scale = a.ct.Scale
	}
	x, err := a.engineIn()
	if err != nil {
		return err
	}
	res := c.newEngineCipher(x.Degree(), a.node.level)
	eval := w.engine(c.scheme(), nil)
	what := "add plain"
	if sub {
		what = "sub plain"
		err = eval.Sub(x, pt, res)
	} else {
		err = eval.Add(x, pt, res)
	}
	if err != nil {
		return wrap(CodeInvalidArgument, err, what)
	}
	return o.output(dstH, res, a.ntt)
}

// EvalMultiplyPlain writes a*plain into dst. A zero plaintext is rejected
// since the product would be transparent.
func EvalMultiplyPlain(h, aH, plainH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	a, err := o.operand(aH)
	if err != nil {
		return err
	}
	c := o.ctx
	p, err := lookupPlain(plainH)
	if err != nil {
		return err
	}
	if p.isZero() {
		return raise(CodeZeroPlain, "plain cannot be zero")
	}

	w, done := c.acquire(o.pool)
	defer done()

	pt, err := o.plainOperand(w, a, plainH, true)
	if err != nil {
		return err
	}
	if err := c.checkProductScale(a.ct.Scale.Float64(), pt.Scale.Float64(), a.node); err != nil {
		return err
	}
	x, err := a.engineIn()
	if err != nil {
		return err
	}
	res := c.newEngineCipher(x.Degree(), a.node.level)
	if err := w.engine(c.scheme(), nil).Mul(x, pt, res); err != nil {
		return wrap(CodeInvalidArgument, err, "multiply plain")
	}
	return o.output(dstH, res, a.ntt)
}

// EvalPlainTransformToNTT lifts an integer plaintext to the level of id and
// stores it in NTT form.
func EvalPlainTransformToNTT(h, plainH Handle, id ParmsId, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	c := o.ctx
	if err := c.requireScheme(c.scheme().batched()); err != nil {
		return err
	}
	p, err := lookupPlain(plainH)
	if err != nil {
		return err
	}
	if !p.id.IsZero() {
		return raise(CodeNTTForm, "plain is already in NTT form")
	}
	node, err := c.dataNode(id)
	if err != nil {
		return err
	}
	dst, err := lookupPlain(dstH)
	if err != nil {
		return err
	}

	w, done := c.acquire(o.pool)
	defer done()

	pt, err := c.liftPlain(w, p, node)
	if err != nil {
		return err
	}
	c.storeNTT(dst, pt, node, 1)
	return nil
}

func EvalCipherTransformToNTT(h, aH, dstH Handle) error { return transform(h, aH, dstH, true) }

func EvalCipherTransformFromNTT(h, aH, dstH Handle) error { return transform(h, aH, dstH, false) }

func transform(h, aH, dstH Handle, toNTT bool) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	c := o.ctx
	if err := c.requireScheme(c.scheme().batched()); err != nil {
		return err
	}
	a, err := o.operand(aH)
	if err != nil {
		return err
	}
	if a.ntt == toNTT {
		if toNTT {
			return raise(CodeNTTForm, "encrypted is already in NTT form")
		}
		return raise(CodeNTTForm, "encrypted is not in NTT form")
	}
	x, err := a.engineIn()
	if err != nil {
		return err
	}
	if x == a.ct {
		x = x.CopyNew()
	}
	return o.output(dstH, x, toNTT)
}

// EvalApplyGalois applies the automorphism X -> X^galEl.
func EvalApplyGalois(h, aH Handle, galEl uint64, gkH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	if err := o.ctx.checkGaloisElement(galEl); err != nil {
		return err
	}
	return o.automorphism(aH, galEl, gkH, dstH)
}

// EvalRotateRows rotates both rows of a batched ciphertext left by steps.
func EvalRotateRows(h, aH Handle, steps int, gkH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	if err := o.ctx.requireScheme(o.ctx.scheme().batched()); err != nil {
		return err
	}
	return o.rotate(aH, steps, gkH, dstH)
}

// EvalRotateColumns swaps the two rows of a batched ciphertext.
func EvalRotateColumns(h, aH, gkH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	if err := o.ctx.requireScheme(o.ctx.scheme().batched()); err != nil {
		return err
	}
	return o.automorphism(aH, o.ctx.galoisElement(0), gkH, dstH)
}

func EvalRotateVector(h, aH Handle, steps int, gkH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	if err := o.ctx.requireScheme(o.ctx.scheme() == SchemeCKKS); err != nil {
		return err
	}
	return o.rotate(aH, steps, gkH, dstH)
}

func EvalComplexConjugate(h, aH, gkH, dstH Handle) (err error) {
	defer guard(&err)

	o, err := lookupEvaluator(h)
	if err != nil {
		return err
	}
	if err := o.ctx.requireScheme(o.ctx.scheme() == SchemeCKKS); err != nil {
		return err
	}
	return o.automorphism(aH, o.ctx.galoisElement(0), gkH, dstH)
}

func (o *evaluatorObj) rotate(aH Handle, steps int, gkH, dstH Handle) error {
	if steps == 0 {
		a, err := o.operand(aH)
		if err != nil {
			return err
		}
		if err := o.ctx.requireForm(a); err != nil {
			return err
		}
		return o.output(dstH, a.ct.CopyNew(), a.ntt)
	}
	return o.automorphism(aH, o.ctx.galoisElement(steps), gkH, dstH)
}

func (o *evaluatorObj) automorphism(aH Handle, galEl uint64, gkH, dstH Handle) error {
	c := o.ctx
	a, err := o.multiplicand(aH)
	if err != nil {
		return err
	}
	gks, err := lookupGaloisKeys(gkH, c)
	if err != nil {
		return err
	}
	gk, ok := gks.keys[galEl]
	if !ok {
		return raise(CodeKeyMissing, "Galois key not present for element %d", galEl)
	}

	w, done := c.acquire(o.pool)
	defer done()

	x, err := a.engineIn()
	if err != nil {
		return err
	}
	res := c.newEngineCipher(1, a.node.level)
	eval := w.engine(c.scheme(), rlwe.NewMemEvaluationKeySet(nil, gk))
	if err := eval.Automorphism(x, galEl, res); err != nil {
		return wrap(CodeInvalidArgument, err, "apply galois")
	}
	return o.output(dstH, res, a.ntt)
}
