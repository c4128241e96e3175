package bindings

import (
	"math"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/ckks"
)

type batchEncoderObj struct {
	ctx  *contextObj
	pool *poolObj
}

type ckksEncoderObj struct {
	ctx  *contextObj
	pool *poolObj
}

func encoderContext(ctxH, poolH Handle) (*contextObj, *poolObj, error) {
	c, err := lookupSetContext(ctxH)
	if err != nil {
		return nil, nil, err
	}
	pool, err := lookupPool(poolH)
	if err != nil {
		return nil, nil, err
	}
	return c, pool, nil
}

func NewBatchEncoder(ctxH, poolH Handle) (Handle, error) {
	c, pool, err := encoderContext(ctxH, poolH)
	if err != nil {
		return 0, err
	}
	if !c.scheme().batched() {
		return 0, raise(CodeSchemeMismatch, "unsupported scheme")
	}
	return put(&batchEncoderObj{ctx: c, pool: pool}), nil
}

func NewCKKSEncoder(ctxH, poolH Handle) (Handle, error) {
	c, pool, err := encoderContext(ctxH, poolH)
	if err != nil {
		return 0, err
	}
	if c.scheme() != SchemeCKKS {
		return 0, raise(CodeSchemeMismatch, "unsupported scheme")
	}
	return put(&ckksEncoderObj{ctx: c, pool: pool}), nil
}

func BatchSlotCount(h Handle) (int, error) {
	o, err := get[*batchEncoderObj](h)
	if err != nil {
		return 0, err
	}
	return o.ctx.n(), nil
}

func CKKSSlotCount(h Handle) (int, error) {
	o, err := get[*ckksEncoderObj](h)
	if err != nil {
		return 0, err
	}
	return o.ctx.ckks.MaxSlots(), nil
}

// BatchEncode packs the integer vector vecH into the slots of plainH.
func BatchEncode(h, vecH, plainH Handle) (err error) {
	defer guard(&err)

	o, err := get[*batchEncoderObj](h)
	if err != nil {
		return err
	}
	dst, err := lookupPlain(plainH)
	if err != nil {
		return err
	}
	c := o.ctx
	slots, err := vectorSlots(vecH, c.parms.PlainModulus)
	if err != nil {
		return err
	}
	if len(slots) > c.n() {
		return raise(CodeInvalidArgument, "values has size %d larger than slot count %d", len(slots), c.n())
	}

	w, done := c.acquire(o.pool)
	defer done()
	if err := w.bgvEnc.EncodeRingT(slots, rlwe.NewScale(1), w.bufT); err != nil {
		return wrap(CodeInvalidArgument, err, "encode")
	}
	c.storeRingT(w, dst)
	return nil
}

// BatchDecode unpacks the slots of plainH into a new vector of the given
// kind. Signed kinds are centered around zero.
func BatchDecode(h, plainH Handle, kind VecKind) (out Handle, err error) {
	defer guard(&err)

	o, err := get[*batchEncoderObj](h)
	if err != nil {
		return 0, err
	}
	p, err := lookupPlain(plainH)
	if err != nil {
		return 0, err
	}
	c := o.ctx

	w, done := c.acquire(o.pool)
	defer done()

	if p.id.IsZero() {
		if err := c.loadRingT(w, p); err != nil {
			return 0, err
		}
	} else {
		node, err := c.dataNode(p.id)
		if err != nil {
			return 0, err
		}
		pt, err := c.nttPlain(p, node)
		if err != nil {
			return 0, err
		}
		c.lowerToRingT(w, pt)
	}

	slots := make([]uint64, c.n())
	if err := w.bgvEnc.DecodeRingT(w.bufT, rlwe.NewScale(1), slots); err != nil {
		return 0, wrap(CodeInvalidArgument, err, "decode")
	}
	return newSlotsVector(kind, slots, c.parms.PlainModulus)
}

// CKKSEncode encodes a float64 vector at the first data level with the
// given scale.
func CKKSEncode(h, vecH Handle, scale float64, plainH Handle) (err error) {
	defer guard(&err)

	o, err := get[*ckksEncoderObj](h)
	if err != nil {
		return err
	}
	dst, err := lookupPlain(plainH)
	if err != nil {
		return err
	}
	c := o.ctx
	values, err := vectorFloats(vecH)
	if err != nil {
		return err
	}
	if len(values) > c.ckks.MaxSlots() {
		return raise(CodeInvalidArgument, "values has size %d larger than slot count %d", len(values), c.ckks.MaxSlots())
	}
	node := c.first
	if err := c.checkScale(scale, node); err != nil {
		return err
	}

	w, done := c.acquire(o.pool)
	defer done()

	pt := ckks.NewPlaintext(c.ckks, node.level)
	pt.Scale = rlwe.NewScale(scale)
	if err := w.ckksEnc.Encode(values, pt); err != nil {
		return wrap(CodeInvalidArgument, err, "encode")
	}
	c.storeNTT(dst, pt, node, scale)
	return nil
}

// checkScale rejects scales that do not fit below the modulus at node.
func (c *contextObj) checkScale(scale float64, node *chainNode) error {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return raise(CodeInvalidArgument, "scale must be positive")
	}
	if int(math.Log2(scale)) >= totalBits(node.primes) {
		return raise(CodeScaleOutOfBounds, "scale out of bounds")
	}
	return nil
}

func CKKSDecode(h, plainH Handle) (out Handle, err error) {
	defer guard(&err)

	o, err := get[*ckksEncoderObj](h)
	if err != nil {
		return 0, err
	}
	p, err := lookupPlain(plainH)
	if err != nil {
		return 0, err
	}
	c := o.ctx
	if p.id.IsZero() {
		return 0, raise(CodeNTTForm, "plain is not in NTT form")
	}
	node, err := c.dataNode(p.id)
	if err != nil {
		return 0, err
	}
	pt, err := c.nttPlain(p, node)
	if err != nil {
		return 0, err
	}

	w, done := c.acquire(o.pool)
	defer done()

	values := make([]float64, c.ckks.MaxSlots())
	if err := w.ckksEnc.Decode(pt, values); err != nil {
		return 0, wrap(CodeInvalidArgument, err, "decode")
	}
	return NewVector(values)
}
