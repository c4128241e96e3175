package bindings

import (
	"slices"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/ring"
)

type secretKeyObj struct {
	ctx *contextObj
	sk  *rlwe.SecretKey
}

// release scrubs the secret coefficients before the key is dropped.
func (o *secretKeyObj) release() {
	if o.sk != nil {
		scrubPoly(o.sk.Value.Q)
		scrubPoly(o.sk.Value.P)
		o.sk = nil
	}
}

func scrubPoly(p ring.Poly) {
	for i := range p.Coeffs {
		clear(p.Coeffs[i])
	}
}

type publicKeyObj struct {
	ctx *contextObj
	pk  *rlwe.PublicKey
}

type relinKeysObj struct {
	ctx *contextObj
	rlk *rlwe.RelinearizationKey
}

type galoisKeysObj struct {
	ctx  *contextObj
	keys map[uint64]*rlwe.GaloisKey
}

func NewSecretKey(ctxH Handle) (Handle, error) {
	c, err := lookupContext(ctxH)
	if err != nil {
		return 0, err
	}
	return put(&secretKeyObj{ctx: c}), nil
}

func NewPublicKey(ctxH Handle) (Handle, error) {
	c, err := lookupContext(ctxH)
	if err != nil {
		return 0, err
	}
	return put(&publicKeyObj{ctx: c}), nil
}

func NewRelinKeys(ctxH Handle) (Handle, error) {
	c, err := lookupContext(ctxH)
	if err != nil {
		return 0, err
	}
	return put(&relinKeysObj{ctx: c}), nil
}

func NewGaloisKeys(ctxH Handle) (Handle, error) {
	c, err := lookupContext(ctxH)
	if err != nil {
		return 0, err
	}
	return put(&galoisKeysObj{ctx: c, keys: map[uint64]*rlwe.GaloisKey{}}), nil
}

// KeyCopy overwrites dst with a deep copy of src. Both handles must refer
// to keys of the same kind.
func KeyCopy(dst, src Handle) (err error) {
	defer guard(&err)

	s, err := get[any](src)
	if err != nil {
		return err
	}
	switch s := s.(type) {
	case *secretKeyObj:
		d, err := get[*secretKeyObj](dst)
		if err != nil {
			return err
		}
		if d != s {
			d.release()
			*d = s.clone()
		}
	case *publicKeyObj:
		d, err := get[*publicKeyObj](dst)
		if err != nil {
			return err
		}
		*d = s.clone()
	case *relinKeysObj:
		d, err := get[*relinKeysObj](dst)
		if err != nil {
			return err
		}
		*d = s.clone()
	case *galoisKeysObj:
		d, err := get[*galoisKeysObj](dst)
		if err != nil {
			return err
		}
		*d = s.clone()
	default:
		return CodeTypeMismatch
	}
	return nil
}

// KeyClone returns a new handle holding a deep copy of the key behind h.
func KeyClone(h Handle) (out Handle, err error) {
	defer guard(&err)

	v, err := get[any](h)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case *secretKeyObj:
		c := v.clone()
		return put(&c), nil
	case *publicKeyObj:
		c := v.clone()
		return put(&c), nil
	case *relinKeysObj:
		c := v.clone()
		return put(&c), nil
	case *galoisKeysObj:
		c := v.clone()
		return put(&c), nil
	}
	return 0, CodeTypeMismatch
}

func (o *secretKeyObj) clone() secretKeyObj {
	out := secretKeyObj{ctx: o.ctx}
	if o.sk != nil {
		out.sk = o.sk.CopyNew()
	}
	return out
}

func (o *publicKeyObj) clone() publicKeyObj {
	out := publicKeyObj{ctx: o.ctx}
	if o.pk != nil {
		out.pk = o.pk.CopyNew()
	}
	return out
}

func (o *relinKeysObj) clone() relinKeysObj {
	out := relinKeysObj{ctx: o.ctx}
	if o.rlk != nil {
		out.rlk = o.rlk.CopyNew()
	}
	return out
}

func (o *galoisKeysObj) clone() galoisKeysObj {
	out := galoisKeysObj{ctx: o.ctx, keys: make(map[uint64]*rlwe.GaloisKey, len(o.keys))}
	for g, k := range o.keys {
		out.keys[g] = k.CopyNew()
	}
	return out
}

func GaloisKeysSize(h Handle) (int, error) {
	o, err := get[*galoisKeysObj](h)
	if err != nil {
		return 0, err
	}
	return len(o.keys), nil
}

func GaloisKeysHas(h Handle, galEl uint64) (bool, error) {
	o, err := get[*galoisKeysObj](h)
	if err != nil {
		return false, err
	}
	_, ok := o.keys[galEl]
	return ok, nil
}

// GaloisKeysElements returns the Galois elements present, in increasing
// order.
func GaloisKeysElements(h Handle) ([]uint64, error) {
	o, err := get[*galoisKeysObj](h)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, 0, len(o.keys))
	for g := range o.keys {
		out = append(out, g)
	}
	slices.Sort(out)
	return out, nil
}

// sameParameters reports whether objects built under a and b are
// interchangeable.
func sameParameters(a, b *contextObj) bool {
	if a == b {
		return true
	}
	return a.set && b.set && a.key.id == b.key.id
}

func lookupSecretKey(h Handle, c *contextObj) (*rlwe.SecretKey, error) {
	o, err := get[*secretKeyObj](h)
	if err != nil {
		return nil, err
	}
	if o.sk == nil {
		return nil, raise(CodeKeyMissing, "secret key is empty")
	}
	if !sameParameters(o.ctx, c) {
		return nil, raise(CodeInvalidArgument, "secret key is not valid for encryption parameters")
	}
	return o.sk, nil
}

func lookupPublicKey(h Handle, c *contextObj) (*rlwe.PublicKey, error) {
	o, err := get[*publicKeyObj](h)
	if err != nil {
		return nil, err
	}
	if o.pk == nil {
		return nil, raise(CodeKeyMissing, "public key is empty")
	}
	if !sameParameters(o.ctx, c) {
		return nil, raise(CodeInvalidArgument, "public key is not valid for encryption parameters")
	}
	return o.pk, nil
}

func lookupRelinKeys(h Handle, c *contextObj) (*rlwe.RelinearizationKey, error) {
	o, err := get[*relinKeysObj](h)
	if err != nil {
		return nil, err
	}
	if o.rlk == nil {
		return nil, raise(CodeKeyMissing, "relinearization keys are empty")
	}
	if !sameParameters(o.ctx, c) {
		return nil, raise(CodeInvalidArgument, "relin_keys is not valid for encryption parameters")
	}
	return o.rlk, nil
}

func lookupGaloisKeys(h Handle, c *contextObj) (*galoisKeysObj, error) {
	o, err := get[*galoisKeysObj](h)
	if err != nil {
		return nil, err
	}
	if !sameParameters(o.ctx, c) {
		return nil, raise(CodeInvalidArgument, "galois_keys is not valid for encryption parameters")
	}
	return o, nil
}
