package seal

// SumElements writes into dst a ciphertext whose every slot holds the sum
// of all slots of a. scheme selects the strategy: BFV and BGV rotate each
// row then swap rows, CKKS rotates the slot vector. gk must hold keys for
// every power-of-two step, and for the row swap under BFV and BGV; the
// default set from CreateGaloisKeys(nil) does.
//
// On failure dst holds the result of the last successful step.
func (e *Evaluator) SumElements(a *CipherText, gk *GaloisKeys, scheme SchemeType, dst *CipherText) error {
	if e == nil || a == nil || dst == nil {
		return ErrInvalidHandle
	}
	var rotate func(a *CipherText, steps int, gk *GaloisKeys, dst *CipherText) error
	switch scheme {
	case SchemeBFV, SchemeBGV:
		rotate = e.RotateRows
	case SchemeCKKS:
		rotate = e.RotateVector
	default:
		return ErrSchemeMismatch
	}

	parms, err := e.ctx.Parms()
	if err != nil {
		return err
	}
	width := int(parms.PolyModulusDegree / 2)

	tmp, err := NewCipherText(e.ctx, nil)
	if err != nil {
		return err
	}
	defer tmp.Delete()

	if err := dst.Copy(a); err != nil {
		return err
	}
	for step := 1; step < width; step <<= 1 {
		if err := rotate(dst, step, gk, tmp); err != nil {
			return err
		}
		if err := e.Add(dst, tmp, dst); err != nil {
			return err
		}
	}
	if scheme == SchemeCKKS {
		return nil
	}
	if err := e.RotateColumns(dst, gk, tmp); err != nil {
		return err
	}
	return e.Add(dst, tmp, dst)
}

func (e *Evaluator) SumElementsNew(a *CipherText, gk *GaloisKeys, scheme SchemeType) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.SumElements(a, gk, scheme, dst) })
}

// DotProduct writes the inner product of the slot vectors of a and b into
// every slot of dst: a multiplication, a relinearization, then
// SumElements. The first failing step aborts.
func (e *Evaluator) DotProduct(a, b *CipherText, rlk *RelinKeys, gk *GaloisKeys, scheme SchemeType, dst *CipherText) error {
	if err := e.Multiply(a, b, dst); err != nil {
		return err
	}
	if err := e.Relinearize(dst, rlk, dst); err != nil {
		return err
	}
	return e.SumElements(dst, gk, scheme, dst)
}

func (e *Evaluator) DotProductNew(a, b *CipherText, rlk *RelinKeys, gk *GaloisKeys, scheme SchemeType) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.DotProduct(a, b, rlk, gk, scheme, dst) })
}

// DotProductPlain is DotProduct with a plaintext operand; no
// relinearization is needed.
func (e *Evaluator) DotProductPlain(a *CipherText, p *PlainText, gk *GaloisKeys, scheme SchemeType, dst *CipherText) error {
	if err := e.MultiplyPlain(a, p, dst); err != nil {
		return err
	}
	return e.SumElements(dst, gk, scheme, dst)
}

func (e *Evaluator) DotProductPlainNew(a *CipherText, p *PlainText, gk *GaloisKeys, scheme SchemeType) (*CipherText, error) {
	return e.cipherNew(func(dst *CipherText) error { return e.DotProductPlain(a, p, gk, scheme, dst) })
}
