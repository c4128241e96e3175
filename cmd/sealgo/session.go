package main

import (
	"fmt"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

// session holds everything needed to run computations under one parameter
// set.
type session struct {
	scheme seal.SchemeType
	slots  int

	ctx   *seal.Context
	sk    *seal.SecretKey
	pk    *seal.PublicKey
	rlk   *seal.RelinKeys
	gk    *seal.GaloisKeys
	enc   *seal.Encryptor
	dec   *seal.Decryptor
	ev    *seal.Evaluator
	batch *seal.BatchEncoder
	ckks  *seal.CKKSEncoder
}

func newSession(set seal.ParameterSet) (_ *session, err error) {
	s := &session{scheme: set.Parms.Scheme}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	if s.ctx, err = set.NewContext(); err != nil {
		return nil, err
	}
	if ok, _ := s.ctx.ParametersSet(); !ok {
		msg, _ := s.ctx.ParameterErrorMessage()
		return nil, fmt.Errorf("parameters rejected: %s", msg)
	}

	kg, err := seal.NewKeyGenerator(s.ctx, nil)
	if err != nil {
		return nil, err
	}
	defer kg.Delete()

	if s.sk, err = kg.SecretKey(); err != nil {
		return nil, err
	}
	if s.pk, err = kg.CreatePublicKey(); err != nil {
		return nil, err
	}
	if s.rlk, err = kg.CreateRelinKeys(); err != nil {
		return nil, err
	}
	if s.gk, err = kg.CreateGaloisKeys(nil); err != nil {
		return nil, err
	}
	if s.enc, err = seal.NewEncryptor(s.ctx, s.pk, s.sk); err != nil {
		return nil, err
	}
	if s.dec, err = seal.NewDecryptor(s.ctx, s.sk); err != nil {
		return nil, err
	}
	if s.ev, err = seal.NewEvaluator(s.ctx); err != nil {
		return nil, err
	}

	if s.scheme == seal.SchemeCKKS {
		if s.ckks, err = seal.NewCKKSEncoder(s.ctx); err != nil {
			return nil, err
		}
		s.slots, err = s.ckks.SlotCount()
	} else {
		if s.batch, err = seal.NewBatchEncoder(s.ctx); err != nil {
			return nil, err
		}
		s.slots, err = s.batch.SlotCount()
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) Close() {
	if s.ckks != nil {
		s.ckks.Delete()
	}
	if s.batch != nil {
		s.batch.Delete()
	}
	if s.ev != nil {
		s.ev.Delete()
	}
	if s.dec != nil {
		s.dec.Delete()
	}
	if s.enc != nil {
		s.enc.Delete()
	}
	if s.gk != nil {
		s.gk.Delete()
	}
	if s.rlk != nil {
		s.rlk.Delete()
	}
	if s.pk != nil {
		s.pk.Delete()
	}
	if s.sk != nil {
		s.sk.Delete()
	}
	if s.ctx != nil {
		s.ctx.Delete()
	}
}

// encode packs values into a plaintext. Integer schemes round the values.
func (s *session) encode(values []float64) (*seal.PlainText, error) {
	if s.scheme == seal.SchemeCKKS {
		return s.ckks.EncodeNew(values, ckksScale)
	}
	ints := make([]int64, len(values))
	for i, v := range values {
		ints[i] = int64(v)
	}
	return s.batch.EncodeNew(ints)
}

func (s *session) encrypt(values []float64) (*seal.CipherText, error) {
	pt, err := s.encode(values)
	if err != nil {
		return nil, err
	}
	defer pt.Delete()
	return s.enc.EncryptNew(pt)
}

func (s *session) decrypt(ct *seal.CipherText) ([]float64, error) {
	pt, err := s.dec.DecryptNew(ct)
	if err != nil {
		return nil, err
	}
	defer pt.Delete()

	if s.scheme == seal.SchemeCKKS {
		return s.ckks.Decode(pt)
	}
	ints, err := s.batch.DecodeInt64(pt)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(ints))
	for i, v := range ints {
		out[i] = float64(v)
	}
	return out, nil
}

// multiply returns the relinearized product, rescaled under CKKS.
func (s *session) multiply(a, b *seal.CipherText) (*seal.CipherText, error) {
	prod, err := s.ev.MultiplyNew(a, b)
	if err != nil {
		return nil, err
	}
	defer prod.Delete()
	if err := s.ev.Relinearize(prod, s.rlk, prod); err != nil {
		return nil, err
	}
	if s.scheme == seal.SchemeCKKS {
		return s.ev.RescaleToNextNew(prod)
	}
	return prod.Clone()
}
