package seal

import "github.com/s0l0ist/sealgo/internal/bindings"

// Encryptor encrypts plaintexts with a public key, a secret key, or both.
type Encryptor struct {
	handle
	ctx *Context
}

func keyHandle(k *handle) (Handle, error) {
	if k == nil {
		return 0, nil
	}
	if k.h == 0 {
		return 0, ErrInvalidHandle
	}
	return k.h, nil
}

// NewEncryptor creates an encryptor. Either key may be nil, not both.
func NewEncryptor(ctx *Context, pk *PublicKey, sk *SecretKey) (*Encryptor, error) {
	if ctx == nil {
		return nil, ErrInvalidHandle
	}
	var pkH, skH Handle
	var err error
	if pk != nil {
		if pkH, err = keyHandle(&pk.handle); err != nil {
			return nil, err
		}
	}
	if sk != nil {
		if skH, err = keyHandle(&sk.handle); err != nil {
			return nil, err
		}
	}
	h, err := bindings.NewEncryptor(ctx.h, pkH, skH)
	if err != nil {
		return nil, translate(err)
	}
	return track(&Encryptor{handle: handle{h}, ctx: ctx}), nil
}

func (e *Encryptor) SetPublicKey(pk *PublicKey) error {
	return translate(bindings.EncryptorSetPublicKey(e.h, pk.h))
}

func (e *Encryptor) SetSecretKey(sk *SecretKey) error {
	return translate(bindings.EncryptorSetSecretKey(e.h, sk.h))
}

// Encrypt encrypts pt with the public key into dst. BFV and BGV take a
// plaintext from a BatchEncoder; CKKS takes an NTT-form plaintext and
// encrypts it at its level.
func (e *Encryptor) Encrypt(pt *PlainText, dst *CipherText) error {
	return translate(bindings.Encrypt(e.h, pt.h, dst.h, false))
}

func (e *Encryptor) EncryptNew(pt *PlainText) (*CipherText, error) {
	return e.into(func(dst *CipherText) error { return e.Encrypt(pt, dst) })
}

// EncryptSymmetric encrypts pt with the secret key.
func (e *Encryptor) EncryptSymmetric(pt *PlainText, dst *CipherText) error {
	return translate(bindings.Encrypt(e.h, pt.h, dst.h, true))
}

func (e *Encryptor) EncryptSymmetricNew(pt *PlainText) (*CipherText, error) {
	return e.into(func(dst *CipherText) error { return e.EncryptSymmetric(pt, dst) })
}

// EncryptZero encrypts zero at the first data level with the public key.
func (e *Encryptor) EncryptZero(dst *CipherText) error {
	return translate(bindings.Encrypt(e.h, 0, dst.h, false))
}

func (e *Encryptor) EncryptZeroNew() (*CipherText, error) {
	return e.into(e.EncryptZero)
}

func (e *Encryptor) into(fn func(*CipherText) error) (*CipherText, error) {
	dst, err := NewCipherText(e.ctx, nil)
	if err != nil {
		return nil, err
	}
	if err := fn(dst); err != nil {
		dst.Delete()
		return nil, err
	}
	return dst, nil
}
