package bindings

import (
	"sync"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
)

type encryptorObj struct {
	ctx *contextObj

	mu  sync.Mutex
	pk  *rlwe.Encryptor
	sk  *rlwe.Encryptor
	key *rlwe.SecretKey
}

func (o *encryptorObj) release() {
	if o.key != nil {
		scrubPoly(o.key.Value.Q)
		scrubPoly(o.key.Value.P)
		o.key = nil
	}
}

// NewEncryptor creates an encryptor holding a public key, a secret key, or
// both. Either handle may be 0, not both.
func NewEncryptor(ctxH, pkH, skH Handle) (h Handle, err error) {
	defer guard(&err)

	c, err := lookupSetContext(ctxH)
	if err != nil {
		return 0, err
	}
	if pkH == 0 && skH == 0 {
		return 0, raise(CodeKeyMissing, "encryptor needs a public key or a secret key")
	}
	o := &encryptorObj{ctx: c}
	if pkH != 0 {
		if err := o.setPublicKey(pkH); err != nil {
			return 0, err
		}
	}
	if skH != 0 {
		if err := o.setSecretKey(skH); err != nil {
			return 0, err
		}
	}
	return put(o), nil
}

func (o *encryptorObj) setPublicKey(h Handle) error {
	pk, err := lookupPublicKey(h, o.ctx)
	if err != nil {
		return err
	}
	o.pk = rlwe.NewEncryptor(o.ctx.rlwe, pk.CopyNew())
	return nil
}

func (o *encryptorObj) setSecretKey(h Handle) error {
	sk, err := lookupSecretKey(h, o.ctx)
	if err != nil {
		return err
	}
	o.release()
	o.key = sk.CopyNew()
	o.sk = rlwe.NewEncryptor(o.ctx.rlwe, o.key)
	return nil
}

func EncryptorSetPublicKey(h, pkH Handle) (err error) {
	defer guard(&err)

	o, err := get[*encryptorObj](h)
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.setPublicKey(pkH)
}

func EncryptorSetSecretKey(h, skH Handle) (err error) {
	defer guard(&err)

	o, err := get[*encryptorObj](h)
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.setSecretKey(skH)
}

// Encrypt encrypts plainH into dstH. symmetric selects the secret key. A
// zero plainH encrypts zero at the first level.
func Encrypt(h, plainH, dstH Handle, symmetric bool) (err error) {
	defer guard(&err)

	o, err := get[*encryptorObj](h)
	if err != nil {
		return err
	}
	dst, err := lookupCipher(dstH)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	enc := o.pk
	if symmetric {
		enc = o.sk
	}
	if enc == nil {
		if symmetric {
			return raise(CodeKeyMissing, "encryptor has no secret key")
		}
		return raise(CodeKeyMissing, "encryptor has no public key")
	}

	c := o.ctx
	var pt *rlwe.Plaintext
	node := c.first
	if plainH != 0 {
		p, err := lookupPlain(plainH)
		if err != nil {
			return err
		}
		if c.scheme() == SchemeCKKS {
			if node, err = c.dataNode(p.id); err != nil {
				return err
			}
			if pt, err = c.nttPlain(p, node); err != nil {
				return err
			}
		} else {
			if !p.id.IsZero() {
				return raise(CodeNTTForm, "plain cannot be in NTT form")
			}
			w, done := c.acquire(globalPool)
			pt, err = c.liftPlain(w, p, node)
			done()
			if err != nil {
				return err
			}
		}
	}

	ct := c.newEngineCipher(1, node.level)
	if pt != nil {
		err = enc.Encrypt(pt, ct)
	} else {
		err = enc.EncryptZero(ct)
	}
	if err != nil {
		return wrap(CodeInvalidArgument, err, "encrypt")
	}
	return dst.install(c, ct, c.defaultNTT())
}
