package bindings

import (
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
	"github.com/tuneinsight/lattigo/v6/schemes/ckks"
)

// cipherObj is a ciphertext bound to one node of a context chain. The engine
// keeps ciphertexts in NTT form; when ntt is false the stored polynomials
// are in coefficient form and are transformed on entry to every engine
// operation.
type cipherObj struct {
	ctx      *contextObj
	node     *chainNode
	ct       *rlwe.Ciphertext
	capacity int
	ntt      bool
}

func (o *cipherObj) size() int {
	if o.ct == nil {
		return 0
	}
	return o.ct.Degree() + 1
}

// defaultNTT is the representation fresh ciphertexts use: BFV works in
// coefficient form, BGV and CKKS in NTT form.
func (c *contextObj) defaultNTT() bool {
	return c.scheme() != SchemeBFV
}

// NewCipherText allocates an empty ciphertext at id with room for
// sizeCapacity polynomials.
func NewCipherText(ctxH Handle, id ParmsId, sizeCapacity int) (h Handle, err error) {
	defer guard(&err)

	c, err := lookupSetContext(ctxH)
	if err != nil {
		return 0, err
	}
	if id.IsZero() {
		id = c.first.id
	}
	node, err := c.dataNode(id)
	if err != nil {
		return 0, err
	}
	if sizeCapacity < 2 || sizeCapacity > maxCiphertextSize {
		return 0, raise(CodeInvalidArgument, "size capacity %d out of range [2, %d]", sizeCapacity, maxCiphertextSize)
	}
	return put(&cipherObj{ctx: c, node: node, capacity: sizeCapacity, ntt: c.defaultNTT()}), nil
}

func lookupCipher(h Handle) (*cipherObj, error) {
	return get[*cipherObj](h)
}

func (c *contextObj) newEngineCipher(degree, level int) *rlwe.Ciphertext {
	if c.scheme() == SchemeCKKS {
		return ckks.NewCiphertext(c.ckks, degree, level)
	}
	return bgv.NewCiphertext(c.bgv, degree, level)
}

func CipherCoeffModulusSize(h Handle) (int, error) {
	o, err := lookupCipher(h)
	if err != nil {
		return 0, err
	}
	if o.node == nil {
		return 0, nil
	}
	return len(o.node.primes), nil
}

func CipherPolyModulusDegree(h Handle) (int, error) {
	o, err := lookupCipher(h)
	if err != nil {
		return 0, err
	}
	if o.node == nil {
		return 0, nil
	}
	return o.ctx.n(), nil
}

func CipherSize(h Handle) (int, error) {
	o, err := lookupCipher(h)
	if err != nil {
		return 0, err
	}
	return o.size(), nil
}

func CipherSizeCapacity(h Handle) (int, error) {
	o, err := lookupCipher(h)
	if err != nil {
		return 0, err
	}
	return o.capacity, nil
}

// CipherIsTransparent reports whether the ciphertext reveals its content:
// it has fewer than two polynomials or its second polynomial is zero.
func CipherIsTransparent(h Handle) (bool, error) {
	o, err := lookupCipher(h)
	if err != nil {
		return false, err
	}
	if o.size() < 2 {
		return true, nil
	}
	for i := 0; i <= o.ct.Level(); i++ {
		for _, x := range o.ct.Value[1].Coeffs[i] {
			if x != 0 {
				return false, nil
			}
		}
	}
	return true, nil
}

func CipherIsNTTForm(h Handle) (bool, error) {
	o, err := lookupCipher(h)
	if err != nil {
		return false, err
	}
	return o.ntt, nil
}

func CipherParmsId(h Handle) (ParmsId, error) {
	o, err := lookupCipher(h)
	if err != nil {
		return ParmsIdZero, err
	}
	if o.node == nil {
		return ParmsIdZero, nil
	}
	return o.node.id, nil
}

// CipherScale returns the CKKS scale. Integer schemes always report 1.
func CipherScale(h Handle) (float64, error) {
	o, err := lookupCipher(h)
	if err != nil {
		return 0, err
	}
	if o.ct == nil || o.ctx.scheme() != SchemeCKKS {
		return 1, nil
	}
	return o.ct.Scale.Float64(), nil
}

func CipherSetScale(h Handle, scale float64) error {
	o, err := lookupCipher(h)
	if err != nil {
		return err
	}
	if o.ctx.scheme() != SchemeCKKS {
		return raise(CodeSchemeMismatch, "scale can only be set for ckks ciphertexts")
	}
	if !(scale > 0) {
		return raise(CodeInvalidArgument, "scale must be positive")
	}
	if o.ct == nil {
		return raise(CodeInvalidData, "ciphertext is empty")
	}
	o.ct.Scale = rlwe.NewScale(scale)
	return nil
}

// CipherReserve changes the size capacity. The size is truncated if the new
// capacity is smaller.
func CipherReserve(h Handle, capacity int) error {
	o, err := lookupCipher(h)
	if err != nil {
		return err
	}
	if capacity < 2 || capacity > maxCiphertextSize {
		return raise(CodeInvalidArgument, "size capacity %d out of range [2, %d]", capacity, maxCiphertextSize)
	}
	if o.size() > capacity {
		o.ct.Resize(capacity-1, o.ct.Level())
	}
	o.capacity = capacity
	return nil
}

// CipherResize changes the number of polynomials; new ones are zero.
func CipherResize(h Handle, size int) error {
	o, err := lookupCipher(h)
	if err != nil {
		return err
	}
	if size < 2 || size > maxCiphertextSize {
		return raise(CodeInvalidArgument, "size %d out of range [2, %d]", size, maxCiphertextSize)
	}
	if o.node == nil {
		return raise(CodeInvalidData, "ciphertext has no parameters")
	}
	if o.ct == nil {
		o.ct = o.ctx.newEngineCipher(size-1, o.node.level)
		o.ct.IsNTT = o.ntt
	} else {
		o.ct.Resize(size-1, o.node.level)
	}
	o.capacity = max(o.capacity, size)
	return nil
}

func CipherRelease(h Handle) error {
	o, err := lookupCipher(h)
	if err != nil {
		return err
	}
	o.ct = nil
	o.node = nil
	o.capacity = 0
	return nil
}

// CipherCopy overwrites dst with a deep copy of src.
func CipherCopy(dst, src Handle) error {
	s, err := lookupCipher(src)
	if err != nil {
		return err
	}
	d, err := lookupCipher(dst)
	if err != nil {
		return err
	}
	if d == s {
		return nil
	}
	*d = s.clone()
	return nil
}

func (o *cipherObj) clone() cipherObj {
	out := *o
	if o.ct != nil {
		out.ct = o.ct.CopyNew()
	}
	return out
}

func CipherClone(h Handle) (Handle, error) {
	o, err := lookupCipher(h)
	if err != nil {
		return 0, err
	}
	out := o.clone()
	return put(&out), nil
}

// engineIn returns the ciphertext in the form the engine expects: NTT form
// at the node level. Coefficient-form ciphertexts are transformed into a
// copy.
func (o *cipherObj) engineIn() (*rlwe.Ciphertext, error) {
	if o.ct == nil || o.node == nil {
		return nil, raise(CodeInvalidData, "encrypted is empty")
	}
	if o.ntt {
		return o.ct, nil
	}
	ct := o.ct.CopyNew()
	ringQ := o.ctx.rlwe.RingQ().AtLevel(ct.Level())
	for i := range ct.Value {
		ringQ.NTT(ct.Value[i], ct.Value[i])
	}
	ct.IsNTT = true
	return ct, nil
}

// install stores ct into o, converting it to the form ntt asks for. ct may
// come from the engine or be a copy of a stored value; its IsNTT flag says
// which.
func (o *cipherObj) install(c *contextObj, ct *rlwe.Ciphertext, ntt bool) error {
	node, err := c.nodeAtLevel(ct.Level())
	if err != nil {
		return err
	}
	if ct.IsNTT != ntt {
		ringQ := c.rlwe.RingQ().AtLevel(ct.Level())
		for i := range ct.Value {
			if ntt {
				ringQ.NTT(ct.Value[i], ct.Value[i])
			} else {
				ringQ.INTT(ct.Value[i], ct.Value[i])
			}
		}
		ct.IsNTT = ntt
	}
	o.ctx = c
	o.node = node
	o.ct = ct
	o.ntt = ntt
	o.capacity = max(o.capacity, ct.Degree()+1)
	return nil
}

// validCipher checks that a ciphertext belongs to c and is usable.
func (c *contextObj) validCipher(o *cipherObj) error {
	if o.ct == nil || o.node == nil {
		return raise(CodeInvalidData, "encrypted is empty")
	}
	if o.ctx != c {
		if o.ctx.parms.Scheme != c.parms.Scheme {
			return raise(CodeInvalidData, "encrypted is not valid for encryption parameters")
		}
		if _, ok := c.nodes[o.node.id]; !ok {
			return raise(CodeInvalidData, "encrypted is not valid for encryption parameters")
		}
	}
	if o.ct.Degree() < 1 {
		return raise(CodeInvalidData, "encrypted is not valid for encryption parameters")
	}
	return nil
}
