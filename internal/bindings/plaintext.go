package bindings

import (
	"strconv"
	"strings"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/ring"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
	"github.com/tuneinsight/lattigo/v6/schemes/ckks"
)

// plainObj stores a plaintext as a flat coefficient array. Integer
// plaintexts hold coefficients mod t and carry ParmsIdZero. NTT-form
// plaintexts hold (level+1) residue blocks of N words and the ParmsId of
// their level.
type plainObj struct {
	data  []uint64
	id    ParmsId
	scale float64
}

func (p *plainObj) release() {
	clear(p.data[:cap(p.data)])
}

// NewPlainText allocates a plaintext with coeffCount zero coefficients and
// room for capacity coefficients.
func NewPlainText(capacity, coeffCount int) (Handle, error) {
	if coeffCount < 0 || capacity < 0 {
		return 0, raise(CodeInvalidArgument, "negative plaintext size")
	}
	if capacity < coeffCount {
		capacity = coeffCount
	}
	return put(&plainObj{data: make([]uint64, coeffCount, capacity), scale: 1}), nil
}

func lookupPlain(h Handle) (*plainObj, error) {
	return get[*plainObj](h)
}

func PlainCoeffCount(h Handle) (int, error) {
	p, err := lookupPlain(h)
	if err != nil {
		return 0, err
	}
	return len(p.data), nil
}

func PlainCapacity(h Handle) (int, error) {
	p, err := lookupPlain(h)
	if err != nil {
		return 0, err
	}
	return cap(p.data), nil
}

func PlainIsZero(h Handle) (bool, error) {
	p, err := lookupPlain(h)
	if err != nil {
		return false, err
	}
	return p.isZero(), nil
}

func (p *plainObj) isZero() bool {
	for _, x := range p.data {
		if x != 0 {
			return false
		}
	}
	return true
}

func PlainIsNTTForm(h Handle) (bool, error) {
	p, err := lookupPlain(h)
	if err != nil {
		return false, err
	}
	return !p.id.IsZero(), nil
}

func PlainParmsId(h Handle) (ParmsId, error) {
	p, err := lookupPlain(h)
	if err != nil {
		return ParmsIdZero, err
	}
	return p.id, nil
}

func PlainScale(h Handle) (float64, error) {
	p, err := lookupPlain(h)
	if err != nil {
		return 0, err
	}
	return p.scale, nil
}

func PlainSetScale(h Handle, scale float64) error {
	p, err := lookupPlain(h)
	if err != nil {
		return err
	}
	if !(scale > 0) {
		return raise(CodeInvalidArgument, "scale must be positive")
	}
	p.scale = scale
	return nil
}

func PlainCoefficient(h Handle, i int) (uint64, error) {
	p, err := lookupPlain(h)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(p.data) {
		return 0, raise(CodeInvalidArgument, "coefficient index %d out of range [0, %d)", i, len(p.data))
	}
	return p.data[i], nil
}

func PlainSetCoefficient(h Handle, i int, v uint64) error {
	p, err := lookupPlain(h)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(p.data) {
		return raise(CodeInvalidArgument, "coefficient index %d out of range [0, %d)", i, len(p.data))
	}
	p.data[i] = v
	return nil
}

func PlainNonZeroCoeffCount(h Handle) (int, error) {
	p, err := lookupPlain(h)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, x := range p.data {
		if x != 0 {
			n++
		}
	}
	return n, nil
}

func PlainSignificantCoeffCount(h Handle) (int, error) {
	p, err := lookupPlain(h)
	if err != nil {
		return 0, err
	}
	return p.significant(), nil
}

func (p *plainObj) significant() int {
	for i := len(p.data) - 1; i >= 0; i-- {
		if p.data[i] != 0 {
			return i + 1
		}
	}
	return 0
}

// PlainToPolynomial renders an integer plaintext as a polynomial with
// upper-case hexadecimal coefficients, highest degree first.
func PlainToPolynomial(h Handle) (string, error) {
	p, err := lookupPlain(h)
	if err != nil {
		return "", err
	}
	if !p.id.IsZero() {
		return "", raise(CodeNTTForm, "cannot render an NTT-form plaintext")
	}
	return formatPolynomial(p.data), nil
}

func formatPolynomial(coeffs []uint64) string {
	var b strings.Builder
	for i := len(coeffs) - 1; i >= 0; i-- {
		c := coeffs[i]
		if c == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(strings.ToUpper(strconv.FormatUint(c, 16)))
		switch {
		case i > 1:
			b.WriteString("x^")
			b.WriteString(strconv.Itoa(i))
		case i == 1:
			b.WriteString("x^1")
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// PlainFromPolynomial parses the format produced by PlainToPolynomial into
// the plaintext behind h.
func PlainFromPolynomial(h Handle, poly string) error {
	p, err := lookupPlain(h)
	if err != nil {
		return err
	}
	coeffs, err := parsePolynomial(poly)
	if err != nil {
		return err
	}
	p.data = append(p.data[:0], coeffs...)
	p.id = ParmsIdZero
	p.scale = 1
	return nil
}

func parsePolynomial(poly string) ([]uint64, error) {
	poly = strings.TrimSpace(poly)
	if poly == "" {
		return nil, raise(CodeInvalidArgument, "empty polynomial")
	}
	var coeffs []uint64
	for _, term := range strings.Split(poly, "+") {
		term = strings.TrimSpace(term)
		coeff, power, found := strings.Cut(term, "x^")
		deg := 0
		if found {
			d, err := strconv.Atoi(power)
			if err != nil || d < 0 {
				return nil, raise(CodeInvalidArgument, "invalid exponent in term %q", term)
			}
			deg = d
		}
		c, err := strconv.ParseUint(coeff, 16, 64)
		if err != nil {
			return nil, raise(CodeInvalidArgument, "invalid coefficient in term %q", term)
		}
		if deg >= len(coeffs) {
			coeffs = append(coeffs, make([]uint64, deg+1-len(coeffs))...)
		}
		coeffs[deg] = c
	}
	return coeffs, nil
}

// PlainReserve changes the capacity, truncating the coefficients if the new
// capacity is smaller than the current count.
func PlainReserve(h Handle, capacity int) error {
	p, err := lookupPlain(h)
	if err != nil {
		return err
	}
	if capacity < 0 {
		return raise(CodeInvalidArgument, "negative capacity")
	}
	n := min(capacity, len(p.data))
	data := make([]uint64, n, capacity)
	copy(data, p.data)
	clear(p.data[:cap(p.data)])
	p.data = data
	return nil
}

// PlainResize changes the coefficient count. New coefficients are zero.
func PlainResize(h Handle, coeffCount int) error {
	p, err := lookupPlain(h)
	if err != nil {
		return err
	}
	if coeffCount < 0 {
		return raise(CodeInvalidArgument, "negative coefficient count")
	}
	p.resize(coeffCount)
	return nil
}

func (p *plainObj) resize(n int) {
	if n <= cap(p.data) {
		old := len(p.data)
		p.data = p.data[:n]
		if n > old {
			clear(p.data[old:])
		}
		return
	}
	data := make([]uint64, n)
	copy(data, p.data)
	p.data = data
}

func PlainRelease(h Handle) error {
	p, err := lookupPlain(h)
	if err != nil {
		return err
	}
	p.release()
	p.data = nil
	p.id = ParmsIdZero
	p.scale = 1
	return nil
}

func PlainSetZero(h Handle) error {
	p, err := lookupPlain(h)
	if err != nil {
		return err
	}
	clear(p.data)
	return nil
}

// PlainCopy overwrites dst with a deep copy of src.
func PlainCopy(dst, src Handle) error {
	s, err := lookupPlain(src)
	if err != nil {
		return err
	}
	d, err := lookupPlain(dst)
	if err != nil {
		return err
	}
	if d == s {
		return nil
	}
	d.resize(len(s.data))
	copy(d.data, s.data)
	d.id, d.scale = s.id, s.scale
	return nil
}

func PlainClone(h Handle) (Handle, error) {
	p, err := lookupPlain(h)
	if err != nil {
		return 0, err
	}
	return put(&plainObj{data: append(make([]uint64, 0, cap(p.data)), p.data...), id: p.id, scale: p.scale}), nil
}

func (c *contextObj) newEnginePlain(level int) *rlwe.Plaintext {
	if c.scheme() == SchemeCKKS {
		return ckks.NewPlaintext(c.ckks, level)
	}
	return bgv.NewPlaintext(c.bgv, level)
}

// loadRingT copies an integer plaintext into the ring T buffer of w after
// checking that it is valid for the parameters.
func (c *contextObj) loadRingT(w *workspace, p *plainObj) error {
	if !p.id.IsZero() {
		return raise(CodeNTTForm, "plain cannot be in NTT form")
	}
	n, t := c.n(), c.parms.PlainModulus
	if len(p.data) > n {
		return raise(CodeInvalidData, "plain has %d coefficients, more than poly modulus degree %d", len(p.data), n)
	}
	dst := w.bufT.Coeffs[0]
	for i, x := range p.data {
		if x >= t {
			return raise(CodeInvalidData, "plain coefficient %d is not reduced modulo the plain modulus", i)
		}
		dst[i] = x
	}
	clear(dst[len(p.data):])
	return nil
}

// liftPlain embeds an integer plaintext into R_Q at node's level in NTT
// form, with unit scale.
func (c *contextObj) liftPlain(w *workspace, p *plainObj, node *chainNode) (*rlwe.Plaintext, error) {
	if err := c.loadRingT(w, p); err != nil {
		return nil, err
	}
	pt := c.newEnginePlain(node.level)
	pt.Scale = rlwe.NewScale(1)
	w.bgvEnc.RingT2Q(node.level, true, w.bufT, pt.Value)
	c.rlwe.RingQ().AtLevel(node.level).NTT(pt.Value, pt.Value)
	pt.IsNTT = true
	return pt, nil
}

// nttPlain wraps an NTT-form plaintext stored at node's level.
func (c *contextObj) nttPlain(p *plainObj, node *chainNode) (*rlwe.Plaintext, error) {
	if p.id.IsZero() {
		return nil, raise(CodeNTTForm, "plain is not in NTT form")
	}
	if p.id != node.id {
		return nil, raise(CodeParameterMismatch, "plain and encrypted parameter mismatch")
	}
	n := c.n()
	if len(p.data) != n*(node.level+1) {
		return nil, raise(CodeInvalidData, "plain is not valid for encryption parameters")
	}
	pt := c.newEnginePlain(node.level)
	for i := 0; i <= node.level; i++ {
		copy(pt.Value.Coeffs[i], p.data[i*n:(i+1)*n])
	}
	pt.IsNTT = true
	if c.scheme() == SchemeCKKS {
		pt.Scale = rlwe.NewScale(p.scale)
	} else {
		pt.Scale = rlwe.NewScale(1)
	}
	return pt, nil
}

// storeNTT overwrites p with the residues of an NTT-form engine plaintext.
func (c *contextObj) storeNTT(p *plainObj, pt *rlwe.Plaintext, node *chainNode, scale float64) {
	n := c.n()
	p.resize(n * (node.level + 1))
	for i := 0; i <= node.level; i++ {
		copy(p.data[i*n:(i+1)*n], pt.Value.Coeffs[i][:n])
	}
	p.id = node.id
	p.scale = scale
}

// storeRingT overwrites p with N coefficients mod t taken from w.bufT.
func (c *contextObj) storeRingT(w *workspace, p *plainObj) {
	n := c.n()
	p.resize(n)
	copy(p.data, w.bufT.Coeffs[0][:n])
	p.id = ParmsIdZero
	p.scale = 1
}

// lowerToRingT converts an engine plaintext in R_Q back to coefficients mod
// t in w.bufT, removing the plaintext scale.
func (c *contextObj) lowerToRingT(w *workspace, pt *rlwe.Plaintext) {
	level := pt.Level()
	ringQ := c.rlwe.RingQ().AtLevel(level)
	if pt.IsNTT {
		ringQ.INTT(pt.Value, pt.Value)
		pt.IsNTT = false
	}
	ringT := c.bgv.RingT()
	// RingQ2T leaves the coefficients lazily reduced above level 0.
	w.bgvEnc.RingQ2T(level, true, pt.Value, w.bufT)
	ringT.Reduce(w.bufT, w.bufT)
	if s := pt.Scale.Uint64(); s != 1 {
		t := c.parms.PlainModulus
		ringT.MulScalar(w.bufT, ring.ModExp(s%t, t-2, t), w.bufT)
	}
}

// validNTTPlain reports whether an NTT-form plaintext matches its level.
func (c *contextObj) validNTTPlain(p *plainObj) error {
	node, err := c.dataNode(p.id)
	if err != nil {
		return err
	}
	n := c.n()
	if len(p.data) != n*(node.level+1) {
		return raise(CodeInvalidData, "plain is not valid for encryption parameters")
	}
	for i, q := range node.primes {
		for _, x := range p.data[i*n : (i+1)*n] {
			if x >= q {
				return raise(CodeInvalidData, "plain is not valid for encryption parameters")
			}
		}
	}
	return nil
}

// validPlain checks a plaintext against the context without an engine
// workspace.
func (c *contextObj) validPlain(p *plainObj) error {
	if !p.id.IsZero() {
		return c.validNTTPlain(p)
	}
	if !c.scheme().batched() {
		return raise(CodeInvalidData, "plain is not valid for encryption parameters")
	}
	if len(p.data) > c.n() {
		return raise(CodeInvalidData, "plain is not valid for encryption parameters")
	}
	for _, x := range p.data {
		if x >= c.parms.PlainModulus {
			return raise(CodeInvalidData, "plain is not valid for encryption parameters")
		}
	}
	return nil
}
