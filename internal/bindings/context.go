package bindings

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"
	"sync"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
	"github.com/tuneinsight/lattigo/v6/schemes/ckks"
)

type contextObj struct {
	parms  Params
	sec    SecurityLevel
	expand bool

	set     bool
	errName string
	errMsg  string

	rlwe rlwe.Parameters
	bgv  bgv.Parameters
	ckks ckks.Parameters

	nodes map[ParmsId]*chainNode
	key   *chainNode
	first *chainNode
	last  *chainNode

	protoOnce sync.Once
	proto     *workspace

	// scratch maps a *poolObj to the sync.Pool of workspaces it owns for
	// this context.
	scratch sync.Map
}

type chainNode struct {
	ctx    *contextObj
	index  int
	level  int
	key    bool
	id     ParmsId
	primes []uint64
	prev   *chainNode
	next   *chainNode
}

type contextDataObj struct {
	node *chainNode
}

// NewContext validates the parameters and builds the modulus switching
// chain. Invalid parameters still produce a context; ContextParametersSet
// reports false and ContextParameterError explains why.
func NewContext(p Params, expandModChain bool, sec SecurityLevel) (h Handle, err error) {
	defer guard(&err)

	c := &contextObj{parms: p.clone(), sec: sec, expand: expandModChain}
	if name, msg := validate(c.parms, sec); name != "" {
		c.errName, c.errMsg = name, msg
		return put(c), nil
	}
	if err := c.build(); err != nil {
		c.errName, c.errMsg = "failed_creating_engine_parameters", err.Error()
		return put(c), nil
	}
	c.set = true
	c.errName, c.errMsg = "success", "valid"
	return put(c), nil
}

func validate(p Params, sec SecurityLevel) (string, string) {
	switch p.Scheme {
	case SchemeBFV, SchemeBGV, SchemeCKKS:
	default:
		return "invalid_scheme", "scheme is not supported"
	}

	n := p.PolyModulusDegree
	if !isPowerOfTwo(n) || n < minPolyModulusDegree || n > maxPolyModulusDegree {
		return "invalid_poly_modulus_degree", fmt.Sprintf("poly modulus degree %d is not a power of two in [%d, %d]", n, minPolyModulusDegree, maxPolyModulusDegree)
	}

	if len(p.CoeffModulus) == 0 || len(p.CoeffModulus) > maxCoeffModulusCount {
		return "invalid_coeff_modulus_size", fmt.Sprintf("coefficient modulus count %d out of range [1, %d]", len(p.CoeffModulus), maxCoeffModulusCount)
	}

	seen := make(map[uint64]bool, len(p.CoeffModulus))
	for _, q := range p.CoeffModulus {
		if b := bitLen(q); b < 2 || b > maxPrimeBits {
			return "invalid_coeff_modulus_bit_count", fmt.Sprintf("coefficient modulus %d has %d bits", q, b)
		}
		if q%(2*n) != 1 || !isPrime(q) {
			return "invalid_coeff_modulus_no_ntt", fmt.Sprintf("coefficient modulus %d is not an NTT-friendly prime for degree %d", q, n)
		}
		if seen[q] {
			return "invalid_coeff_modulus_duplicate", fmt.Sprintf("coefficient modulus %d appears twice", q)
		}
		seen[q] = true
	}

	if p.Scheme.batched() {
		t := p.PlainModulus
		if b := bitLen(t); b < 2 || b > maxPrimeBits {
			return "invalid_plain_modulus_bit_count", fmt.Sprintf("plain modulus %d has %d bits", t, b)
		}
		if seen[t] {
			return "invalid_plain_modulus_coprimality", "plain modulus is not coprime to the coefficient modulus"
		}
		for _, q := range p.CoeffModulus {
			if t >= q {
				return "invalid_plain_modulus_too_large", "plain modulus must be smaller than every coefficient modulus prime"
			}
		}
		if t%(2*n) != 1 || !isPrime(t) {
			return "invalid_plain_modulus_batching", fmt.Sprintf("plain modulus %d is not a prime congruent to 1 mod %d", t, 2*n)
		}
	} else if p.PlainModulus != 0 {
		return "invalid_plain_modulus_nonzero", "plain modulus must be zero for ckks"
	}

	if sec != SecurityNone {
		limit := MaxBitCount(n, sec)
		if total := totalBits(p.CoeffModulus); limit == 0 || total > limit {
			return "invalid_parameters_insecure", fmt.Sprintf("total coefficient modulus bit count %d exceeds %d allowed at %s", total, limit, sec)
		}
	}

	return "", ""
}

func (c *contextObj) split() (q, p []uint64) {
	primes := c.parms.CoeffModulus
	if len(primes) == 1 {
		return slices.Clone(primes), nil
	}
	return slices.Clone(primes[:len(primes)-1]), slices.Clone(primes[len(primes)-1:])
}

func (c *contextObj) build() (err error) {
	q, p := c.split()
	logN := bits.TrailingZeros64(c.parms.PolyModulusDegree)

	switch c.parms.Scheme {
	case SchemeBFV, SchemeBGV:
		// BFV shares the BGV parameters; the evaluators differ only in
		// being scale invariant.
		if c.bgv, err = bgv.NewParametersFromLiteral(bgv.ParametersLiteral{
			LogN:             logN,
			Q:                q,
			P:                p,
			PlaintextModulus: c.parms.PlainModulus,
		}); err != nil {
			return err
		}
		c.rlwe = c.bgv.Parameters
	case SchemeCKKS:
		if c.ckks, err = ckks.NewParametersFromLiteral(ckks.ParametersLiteral{
			LogN:            logN,
			Q:               q,
			P:               p,
			LogDefaultScale: defaultLogScale(q),
		}); err != nil {
			return err
		}
		c.rlwe = c.ckks.Parameters
	}

	c.buildChain(q, p)
	return nil
}

func defaultLogScale(q []uint64) int {
	s := bitLen(q[len(q)-1]) - 1
	if s > 40 {
		s = 40
	}
	if s < 1 {
		s = 1
	}
	return s
}

func (c *contextObj) buildChain(q, p []uint64) {
	scheme, n, t := c.parms.Scheme, c.parms.PolyModulusDegree, c.parms.PlainModulus
	maxLevel := len(q) - 1

	c.nodes = map[ParmsId]*chainNode{}

	lowest := 0
	if !c.expand {
		lowest = maxLevel
	}

	var prev *chainNode
	if len(p) > 0 {
		all := append(slices.Clone(q), p...)
		c.key = &chainNode{
			ctx:    c,
			index:  maxLevel + 1,
			level:  maxLevel,
			key:    true,
			id:     computeParmsId(scheme, n, t, all, true),
			primes: all,
		}
		c.nodes[c.key.id] = c.key
		prev = c.key
	}

	for level := maxLevel; level >= lowest; level-- {
		node := &chainNode{
			ctx:    c,
			index:  level,
			level:  level,
			id:     computeParmsId(scheme, n, t, q[:level+1], false),
			primes: slices.Clone(q[:level+1]),
			prev:   prev,
		}
		if prev != nil {
			prev.next = node
		}
		c.nodes[node.id] = node
		if c.first == nil {
			c.first = node
		}
		c.last = node
		prev = node
	}

	if c.key == nil {
		c.key = c.first
	}
}

func (c *contextObj) requireSet() error {
	if !c.set {
		return raise(CodeParametersNotSet, "encryption parameters are not set correctly: %s", c.errMsg)
	}
	return nil
}

func (c *contextObj) scheme() Scheme { return c.parms.Scheme }

func (c *contextObj) n() int { return int(c.parms.PolyModulusDegree) }

// dataNode returns the data-level node for id. Key-level identifiers are
// rejected unless the key node doubles as the first data node.
func (c *contextObj) dataNode(id ParmsId) (*chainNode, error) {
	node, ok := c.nodes[id]
	if !ok {
		return nil, raise(CodeInvalidData, "parms_id is not valid for encryption parameters")
	}
	if node.key && node != c.first {
		return nil, raise(CodeInvalidData, "parms_id of the key level cannot hold data")
	}
	return node, nil
}

func (c *contextObj) nodeAtLevel(level int) (*chainNode, error) {
	for node := c.first; node != nil; node = node.next {
		if node.level == level {
			return node, nil
		}
	}
	return nil, raise(CodeEndOfModulusChain, "level %d is not part of the modulus switching chain", level)
}

func lookupContext(h Handle) (*contextObj, error) {
	c, err := get[*contextObj](h)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func lookupSetContext(h Handle) (*contextObj, error) {
	c, err := lookupContext(h)
	if err != nil {
		return nil, err
	}
	if err := c.requireSet(); err != nil {
		return nil, err
	}
	return c, nil
}

func ContextParametersSet(h Handle) (bool, error) {
	c, err := lookupContext(h)
	if err != nil {
		return false, err
	}
	return c.set, nil
}

// ContextParameterError returns the short name and the message of the last
// parameter validation.
func ContextParameterError(h Handle) (name, msg string, err error) {
	c, err := lookupContext(h)
	if err != nil {
		return "", "", err
	}
	return c.errName, c.errMsg, nil
}

func ContextParms(h Handle) (Params, error) {
	c, err := lookupContext(h)
	if err != nil {
		return Params{}, err
	}
	return c.parms.clone(), nil
}

func ContextUsingKeyswitching(h Handle) (bool, error) {
	c, err := lookupSetContext(h)
	if err != nil {
		return false, err
	}
	return c.key != c.first, nil
}

func ContextParmsId(h Handle, pos ChainPos) (ParmsId, error) {
	node, err := contextNode(h, pos)
	if err != nil {
		return ParmsIdZero, err
	}
	return node.id, nil
}

// ContextDataAt returns a new ContextData handle for a well-known node.
func ContextDataAt(h Handle, pos ChainPos) (Handle, error) {
	node, err := contextNode(h, pos)
	if err != nil {
		return 0, err
	}
	return put(&contextDataObj{node: node}), nil
}

// ContextDataFor returns a new ContextData handle for id, or 0 if id is not
// part of the chain.
func ContextDataFor(h Handle, id ParmsId) (Handle, error) {
	c, err := lookupSetContext(h)
	if err != nil {
		return 0, err
	}
	node, ok := c.nodes[id]
	if !ok {
		return 0, nil
	}
	return put(&contextDataObj{node: node}), nil
}

func contextNode(h Handle, pos ChainPos) (*chainNode, error) {
	c, err := lookupSetContext(h)
	if err != nil {
		return nil, err
	}
	switch pos {
	case ChainKey:
		return c.key, nil
	case ChainFirst:
		return c.first, nil
	case ChainLast:
		return c.last, nil
	default:
		return nil, raise(CodeInvalidArgument, "unknown chain position %d", pos)
	}
}

// ContextToHuman renders the parameters of every chain node.
func ContextToHuman(h Handle) (string, error) {
	c, err := lookupContext(h)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "/ Encryption parameters:\n")
	fmt.Fprintf(&b, "|   scheme: %s\n", c.parms.Scheme)
	fmt.Fprintf(&b, "|   poly_modulus_degree: %d\n", c.parms.PolyModulusDegree)
	fmt.Fprintf(&b, "|   coeff_modulus size: %d (", totalBits(c.parms.CoeffModulus))
	for i, q := range c.parms.CoeffModulus {
		if i > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%d", bitLen(q))
	}
	b.WriteString(") bits\n")
	if c.parms.Scheme.batched() {
		fmt.Fprintf(&b, "|   plain_modulus: %d\n", c.parms.PlainModulus)
	}
	fmt.Fprintf(&b, "|   security_level: %s\n", c.sec)
	if !c.set {
		fmt.Fprintf(&b, "\\   parameters not set: %s (%s)\n", c.errName, c.errMsg)
		return b.String(), nil
	}
	depth := 0
	for node := c.first; node != nil; node = node.next {
		depth++
	}
	fmt.Fprintf(&b, "\\   modulus switching chain: %d data level(s)\n", depth)
	return b.String(), nil
}

func lookupContextData(h Handle) (*chainNode, error) {
	cd, err := get[*contextDataObj](h)
	if err != nil {
		return nil, err
	}
	return cd.node, nil
}

func ContextDataParms(h Handle) (Params, error) {
	node, err := lookupContextData(h)
	if err != nil {
		return Params{}, err
	}
	p := node.ctx.parms.clone()
	p.CoeffModulus = slices.Clone(node.primes)
	return p, nil
}

func ContextDataParmsId(h Handle) (ParmsId, error) {
	node, err := lookupContextData(h)
	if err != nil {
		return ParmsIdZero, err
	}
	return node.id, nil
}

func ContextDataChainIndex(h Handle) (int, error) {
	node, err := lookupContextData(h)
	if err != nil {
		return 0, err
	}
	return node.index, nil
}

func ContextDataTotalCoeffModulusBitCount(h Handle) (int, error) {
	node, err := lookupContextData(h)
	if err != nil {
		return 0, err
	}
	return totalBits(node.primes), nil
}

func ContextDataQualifiers(h Handle) (Qualifiers, error) {
	node, err := lookupContextData(h)
	if err != nil {
		return Qualifiers{}, err
	}
	c := node.ctx
	q := Qualifiers{
		ParametersSet: c.set,
		UsingFFT:      true,
		UsingNTT:      true,
		UsingBatching: c.parms.Scheme.batched(),
		SecurityLevel: c.sec,
	}
	q.UsingDescendingModulusChain = slices.IsSortedFunc(node.primes, func(a, b uint64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})
	if c.parms.Scheme.batched() {
		q.UsingFastPlainLift = true
		for _, p := range node.primes {
			if p <= c.parms.PlainModulus {
				q.UsingFastPlainLift = false
			}
		}
	}
	return q, nil
}

// ContextDataPrev returns a handle to the node one step closer to the key
// level, or 0 at the head of the chain.
func ContextDataPrev(h Handle) (Handle, error) {
	node, err := lookupContextData(h)
	if err != nil {
		return 0, err
	}
	if node.prev == nil {
		return 0, nil
	}
	return put(&contextDataObj{node: node.prev}), nil
}

// ContextDataNext returns a handle to the node one level lower, or 0 at the
// end of the chain.
func ContextDataNext(h Handle) (Handle, error) {
	node, err := lookupContextData(h)
	if err != nil {
		return 0, err
	}
	if node.next == nil {
		return 0, nil
	}
	return put(&contextDataObj{node: node.next}), nil
}
