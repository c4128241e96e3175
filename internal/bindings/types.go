package bindings

// Scheme selects one of the supported encryption schemes. The numeric values
// are stable and appear in serialized parameters.
type Scheme uint8

const (
	SchemeNone Scheme = 0
	SchemeBFV  Scheme = 1
	SchemeCKKS Scheme = 2
	SchemeBGV  Scheme = 3
)

func (s Scheme) String() string {
	switch s {
	case SchemeBFV:
		return "bfv"
	case SchemeCKKS:
		return "ckks"
	case SchemeBGV:
		return "bgv"
	default:
		return "none"
	}
}

// batched reports whether the scheme uses integer batching.
func (s Scheme) batched() bool {
	return s == SchemeBFV || s == SchemeBGV
}

// SecurityLevel is the classical security level in bits enforced on the
// total coefficient modulus size.
type SecurityLevel int

const (
	SecurityNone  SecurityLevel = 0
	SecurityTC128 SecurityLevel = 128
	SecurityTC192 SecurityLevel = 192
	SecurityTC256 SecurityLevel = 256
)

func (l SecurityLevel) String() string {
	switch l {
	case SecurityTC128:
		return "tc128"
	case SecurityTC192:
		return "tc192"
	case SecurityTC256:
		return "tc256"
	default:
		return "none"
	}
}

// ComprMode is the compression applied to serialized payloads.
type ComprMode uint8

const (
	ComprNone ComprMode = 0
	ComprZlib ComprMode = 1
	ComprZstd ComprMode = 2
)

func (m ComprMode) String() string {
	switch m {
	case ComprNone:
		return "none"
	case ComprZlib:
		return "zlib"
	case ComprZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// Params is the engine view of a set of encryption parameters. When more
// than one coefficient modulus prime is given, the last one is the special
// prime used only for key switching.
type Params struct {
	Scheme            Scheme
	PolyModulusDegree uint64
	CoeffModulus      []uint64
	PlainModulus      uint64
}

func (p Params) clone() Params {
	p.CoeffModulus = append([]uint64(nil), p.CoeffModulus...)
	return p
}

// Qualifiers describes properties of a validated parameter set.
type Qualifiers struct {
	ParametersSet               bool
	UsingFFT                    bool
	UsingNTT                    bool
	UsingBatching               bool
	UsingFastPlainLift          bool
	UsingDescendingModulusChain bool
	SecurityLevel               SecurityLevel
}

// ChainPos names the well-known nodes of a modulus switching chain.
type ChainPos int

const (
	ChainKey ChainPos = iota
	ChainFirst
	ChainLast
)

// maxCiphertextSize bounds the number of polynomials a ciphertext may hold.
const maxCiphertextSize = 16
