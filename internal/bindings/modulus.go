package bindings

import (
	"math/bits"

	"github.com/tuneinsight/lattigo/v6/ring"
)

// maxBitCount holds the largest total coefficient modulus bit count allowed
// by the HomomorphicEncryption.org security tables, per ring degree.
var maxBitCount = map[SecurityLevel]map[uint64]int{
	SecurityTC128: {1024: 27, 2048: 54, 4096: 109, 8192: 218, 16384: 438, 32768: 881},
	SecurityTC192: {1024: 19, 2048: 37, 4096: 75, 8192: 152, 16384: 305, 32768: 611},
	SecurityTC256: {1024: 14, 2048: 29, 4096: 58, 8192: 118, 16384: 237, 32768: 476},
}

var bfvDefaultBits = map[SecurityLevel]map[uint64][]int{
	SecurityTC128: {
		1024:  {27},
		2048:  {54},
		4096:  {36, 36, 37},
		8192:  {43, 43, 44, 44, 44},
		16384: {48, 48, 48, 49, 49, 49, 49, 49, 49},
		32768: {55, 55, 55, 55, 55, 55, 56, 56, 56, 56, 56, 56, 56, 56, 56, 56},
	},
	SecurityTC192: {
		1024:  {19},
		2048:  {37},
		4096:  {25, 25, 25},
		8192:  {38, 38, 38, 38},
		16384: {50, 50, 50, 50, 50, 50},
		32768: {51, 51, 51, 51, 51, 51, 51, 51, 51, 51, 51},
	},
	SecurityTC256: {
		1024:  {14},
		2048:  {29},
		4096:  {58},
		8192:  {39, 39, 40},
		16384: {47, 47, 47, 48, 48},
		32768: {52, 52, 52, 52, 52, 52, 52, 52, 52},
	},
}

const (
	minPolyModulusDegree = 1024
	maxPolyModulusDegree = 32768
	maxPrimeBits         = 60
	maxCoeffModulusCount = 64
)

// MaxBitCount returns the largest secure total coefficient modulus bit count
// for the ring degree, or 0 if the pair is not tabulated.
func MaxBitCount(n uint64, sec SecurityLevel) int {
	if sec == SecurityNone {
		return int(^uint(0) >> 1)
	}
	return maxBitCount[sec][n]
}

// BFVDefaultBits returns the default prime sizes for the ring degree.
func BFVDefaultBits(n uint64, sec SecurityLevel) ([]int, error) {
	table, ok := bfvDefaultBits[sec]
	if !ok {
		return nil, raise(CodeInvalidArgument, "no default coefficient modulus for security level %s", sec)
	}
	sizes, ok := table[n]
	if !ok {
		return nil, raise(CodeInvalidArgument, "no default coefficient modulus for poly modulus degree %d", n)
	}
	return append([]int(nil), sizes...), nil
}

// CreatePrimes returns, for every requested bit size, a distinct prime
// congruent to 1 modulo 2n that fits in exactly that many bits. Primes of
// equal size are returned in decreasing order.
func CreatePrimes(n uint64, bitSizes []int) (primes []uint64, err error) {
	defer guard(&err)

	if !isPowerOfTwo(n) || n < 2 {
		return nil, raise(CodeInvalidArgument, "poly modulus degree %d is not a power of two", n)
	}
	if len(bitSizes) == 0 || len(bitSizes) > maxCoeffModulusCount {
		return nil, raise(CodeInvalidArgument, "coefficient modulus count %d out of range", len(bitSizes))
	}

	count := map[int]int{}
	for _, b := range bitSizes {
		if b < 2 || b > maxPrimeBits {
			return nil, raise(CodeInvalidArgument, "prime bit size %d out of range [2, %d]", b, maxPrimeBits)
		}
		count[b]++
	}

	found := map[int][]uint64{}
	for b, c := range count {
		if found[b], err = primesBelow(b, 2*n, c); err != nil {
			return nil, err
		}
	}

	primes = make([]uint64, len(bitSizes))
	for i, b := range bitSizes {
		primes[i] = found[b][0]
		found[b] = found[b][1:]
	}
	return primes, nil
}

// BatchingPrime returns the largest prime of the given bit size that is
// congruent to 1 modulo 2n.
func BatchingPrime(n uint64, bitSize int) (uint64, error) {
	if bitSize < 2 || bitSize > maxPrimeBits {
		return 0, raise(CodeInvalidArgument, "plain modulus bit size %d out of range", bitSize)
	}
	primes, err := CreatePrimes(n, []int{bitSize})
	if err != nil {
		return 0, err
	}
	return primes[0], nil
}

func primesBelow(bitSize int, factor uint64, count int) ([]uint64, error) {
	upper := uint64(1) << bitSize
	lower := uint64(1) << (bitSize - 1)

	if factor >= upper {
		return nil, raise(CodeInvalidArgument, "no %d-bit prime is congruent to 1 mod %d", bitSize, factor)
	}

	// largest value below 2^bitSize congruent to 1 mod factor
	candidate := ((upper-1)/factor)*factor + 1
	if candidate >= upper {
		candidate -= factor
	}

	out := make([]uint64, 0, count)
	for candidate > lower && len(out) < count {
		if ring.IsPrime(candidate) {
			out = append(out, candidate)
		}
		candidate -= factor
	}
	if len(out) < count {
		return nil, raise(CodeInvalidArgument, "failed to find enough %d-bit primes congruent to 1 mod %d", bitSize, factor)
	}
	return out, nil
}

func isPrime(x uint64) bool {
	return x > 1 && ring.IsPrime(x)
}

func isPowerOfTwo(x uint64) bool {
	return x != 0 && x&(x-1) == 0
}

func bitLen(x uint64) int {
	return bits.Len64(x)
}

func totalBits(primes []uint64) (n int) {
	for _, q := range primes {
		n += bitLen(q)
	}
	return n
}
