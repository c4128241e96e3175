package seal

import "github.com/s0l0ist/sealgo/internal/bindings"

// CoeffModulusMaxBitCount returns the largest total coefficient modulus bit
// count that keeps the ring degree n at the given security level, or 0 if
// the pair is not tabulated.
func CoeffModulusMaxBitCount(n uint64, sec SecurityLevel) int {
	return bindings.MaxBitCount(n, sec)
}

// CoeffModulusBFVDefault returns the default coefficient modulus for n.
func CoeffModulusBFVDefault(n uint64, sec SecurityLevel) ([]uint64, error) {
	sizes, err := bindings.BFVDefaultBits(n, sec)
	if err != nil {
		return nil, translate(err)
	}
	return CoeffModulusCreate(n, sizes)
}

// CoeffModulusCreate returns one NTT-friendly prime per requested bit size.
func CoeffModulusCreate(n uint64, bitSizes []int) ([]uint64, error) {
	primes, err := bindings.CreatePrimes(n, bitSizes)
	return primes, translate(err)
}

// PlainModulusBatching returns a prime plain modulus of bitSize bits that
// enables batching for ring degree n.
func PlainModulusBatching(n uint64, bitSize int) (uint64, error) {
	t, err := bindings.BatchingPrime(n, bitSize)
	return t, translate(err)
}
