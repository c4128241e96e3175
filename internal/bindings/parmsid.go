package bindings

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"
)

// ParmsId names one parameter set of a modulus switching chain.
type ParmsId [4]uint64

// ParmsIdZero is the identifier carried by objects that are not bound to a
// specific level, such as non-NTT integer plaintexts.
var ParmsIdZero ParmsId

func (id ParmsId) IsZero() bool { return id == ParmsIdZero }

func (id ParmsId) String() string {
	return fmt.Sprintf("%016x %016x %016x %016x", id[0], id[1], id[2], id[3])
}

// computeParmsId hashes the canonical encoding of a parameter set truncated
// to the given primes. The special prime is included only for the key level,
// so key and first level get distinct identifiers.
func computeParmsId(scheme Scheme, n, t uint64, primes []uint64, key bool) ParmsId {
	buf := make([]byte, 0, 26+8*len(primes))
	buf = append(buf, 's', 'g', byte(scheme))
	if key {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = binary.LittleEndian.AppendUint64(buf, n)
	buf = binary.LittleEndian.AppendUint64(buf, t)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(primes)))
	for _, q := range primes {
		buf = binary.LittleEndian.AppendUint64(buf, q)
	}

	sum := blake3.Sum256(buf)

	var id ParmsId
	for i := range id {
		id[i] = binary.LittleEndian.Uint64(sum[8*i:])
	}
	return id
}

func putParmsId(dst []byte, id ParmsId) {
	for i, w := range id {
		binary.LittleEndian.PutUint64(dst[8*i:], w)
	}
}

func readParmsId(src []byte) (id ParmsId) {
	for i := range id {
		id[i] = binary.LittleEndian.Uint64(src[8*i:])
	}
	return id
}
