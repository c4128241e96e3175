package seal

import (
	"fmt"

	"github.com/s0l0ist/sealgo/internal/bindings"
)

// Number is the set of element types a Vector can carry.
type Number = bindings.Elem

// VectorKind is the element type of a Vector.
type VectorKind = bindings.VecKind

const (
	VectorUint8   = bindings.VecUint8
	VectorInt32   = bindings.VecInt32
	VectorUint32  = bindings.VecUint32
	VectorInt64   = bindings.VecInt64
	VectorUint64  = bindings.VecUint64
	VectorFloat64 = bindings.VecFloat64
)

// Vector is an engine-side array used to move data across the boundary.
type Vector struct {
	handle
}

// NewVector copies values into a new engine vector.
func NewVector[T Number](values []T) (*Vector, error) {
	h, err := bindings.NewVector(values)
	if err != nil {
		return nil, translate(err)
	}
	return track(&Vector{handle{h}}), nil
}

// VectorValues copies the elements of v out. T must match the vector kind.
func VectorValues[T Number](v *Vector) ([]T, error) {
	out, err := bindings.VectorValues[T](v.h)
	return out, translate(err)
}

func (v *Vector) Size() (int, error) {
	n, err := bindings.VectorSize(v.h)
	return n, translate(err)
}

func (v *Vector) Kind() (VectorKind, error) {
	k, err := bindings.VectorKind(v.h)
	return k, translate(err)
}

// withVector runs fn with a temporary engine vector holding values.
func withVector[T Number](values []T, fn func(bindings.Handle) error) error {
	h, err := bindings.NewVector(values)
	if err != nil {
		return translate(err)
	}
	defer bindings.Delete(h)
	return translate(fn(h))
}

// takeValues drains an engine vector returned by the bindings and deletes it.
func takeValues[T Number](h bindings.Handle, err error) ([]T, error) {
	if err != nil {
		return nil, translate(err)
	}
	defer bindings.Delete(h)
	out, err := bindings.VectorValues[T](h)
	return out, translate(err)
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }
