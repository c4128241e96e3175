package bindings

import (
	"golang.org/x/exp/constraints"
)

// VecKind identifies the element type of an engine vector.
type VecKind uint8

const (
	VecUint8 VecKind = iota + 1
	VecInt32
	VecUint32
	VecInt64
	VecUint64
	VecFloat64
)

func (k VecKind) String() string {
	switch k {
	case VecUint8:
		return "uint8"
	case VecInt32:
		return "int32"
	case VecUint32:
		return "uint32"
	case VecInt64:
		return "int64"
	case VecUint64:
		return "uint64"
	case VecFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// Elem is the set of element types an engine vector can hold.
type Elem interface {
	~uint8 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float64
}

type vectorObj struct {
	kind VecKind
	data any
}

func (v *vectorObj) release() {
	if b, ok := v.data.([]uint8); ok {
		clear(b)
	}
}

func kindOf[T Elem]() VecKind {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return VecUint8
	case int32:
		return VecInt32
	case uint32:
		return VecUint32
	case int64:
		return VecInt64
	case uint64:
		return VecUint64
	case float64:
		return VecFloat64
	}
	return 0
}

// NewVector copies values into a new engine vector.
func NewVector[T Elem](values []T) (Handle, error) {
	k := kindOf[T]()
	if k == 0 {
		return 0, raise(CodeUnsupportedType, "unsupported vector element type %T", *new(T))
	}
	return put(&vectorObj{kind: k, data: append([]T(nil), values...)}), nil
}

// VectorValues copies the content of an engine vector out.
func VectorValues[T Elem](h Handle) ([]T, error) {
	v, err := get[*vectorObj](h)
	if err != nil {
		return nil, err
	}
	data, ok := v.data.([]T)
	if !ok {
		return nil, raise(CodeTypeMismatch, "vector holds %s elements", v.kind)
	}
	return append([]T(nil), data...), nil
}

func VectorKind(h Handle) (VecKind, error) {
	v, err := get[*vectorObj](h)
	if err != nil {
		return 0, err
	}
	return v.kind, nil
}

func VectorSize(h Handle) (int, error) {
	v, err := get[*vectorObj](h)
	if err != nil {
		return 0, err
	}
	switch data := v.data.(type) {
	case []uint8:
		return len(data), nil
	case []int32:
		return len(data), nil
	case []uint32:
		return len(data), nil
	case []int64:
		return len(data), nil
	case []uint64:
		return len(data), nil
	case []float64:
		return len(data), nil
	}
	return 0, raise(CodeInternal, "vector of kind %s has no data", v.kind)
}

func vectorBytes(h Handle) ([]byte, error) {
	v, err := get[*vectorObj](h)
	if err != nil {
		return nil, err
	}
	b, ok := v.data.([]uint8)
	if !ok {
		return nil, raise(CodeTypeMismatch, "expected a uint8 vector, got %s", v.kind)
	}
	return b, nil
}

func vectorFloats(h Handle) ([]float64, error) {
	v, err := get[*vectorObj](h)
	if err != nil {
		return nil, err
	}
	f, ok := v.data.([]float64)
	if !ok {
		return nil, raise(CodeUnsupportedType, "expected a float64 vector, got %s", v.kind)
	}
	return f, nil
}

// vectorSlots reduces an integer vector into [0, t).
func vectorSlots(h Handle, t uint64) ([]uint64, error) {
	v, err := get[*vectorObj](h)
	if err != nil {
		return nil, err
	}
	switch data := v.data.(type) {
	case []int32:
		return reduceSigned(data, t), nil
	case []int64:
		return reduceSigned(data, t), nil
	case []uint32:
		return reduceUnsigned(data, t), nil
	case []uint64:
		return reduceUnsigned(data, t), nil
	}
	return nil, raise(CodeUnsupportedType, "unsupported batch element type %s", v.kind)
}

func reduceSigned[T constraints.Signed](values []T, t uint64) []uint64 {
	out := make([]uint64, len(values))
	for i, x := range values {
		if x < 0 {
			m := uint64(-int64(x)) % t
			if m != 0 {
				m = t - m
			}
			out[i] = m
		} else {
			out[i] = uint64(x) % t
		}
	}
	return out
}

func reduceUnsigned[T constraints.Unsigned](values []T, t uint64) []uint64 {
	out := make([]uint64, len(values))
	for i, x := range values {
		out[i] = uint64(x) % t
	}
	return out
}

func newSlotsVector(kind VecKind, slots []uint64, t uint64) (Handle, error) {
	switch kind {
	case VecInt32:
		return put(&vectorObj{kind: kind, data: centered[int32](slots, t)}), nil
	case VecInt64:
		return put(&vectorObj{kind: kind, data: centered[int64](slots, t)}), nil
	case VecUint32:
		out := make([]uint32, len(slots))
		for i, x := range slots {
			out[i] = uint32(x)
		}
		return put(&vectorObj{kind: kind, data: out}), nil
	case VecUint64:
		return put(&vectorObj{kind: kind, data: append([]uint64(nil), slots...)}), nil
	}
	return 0, raise(CodeUnsupportedType, "unsupported batch element type %s", kind)
}

// centered lifts values in [0, t) to (-t/2, t/2].
func centered[T constraints.Signed](values []uint64, t uint64) []T {
	out := make([]T, len(values))
	half := t >> 1
	for i, x := range values {
		if x > half {
			out[i] = T(-int64(t - x))
		} else {
			out[i] = T(x)
		}
	}
	return out
}
