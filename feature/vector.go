// Package feature defines the feature vectors carried by graph nodes and
// edges, their inner products against blocks of a weight vector, and the
// accumulators that build joint feature vectors.
//
// Two representations exist:
//
//	Dense  – a fixed-length []float64.
//	Sparse – an ordered list of (Index, Value) pairs. Indices may repeat;
//	         repeated entries are summed by every consumer in this package.
//
// A dataset uses a single Kind throughout.
package feature

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrDimensionMismatch is the sentinel matched by every *DimensionMismatchError.
var ErrDimensionMismatch = errors.New("feature: dimension mismatch")

// DimensionMismatchError reports a vector that does not fit the block it is
// combined with.
type DimensionMismatchError struct {
	Op   string // operation, e.g. "dot" or "add"
	Want int    // block length
	Got  int    // vector length or max index plus one
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("feature: %s: dimension mismatch: want %d, got %d", e.Op, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrDimensionMismatch) succeed.
func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

// Kind identifies a vector representation.
type Kind int

const (
	// KindDense is the Dense representation.
	KindDense Kind = iota + 1
	// KindSparse is the Sparse representation.
	KindSparse
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindDense:
		return "dense"
	case KindSparse:
		return "sparse"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Vector is a node or edge feature vector.
type Vector interface {
	// Kind reports the representation.
	Kind() Kind
	// Len returns the number of stored entries.
	Len() int
	// MaxIndexPlusOne returns one plus the largest index that may hold a
	// value: Len() for Dense, the largest pair index plus one for Sparse,
	// and 0 for an empty vector.
	MaxIndexPlusOne() int
	// Min returns the smallest stored value, or +Inf for an empty vector.
	Min() float64
	// Dot returns the inner product of the vector with block, where entry k
	// of the vector is paired with block[k].
	Dot(block []float64) (float64, error)
}

// Dense is a dense feature vector.
type Dense []float64

// Kind implements Vector.
func (d Dense) Kind() Kind { return KindDense }

// Len implements Vector.
func (d Dense) Len() int { return len(d) }

// MaxIndexPlusOne implements Vector.
func (d Dense) MaxIndexPlusOne() int { return len(d) }

// Min implements Vector.
func (d Dense) Min() float64 {
	if len(d) == 0 {
		return math.Inf(1)
	}

	return floats.Min(d)
}

// Dot implements Vector. The block must have exactly len(d) entries.
func (d Dense) Dot(block []float64) (float64, error) {
	if len(block) != len(d) {
		return 0, &DimensionMismatchError{Op: "dot", Want: len(block), Got: len(d)}
	}

	return floats.Dot(d, block), nil
}

// Pair is one stored entry of a Sparse vector.
type Pair struct {
	Index int
	Value float64
}

// Sparse is a sparse feature vector. Order is preserved and duplicate
// indices are allowed.
type Sparse []Pair

// Kind implements Vector.
func (s Sparse) Kind() Kind { return KindSparse }

// Len implements Vector.
func (s Sparse) Len() int { return len(s) }

// MaxIndexPlusOne implements Vector.
func (s Sparse) MaxIndexPlusOne() int {
	m := 0
	for _, p := range s {
		if p.Index+1 > m {
			m = p.Index + 1
		}
	}

	return m
}

// Min implements Vector.
func (s Sparse) Min() float64 {
	m := math.Inf(1)
	for _, p := range s {
		m = math.Min(m, p.Value)
	}

	return m
}

// Dot implements Vector. Every index must fall inside block.
func (s Sparse) Dot(block []float64) (float64, error) {
	var sum float64
	for _, p := range s {
		if p.Index < 0 || p.Index >= len(block) {
			return 0, &DimensionMismatchError{Op: "dot", Want: len(block), Got: p.Index + 1}
		}
		sum += p.Value * block[p.Index]
	}

	return sum, nil
}

// Densify expands v into a dense vector of length n, summing repeated
// sparse indices.
func Densify(v Vector, n int) (Dense, error) {
	out := make(Dense, n)
	switch t := v.(type) {
	case Dense:
		if len(t) != n {
			return nil, &DimensionMismatchError{Op: "densify", Want: n, Got: len(t)}
		}
		copy(out, t)
	case Sparse:
		for _, p := range t {
			if p.Index < 0 || p.Index >= n {
				return nil, &DimensionMismatchError{Op: "densify", Want: n, Got: p.Index + 1}
			}
			out[p.Index] += p.Value
		}
	default:
		return nil, fmt.Errorf("feature: unsupported vector type %T", v)
	}

	return out, nil
}
