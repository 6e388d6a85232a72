package feature

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Accumulator builds a joint feature vector of a fixed total dimension by
// adding and subtracting smaller vectors at block offsets.
type Accumulator interface {
	// Add adds v into the result starting at offset.
	Add(v Vector, offset int) error
	// Sub subtracts v from the result starting at offset.
	Sub(v Vector, offset int) error
	// Vector returns the accumulated result.
	Vector() Vector
}

// NewAccumulator returns the accumulator matching kind for a result of
// length dims.
func NewAccumulator(kind Kind, dims int) (Accumulator, error) {
	switch kind {
	case KindDense:
		return NewDenseAccumulator(dims), nil
	case KindSparse:
		return NewSparseAccumulator(dims), nil
	default:
		return nil, fmt.Errorf("feature: no accumulator for %v", kind)
	}
}

// DenseAccumulator sums Dense vectors into a zero-initialized Dense result.
type DenseAccumulator struct {
	psi Dense
}

// NewDenseAccumulator returns an accumulator over a zero vector of length dims.
func NewDenseAccumulator(dims int) *DenseAccumulator {
	return &DenseAccumulator{psi: make(Dense, dims)}
}

// Add implements Accumulator.
func (a *DenseAccumulator) Add(v Vector, offset int) error {
	block, d, err := a.block(v, offset, "add")
	if err != nil {
		return err
	}
	floats.Add(block, d)

	return nil
}

// Sub implements Accumulator.
func (a *DenseAccumulator) Sub(v Vector, offset int) error {
	block, d, err := a.block(v, offset, "sub")
	if err != nil {
		return err
	}
	floats.Sub(block, d)

	return nil
}

// Vector implements Accumulator.
func (a *DenseAccumulator) Vector() Vector { return a.psi }

func (a *DenseAccumulator) block(v Vector, offset int, op string) ([]float64, Dense, error) {
	d, ok := v.(Dense)
	if !ok {
		return nil, nil, fmt.Errorf("feature: dense accumulator cannot %s %v vector", op, v.Kind())
	}
	if offset < 0 || offset+len(d) > len(a.psi) {
		return nil, nil, &DimensionMismatchError{Op: op, Want: len(a.psi) - offset, Got: len(d)}
	}

	return a.psi[offset : offset+len(d)], d, nil
}

// SparseAccumulator appends index-shifted pairs without coalescing.
type SparseAccumulator struct {
	dims int
	psi  Sparse
}

// NewSparseAccumulator returns an empty accumulator for a result of length dims.
func NewSparseAccumulator(dims int) *SparseAccumulator {
	return &SparseAccumulator{dims: dims, psi: Sparse{}}
}

// Add implements Accumulator.
func (a *SparseAccumulator) Add(v Vector, offset int) error {
	return a.merge(v, offset, 1, "add")
}

// Sub implements Accumulator.
func (a *SparseAccumulator) Sub(v Vector, offset int) error {
	return a.merge(v, offset, -1, "sub")
}

// Vector implements Accumulator.
func (a *SparseAccumulator) Vector() Vector { return a.psi }

func (a *SparseAccumulator) merge(v Vector, offset int, sign float64, op string) error {
	s, ok := v.(Sparse)
	if !ok {
		return fmt.Errorf("feature: sparse accumulator cannot %s %v vector", op, v.Kind())
	}
	for _, p := range s {
		idx := p.Index + offset
		if p.Index < 0 || idx >= a.dims {
			return &DimensionMismatchError{Op: op, Want: a.dims - offset, Got: p.Index + 1}
		}
		a.psi = append(a.psi, Pair{Index: idx, Value: sign * p.Value})
	}

	return nil
}
