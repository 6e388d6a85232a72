package flow

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrSourceNotFound is returned when the specified source vertex is missing.
var ErrSourceNotFound = fmt.Errorf("flow: %w", errSourceNotFound)
var errSourceNotFound = fmt.Errorf("source vertex not found")

// ErrSinkNotFound is returned when the specified sink vertex is missing.
var ErrSinkNotFound = fmt.Errorf("flow: %w", errSinkNotFound)
var errSinkNotFound = fmt.Errorf("sink vertex not found")

// ErrSameSourceSink is returned when source and sink are the same vertex.
var ErrSameSourceSink = fmt.Errorf("flow: source and sink must differ")

// EdgeError is returned when an edge has a negative capacity.
type EdgeError struct {
	From, To string
	Cap      float64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: negative capacity on edge %q→%q: %g", e.From, e.To, e.Cap)
}

// Algorithm selects the augmenting strategy used by MinCut.
type Algorithm int

const (
	// AlgorithmDinic uses level graphs and blocking flows.
	AlgorithmDinic Algorithm = iota
	// AlgorithmEdmondsKarp uses BFS shortest augmenting paths.
	AlgorithmEdmondsKarp
)

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmDinic:
		return "dinic"
	case AlgorithmEdmondsKarp:
		return "edmonds-karp"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// FlowOptions configures all max-flow algorithms.
//   - Ctx: cancellation for long-running augmentations (default Background).
//   - Epsilon: treat capacities ≤ Epsilon as zero (default 1e-9).
//   - Verbose: if true, logs each augmentation to Logger at debug level.
//   - LevelRebuildInterval: for Dinic, rebuild level graph every N augmentations.
//   - Algorithm: strategy used by MinCut.
type FlowOptions struct {
	Ctx                  context.Context
	Epsilon              float64
	Verbose              bool
	Logger               *zerolog.Logger
	LevelRebuildInterval int
	Algorithm            Algorithm
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() FlowOptions {
	return FlowOptions{
		Ctx:     context.Background(),
		Epsilon: 1e-9,
	}
}

// normalize fills unset fields with their defaults.
func (o *FlowOptions) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Epsilon <= 0 {
		o.Epsilon = 1e-9
	}
}

// logAugment emits one debug event per augmentation when Verbose is set.
func (o *FlowOptions) logAugment(algo Algorithm, pushed, total float64) {
	if !o.Verbose || o.Logger == nil {
		return
	}
	o.Logger.Debug().
		Stringer("algorithm", algo).
		Float64("pushed", pushed).
		Float64("total", total).
		Msg("flow augmented")
}
