package labeling

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/graphlabel/feature"
)

// OracleResult is the separation-oracle answer for one sample.
type OracleResult struct {
	Loss float64
	Psi  feature.Vector
}

// SeparationOracleAll runs SeparationOracle for every sample with at most
// WithWorkers goroutines and returns the results indexed by sample. The
// first error, or ctx's error, aborts the remaining samples.
func (p *Problem) SeparationOracleAll(ctx context.Context, w []float64) ([]OracleResult, error) {
	results := make([]OracleResult, len(p.samples))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range p.samples {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			loss, psi, err := p.SeparationOracle(i, w)
			if err != nil {
				return err
			}
			results[i] = OracleResult{Loss: loss, Psi: psi}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Risk returns the average structured hinge loss of w over the dataset,
//
//	R(w) = 1/N Σ_i [ loss_i + w·psi(x_i, ŷ_i) - w·psi(x_i, y_i) ]
//
// where ŷ_i is the separation-oracle labeling, and a subgradient of R at w.
// R(w) >= 0 because the ground truth is among the labelings the oracle
// maximizes over.
func (p *Problem) Risk(ctx context.Context, w []float64) (float64, feature.Dense, error) {
	results, err := p.SeparationOracleAll(ctx, w)
	if err != nil {
		return 0, nil, err
	}

	return p.RiskOf(results, w)
}

// RiskOf computes Risk from oracle results already obtained for w, so callers
// that also need the per-sample answers run the oracle once.
func (p *Problem) RiskOf(results []OracleResult, w []float64) (float64, feature.Dense, error) {
	if len(results) != len(p.samples) {
		return 0, nil, fmt.Errorf("%w: %d results for %d samples", ErrIndexOutOfRange, len(results), len(p.samples))
	}
	n := p.dims.Total()
	if len(w) != n {
		return 0, nil, &feature.DimensionMismatchError{Op: "weights", Want: n, Got: len(w)}
	}

	var risk float64
	subgradient := make(feature.Dense, n)
	for i, r := range results {
		truth, err := p.TruthFeatureVector(i)
		if err != nil {
			return 0, nil, err
		}
		predicted, err := feature.Densify(r.Psi, n)
		if err != nil {
			return 0, nil, fmt.Errorf("labeling: sample %d: %w", i, err)
		}
		expected, err := feature.Densify(truth, n)
		if err != nil {
			return 0, nil, fmt.Errorf("labeling: sample %d: %w", i, err)
		}
		risk += r.Loss + floats.Dot(predicted, w) - floats.Dot(expected, w)
		floats.Add(subgradient, predicted)
		floats.Sub(subgradient, expected)
	}

	scale := 1 / float64(len(results))
	floats.Scale(scale, subgradient)

	return risk * scale, subgradient, nil
}
