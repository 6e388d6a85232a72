// Command graphlabel validates a graph labeling dataset, reports its
// dimensions and ground-truth joint feature vectors and, given a weight
// vector, runs the loss-augmented separation oracle over every sample.
//
// Usage:
//
//	graphlabel [-config file.yaml] [-weights w.yaml] [flags] dataset.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/graphlabel/internal/config"
	"github.com/katalvlaran/graphlabel/internal/dataset"
	"github.com/katalvlaran/graphlabel/labeling"
	"github.com/katalvlaran/graphlabel/potts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse("graphlabel", args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "graphlabel:", err)
		return 2
	}
	logger := cfg.Logger(stderr)

	reg := prometheus.NewRegistry()
	if err := execute(ctx, cfg, logger, reg, stdout); err != nil {
		logger.Error().Err(err).Msg("graphlabel failed")
		return 1
	}

	if cfg.MetricsAddr != "" {
		if err := serveMetrics(ctx, cfg.MetricsAddr, reg, logger); err != nil {
			logger.Error().Err(err).Msg("metrics server failed")
			return 1
		}
	}

	return 0
}

func execute(ctx context.Context, cfg config.Config, logger zerolog.Logger, reg prometheus.Registerer, out io.Writer) error {
	alg, err := cfg.FlowAlgorithm()
	if err != nil {
		return err
	}

	ds, err := dataset.ReadFile(cfg.Dataset)
	if err != nil {
		return err
	}
	logger.Debug().Str("path", cfg.Dataset).Int("samples", len(ds.Samples)).Msg("dataset loaded")

	solver := potts.NewMinCutSolver(
		potts.WithAlgorithm(alg),
		potts.WithEpsilon(cfg.Epsilon),
		potts.WithLogger(logger.With().Str("component", "potts").Logger()),
	)
	p, err := labeling.New(ds.Samples, ds.Labels,
		labeling.WithLogger(logger),
		labeling.WithSolver(solver),
		labeling.WithMetrics(labeling.NewMetrics(reg)),
		labeling.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return err
	}

	dims := p.Dimensions()
	fmt.Fprintf(out, "samples: %d\nrepresentation: %s\nnode dims: %d\nedge dims: %d\ntotal dims: %d\n",
		p.NumSamples(), p.Kind(), dims.Node, dims.Edge, dims.Total())
	for i := 0; i < p.NumSamples(); i++ {
		psi, err := p.TruthFeatureVector(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "truth psi[%d]: %v\n", i, psi)
	}

	if cfg.Weights == "" {
		return nil
	}
	w, err := dataset.ReadWeightsFile(cfg.Weights)
	if err != nil {
		return err
	}

	results, err := p.SeparationOracleAll(ctx, w)
	if err != nil {
		return err
	}
	for i, r := range results {
		fmt.Fprintf(out, "oracle[%d]: loss=%g psi=%v\n", i, r.Loss, r.Psi)
	}
	risk, _, err := p.RiskOf(results, w)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "risk: %g\n", risk)

	return nil
}

// serveMetrics exposes reg on addr until ctx is cancelled.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info().Str("addr", addr).Msg("serving metrics until interrupted")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
