// Package config holds the graphlabel CLI configuration: defaults, an
// optional YAML file and command-line overrides, applied in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/graphlabel/flow"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the CLI configuration.
type Config struct {
	Dataset     string  `yaml:"dataset"`      // dataset file, required
	Weights     string  `yaml:"weights"`      // weight file; empty skips the oracle
	Algorithm   string  `yaml:"algorithm"`    // "dinic" or "edmonds-karp"
	Epsilon     float64 `yaml:"epsilon"`      // capacities at or below are dropped
	Workers     int     `yaml:"workers"`      // oracle fan-out
	LogLevel    string  `yaml:"log_level"`    // zerolog level name
	LogFormat   string  `yaml:"log_format"`   // "console" or "json"
	MetricsAddr string  `yaml:"metrics_addr"` // listen address for /metrics; empty disables
}

// Default returns the configuration used when neither file nor flags set a field.
func Default() Config {
	return Config{
		Algorithm: flow.AlgorithmDinic.String(),
		Epsilon:   flow.DefaultOptions().Epsilon,
		Workers:   2,
		LogLevel:  zerolog.InfoLevel.String(),
		LogFormat: "console",
	}
}

// Load reads the YAML file at path over Default. Unknown keys are rejected.
// An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}

	return cfg, nil
}

// Parse builds the configuration from command-line arguments. The -config
// file is loaded first; flags given explicitly on the command line then
// override it.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	def := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	var flags Config
	path := fs.String("config", "", "YAML configuration file")
	fs.StringVar(&flags.Dataset, "dataset", def.Dataset, "YAML dataset file")
	fs.StringVar(&flags.Weights, "weights", def.Weights, "YAML weight file; runs the separation oracle when set")
	fs.StringVar(&flags.Algorithm, "algorithm", def.Algorithm, "max-flow algorithm: dinic or edmonds-karp")
	fs.Float64Var(&flags.Epsilon, "epsilon", def.Epsilon, "capacities at or below epsilon are ignored")
	fs.IntVar(&flags.Workers, "workers", def.Workers, "concurrent separation oracle calls")
	fs.StringVar(&flags.LogLevel, "log-level", def.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&flags.LogFormat, "log-format", def.LogFormat, "log format: console or json")
	fs.StringVar(&flags.MetricsAddr, "metrics-addr", def.MetricsAddr, "serve Prometheus metrics on this address")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := Load(*path)
	if err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dataset":
			cfg.Dataset = flags.Dataset
		case "weights":
			cfg.Weights = flags.Weights
		case "algorithm":
			cfg.Algorithm = flags.Algorithm
		case "epsilon":
			cfg.Epsilon = flags.Epsilon
		case "workers":
			cfg.Workers = flags.Workers
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "log-format":
			cfg.LogFormat = flags.LogFormat
		case "metrics-addr":
			cfg.MetricsAddr = flags.MetricsAddr
		}
	})
	if cfg.Dataset == "" && fs.NArg() > 0 {
		cfg.Dataset = fs.Arg(0)
	}

	return cfg, cfg.Validate()
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.Dataset == "" {
		return fmt.Errorf("%w: dataset is required", ErrInvalidConfig)
	}
	if _, err := c.FlowAlgorithm(); err != nil {
		return err
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon %g is negative", ErrInvalidConfig, c.Epsilon)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	}

	return nil
}

// FlowAlgorithm maps the Algorithm name to a flow.Algorithm.
func (c Config) FlowAlgorithm() (flow.Algorithm, error) {
	switch strings.ToLower(c.Algorithm) {
	case flow.AlgorithmDinic.String():
		return flow.AlgorithmDinic, nil
	case flow.AlgorithmEdmondsKarp.String():
		return flow.AlgorithmEdmondsKarp, nil
	default:
		return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, c.Algorithm)
	}
}

// Logger builds the zerolog logger described by LogLevel and LogFormat.
func (c Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
