package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. FJSP_GA_POPULATION
const EnvPrefix = "FJSP_"

// Run modes
const (
	ModeAdaptive = "adaptive"
	ModeFixed    = "fixed"
)

// Config is the root configuration structure
type Config struct {
	Seed     int64          `yaml:"seed" env:"SEED"`
	Instance InstanceConfig `yaml:"instance" envPrefix:"INSTANCE_"`
	GA       GAConfig       `yaml:"ga" envPrefix:"GA_"`
	Adaptive AdaptiveConfig `yaml:"adaptive" envPrefix:"ADAPTIVE_"`
	Logging  LogConfig      `yaml:"logging" envPrefix:"LOGGING_"`
	Metrics  MetricsConfig  `yaml:"metrics" envPrefix:"METRICS_"`
}

// InstanceConfig points at the problem file
type InstanceConfig struct {
	Path string `yaml:"path" env:"PATH"`
}

// GAConfig defines genetic algorithm parameters
type GAConfig struct {
	Population     int     `yaml:"population" env:"POPULATION" validate:"gte=2"`
	MaxGenerations int     `yaml:"max_generations" env:"MAX_GENERATIONS" validate:"gte=1"`
	KeepFraction   float64 `yaml:"keep_fraction" env:"KEEP_FRACTION" validate:"gt=0,lte=1"`       // pr
	CrossoverRate  float64 `yaml:"crossover_rate" env:"CROSSOVER_RATE" validate:"gte=0,lte=1"`   // fixed mode Pc
	MutationRate   float64 `yaml:"mutation_rate" env:"MUTATION_RATE" validate:"gte=0,lte=1"`     // fixed mode Pm
	Workers        int     `yaml:"workers" env:"WORKERS" validate:"gte=0"`                       // 0 = one per CPU
	Mode           string  `yaml:"mode" env:"MODE" validate:"oneof=adaptive fixed"`
}

// AdaptiveConfig defines the rate controller
type AdaptiveConfig struct {
	PcLow              float64 `yaml:"pc_low" env:"PC_LOW" validate:"gte=0,lte=1,ltfield=PcHigh"`
	PcHigh             float64 `yaml:"pc_high" env:"PC_HIGH" validate:"gte=0,lte=1"`
	PmLow              float64 `yaml:"pm_low" env:"PM_LOW" validate:"gte=0,lte=1,ltfield=PmHigh"`
	PmHigh             float64 `yaml:"pm_high" env:"PM_HIGH" validate:"gte=0,lte=1"`
	Epsilon            float64 `yaml:"epsilon" env:"EPSILON" validate:"gte=0,lte=1"`
	Alpha              float64 `yaml:"alpha" env:"ALPHA" validate:"gt=0,lte=1"`
	Gamma              float64 `yaml:"gamma" env:"GAMMA" validate:"gte=0,lte=1"`
	SwitchFactor       int     `yaml:"switch_factor" env:"SWITCH_FACTOR" validate:"gte=0"`
	NoImprovementLimit int     `yaml:"no_improvement_limit" env:"NO_IMPROVEMENT_LIMIT" validate:"gte=1"`
}

// LogConfig defines logging and artifact outputs
type LogConfig struct {
	Level           string `yaml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`
	Development     bool   `yaml:"development" env:"DEVELOPMENT"`
	EveryGenSummary bool   `yaml:"every_gen_summary" env:"EVERY_GEN_SUMMARY"`
	CSVPath         string `yaml:"csv_path" env:"CSV_PATH"`
	JSONPath        string `yaml:"json_path" env:"JSON_PATH"`
	ChampionPath    string `yaml:"champion_path" env:"CHAMPION_PATH"`
	SchedulePath    string `yaml:"schedule_path" env:"SCHEDULE_PATH"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

// ConfigurationError reports an invalid configuration value
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Load overlays a YAML config file and FJSP_* environment overrides on the
// defaults, and validates the result. An empty path starts from defaults.
// Values given explicitly, zeros included, are kept.
func Load(path string) (*Config, error) {
	def := Default()
	cfg := &def
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, &ConfigurationError{Field: "environment", Reason: aggErr.Errors[0].Error()}
		}
		return nil, &ConfigurationError{Field: "environment", Reason: err.Error()}
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration built from defaults only
func Default() Config {
	cfg := Config{
		Seed: 1337,
		GA: GAConfig{
			CrossoverRate: 0.8,
			MutationRate:  0.1,
		},
		Adaptive: AdaptiveConfig{
			PcLow:        0.4,
			PcHigh:       0.9,
			PmLow:        0.01,
			PmHigh:       0.21,
			Epsilon:      0.1,
			Gamma:        0.9,
			SwitchFactor: 10,
		},
	}
	applyDefaults(&cfg)
	return cfg
}

// applyDefaults fills fields for which zero is never a usable value
func applyDefaults(cfg *Config) {
	if cfg.GA.Population == 0 {
		cfg.GA.Population = 300
	}
	if cfg.GA.MaxGenerations == 0 {
		cfg.GA.MaxGenerations = 100
	}
	if cfg.GA.KeepFraction == 0 {
		cfg.GA.KeepFraction = 0.2
	}
	if cfg.GA.Mode == "" {
		cfg.GA.Mode = ModeAdaptive
	}
	if cfg.Adaptive.Alpha == 0 {
		cfg.Adaptive.Alpha = 0.1
	}
	if cfg.Adaptive.NoImprovementLimit == 0 {
		cfg.Adaptive.NoImprovementLimit = 50
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = "runs/run.csv"
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = "runs/run.jsonl"
	}
	if cfg.Logging.ChampionPath == "" {
		cfg.Logging.ChampionPath = "artifacts/champion.json"
	}
	if cfg.Logging.SchedulePath == "" {
		cfg.Logging.SchedulePath = "artifacts/schedule.json"
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and cross-field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			reason := fe.Tag()
			if fe.Param() != "" {
				reason += "=" + fe.Param()
			}
			return &ConfigurationError{Field: fe.Namespace(), Reason: fmt.Sprintf("%v fails %s", fe.Value(), reason)}
		}
		return &ConfigurationError{Field: "config", Reason: err.Error()}
	}

	// crossover pairs adjacent individuals
	if c.GA.Population%2 != 0 {
		return &ConfigurationError{Field: "Config.GA.Population",
			Reason: fmt.Sprintf("%d must be even for pairwise crossover", c.GA.Population)}
	}
	return nil
}

// IsAdaptive reports whether the rate controller drives Pc and Pm
func (c *Config) IsAdaptive() bool {
	return c.GA.Mode == ModeAdaptive
}
