package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "instance:\n  path: data/mk01.fjs\n"))
	require.NoError(t, err)

	assert.Equal(t, int64(1337), cfg.Seed)
	assert.Equal(t, "data/mk01.fjs", cfg.Instance.Path)
	assert.Equal(t, 300, cfg.GA.Population)
	assert.Equal(t, 100, cfg.GA.MaxGenerations)
	assert.Equal(t, 0.2, cfg.GA.KeepFraction)
	assert.Equal(t, ModeAdaptive, cfg.GA.Mode)
	assert.True(t, cfg.IsAdaptive())
	assert.Equal(t, 0.4, cfg.Adaptive.PcLow)
	assert.Equal(t, 0.9, cfg.Adaptive.PcHigh)
	assert.Equal(t, 0.01, cfg.Adaptive.PmLow)
	assert.Equal(t, 0.21, cfg.Adaptive.PmHigh)
	assert.Equal(t, 10, cfg.Adaptive.SwitchFactor)
	assert.Equal(t, "runs/run.csv", cfg.Logging.CSVPath)
}

func TestLoadReadsYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
seed: 42
ga:
  population: 50
  max_generations: 20
  keep_fraction: 0.1
  mode: fixed
  crossover_rate: 0.7
  mutation_rate: 0.05
adaptive:
  epsilon: 0.2
logging:
  every_gen_summary: true
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 50, cfg.GA.Population)
	assert.Equal(t, 20, cfg.GA.MaxGenerations)
	assert.False(t, cfg.IsAdaptive())
	assert.Equal(t, 0.7, cfg.GA.CrossoverRate)
	assert.Equal(t, 0.2, cfg.Adaptive.Epsilon)
	assert.True(t, cfg.Logging.EveryGenSummary)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadKeepsExplicitZeros(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
seed: 0
ga:
  mode: fixed
  crossover_rate: 0
  mutation_rate: 0
adaptive:
  pc_low: 0
  epsilon: 0
  gamma: 0
  switch_factor: 0
`))
	require.NoError(t, err)

	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, 0.0, cfg.GA.CrossoverRate)
	assert.Equal(t, 0.0, cfg.GA.MutationRate)
	assert.Equal(t, 0.0, cfg.Adaptive.PcLow)
	assert.Equal(t, 0.9, cfg.Adaptive.PcHigh)
	assert.Equal(t, 0.0, cfg.Adaptive.Epsilon)
	assert.Equal(t, 0.0, cfg.Adaptive.Gamma)
	assert.Equal(t, 0, cfg.Adaptive.SwitchFactor)
	// fields where zero is meaningless still fall back
	assert.Equal(t, 300, cfg.GA.Population)
}

func TestLoadEnvKeepsExplicitZero(t *testing.T) {
	t.Setenv("FJSP_ADAPTIVE_EPSILON", "0")
	t.Setenv("FJSP_GA_MUTATION_RATE", "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Adaptive.Epsilon)
	assert.Equal(t, 0.0, cfg.GA.MutationRate)
	assert.Equal(t, 0.9, cfg.Adaptive.Gamma)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("FJSP_SEED", "99")
	t.Setenv("FJSP_GA_POPULATION", "24")
	t.Setenv("FJSP_ADAPTIVE_NO_IMPROVEMENT_LIMIT", "7")

	cfg, err := Load(writeConfig(t, "seed: 5\nga:\n  population: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 24, cfg.GA.Population)
	assert.Equal(t, 7, cfg.Adaptive.NoImprovementLimit)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "ga: [not, a, map]\n"))
	assert.Error(t, err)

	t.Setenv("FJSP_GA_POPULATION", "many")
	_, err = Load("")
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"population too small", func(c *Config) { c.GA.Population = 1 }, "Population"},
		{"odd population", func(c *Config) { c.GA.Population = 7 }, "Population"},
		{"keep fraction zero", func(c *Config) { c.GA.KeepFraction = 0 }, "KeepFraction"},
		{"keep fraction above one", func(c *Config) { c.GA.KeepFraction = 1.5 }, "KeepFraction"},
		{"inverted pc range", func(c *Config) { c.Adaptive.PcLow, c.Adaptive.PcHigh = 0.9, 0.4 }, "PcLow"},
		{"pm out of bounds", func(c *Config) { c.Adaptive.PmHigh = 1.2 }, "PmHigh"},
		{"crossover rate", func(c *Config) { c.GA.CrossoverRate = -0.1 }, "CrossoverRate"},
		{"unknown mode", func(c *Config) { c.GA.Mode = "annealing" }, "Mode"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "Level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())

			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, cfgErr.Field, tt.field)
		})
	}
}
