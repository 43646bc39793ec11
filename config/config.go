// Package config loads simulation scenarios from YAML files, .env files and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/chemosim/turnover/datarecording"
	"github.com/chemosim/turnover/turnover"
)

// EnvPrefix starts the names of the environment variables that override the
// scenario file.
const EnvPrefix = "TURNOVER_"

// Config is a complete simulation scenario.
type Config struct {
	Receptor struct {
		Name string  `yaml:"name"`
		Kd   float64 `yaml:"kd"`
	} `yaml:"receptor"`
	Ligand struct {
		Background float64 `yaml:"background"`
		Gradient   float64 `yaml:"gradient"`
		Shear      float64 `yaml:"shear"`
	} `yaml:"ligand"`
	Turnover struct {
		BasalRate           float64  `yaml:"basalRate"`
		InternalisationRate float64  `yaml:"internalisationRate"`
		InitialExpression   *float64 `yaml:"initialExpression,omitempty"`
		Policy              string   `yaml:"policy"`
		Shards              int      `yaml:"shards"`
	} `yaml:"turnover"`
	Cells struct {
		Count   int     `yaml:"count"`
		Spacing float64 `yaml:"spacing"`
	} `yaml:"cells"`
	Run struct {
		Steps    int     `yaml:"steps"`
		Dt       float64 `yaml:"dt"`
		Workers  int     `yaml:"workers"`
		LogTicks bool    `yaml:"logTicks"`
	} `yaml:"run"`
	Record struct {
		Enabled                      bool `yaml:"enabled"`
		datarecording.RecorderConfig `yaml:",inline"`
	} `yaml:"record"`
	Monitor struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
		Open    bool `yaml:"open"`
	} `yaml:"monitor"`
}

// Default returns the scenario used when nothing is configured.
func Default() *Config {
	cfg := &Config{}

	cfg.Receptor.Name = "CXCR4"
	cfg.Receptor.Kd = 1
	cfg.Ligand.Background = 1
	cfg.Ligand.Gradient = 0.1
	cfg.Turnover.BasalRate = 0.1
	cfg.Turnover.InternalisationRate = 0.5
	cfg.Turnover.Policy = turnover.PolicyStrict.String()
	cfg.Turnover.Shards = turnover.DefaultNumShards
	cfg.Cells.Count = 100
	cfg.Cells.Spacing = 1
	cfg.Run.Steps = 100
	cfg.Run.Dt = 0.1
	cfg.Run.Workers = 1
	cfg.Record.Backend = datarecording.BackendSQLite

	return cfg
}

// Load reads the .env file next to the scenario, then the scenario itself,
// then applies environment variable overrides. A missing scenario file or
// .env file is not an error. An empty path only reads the environment.
func Load(path string) (*Config, error) {
	envFile := ".env"
	if path != "" {
		envFile = filepath.Join(filepath.Dir(path), ".env")
	}

	err := godotenv.Load(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}

		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}

	float := func(key string, dst *float64) {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok || v == "" {
			return
		}

		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			return
		}

		*dst = f
	}

	integer := func(key string, dst *int) {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok || v == "" {
			return
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			return
		}

		*dst = n
	}

	boolean := func(key string, dst *bool) {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok || v == "" {
			return
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			return
		}

		*dst = b
	}

	str("RECEPTOR", &c.Receptor.Name)
	float("KD", &c.Receptor.Kd)
	float("LIGAND_BACKGROUND", &c.Ligand.Background)
	float("LIGAND_GRADIENT", &c.Ligand.Gradient)
	float("SHEAR", &c.Ligand.Shear)
	float("BASAL_RATE", &c.Turnover.BasalRate)
	float("INTERNALISATION_RATE", &c.Turnover.InternalisationRate)
	str("POLICY", &c.Turnover.Policy)
	integer("CELLS", &c.Cells.Count)
	integer("STEPS", &c.Run.Steps)
	float("DT", &c.Run.Dt)
	integer("WORKERS", &c.Run.Workers)
	boolean("RECORD", &c.Record.Enabled)
	str("RECORD_BACKEND", &c.Record.Backend)
	str("RECORD_PATH", &c.Record.Path)
	str("RECORD_DSN", &c.Record.DSN)
	boolean("MONITOR", &c.Monitor.Enabled)
	integer("MONITOR_PORT", &c.Monitor.Port)

	if v, ok := os.LookupEnv(EnvPrefix + "INITIAL_EXPRESSION"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs,
				fmt.Errorf("%sINITIAL_EXPRESSION: %w", EnvPrefix, err))
		} else {
			c.Turnover.InitialExpression = &f
		}
	}

	return errors.Join(errs...)
}

// TurnoverConfig returns the section of the scenario that configures the
// turnover model.
func (c *Config) TurnoverConfig() turnover.Config {
	return turnover.Config{
		Receptor:            c.Receptor.Name,
		BasalRate:           c.Turnover.BasalRate,
		InternalisationRate: c.Turnover.InternalisationRate,
		InitialExpression:   c.Turnover.InitialExpression,
	}
}

// Policy returns the unregistered-cell policy of the scenario.
func (c *Config) Policy() (turnover.UnregisteredPolicy, error) {
	return turnover.ParsePolicy(c.Turnover.Policy)
}

// Validate checks the whole scenario and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if err := c.TurnoverConfig().Validate(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.Policy(); err != nil {
		errs = append(errs, err)
	}

	if !(c.Receptor.Kd > 0) || math.IsInf(c.Receptor.Kd, 1) {
		errs = append(errs,
			fmt.Errorf("receptor.kd must be positive and finite"))
	}

	if !(c.Ligand.Shear >= 0) || math.IsInf(c.Ligand.Shear, 1) {
		errs = append(errs,
			fmt.Errorf("ligand.shear must be finite and not negative"))
	}

	if c.Cells.Count < 0 {
		errs = append(errs, fmt.Errorf("cells.count must not be negative"))
	}

	if c.Run.Steps < 0 {
		errs = append(errs, fmt.Errorf("run.steps must not be negative"))
	}

	if !(c.Run.Dt > 0) {
		errs = append(errs, fmt.Errorf("run.dt must be positive"))
	}

	if c.Run.Workers < 1 {
		errs = append(errs, fmt.Errorf("run.workers must be at least 1"))
	}

	if c.Record.Enabled {
		switch c.Record.Backend {
		case "", datarecording.BackendSQLite:
		case datarecording.BackendClickHouse, datarecording.BackendPostgres:
			if c.Record.DSN == "" {
				errs = append(errs, fmt.Errorf("record.dsn is required "+
					"for the %s backend", c.Record.Backend))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown record.backend %q",
				c.Record.Backend))
		}
	}

	if c.Monitor.Port < 0 || c.Monitor.Port > 65535 {
		errs = append(errs, fmt.Errorf("monitor.port %d is out of range",
			c.Monitor.Port))
	}

	return errors.Join(errs...)
}

// Encode writes the scenario as YAML.
func (c *Config) Encode(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return err
	}

	return encoder.Close()
}
