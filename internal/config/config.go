// Package config provides a unified configuration system for symreg,
// covering every item in the Recognized Options list: the variable and
// parameter names, the operator catalog, the prior/temperature scalars,
// the driver's loop lengths and channel probabilities, and the trace
// output controls.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wayneeseguin/symreg/pkg/symreg"
)

// Config is the complete, YAML-tagged configuration for one run.
type Config struct {
	Variables  []string `yaml:"variables" json:"variables"`
	Parameters []string `yaml:"parameters" json:"parameters"`
	Ops        map[string]int `yaml:"ops" json:"ops"`
	PriorPar   map[string]float64 `yaml:"prior_par" json:"prior_par"`

	BT      float64 `yaml:"bt" json:"bt" default:"1" env:"SYMREG_BT"`
	PT      float64 `yaml:"pt" json:"pt" default:"1" env:"SYMREG_PT"`
	MaxSize int     `yaml:"max_size" json:"max_size" default:"50" env:"SYMREG_MAX_SIZE"`

	PRR   float64 `yaml:"p_rr" json:"p_rr" default:"0.05" env:"SYMREG_P_RR"`
	PLong float64 `yaml:"p_long" json:"p_long" default:"0.5" env:"SYMREG_P_LONG"`

	Burnin  int `yaml:"burnin" json:"burnin" default:"2000" env:"SYMREG_BURNIN"`
	Thin    int `yaml:"thin" json:"thin" default:"10" env:"SYMREG_THIN"`
	Samples int `yaml:"samples" json:"samples" default:"1000" env:"SYMREG_SAMPLES"`

	TraceFile    string `yaml:"tracefn" json:"tracefn" default:"trace.dat" env:"SYMREG_TRACEFN"`
	ProgressFile string `yaml:"progressfn" json:"progressfn" default:"progress.dat" env:"SYMREG_PROGRESSFN"`
	WriteFiles   bool   `yaml:"write_files" json:"write_files" default:"true" env:"SYMREG_WRITE_FILES"`
	ResetFiles   bool   `yaml:"reset_files" json:"reset_files" default:"true" env:"SYMREG_RESET_FILES"`
	Verbose      bool   `yaml:"verbose" json:"verbose" default:"false" env:"SYMREG_VERBOSE"`

	Seed int64 `yaml:"seed" json:"seed" default:"1" env:"SYMREG_SEED"`
}

// Default returns the Recognized Options defaults: the 18-operator
// catalog, BT=PT=1, max_size=50, p_rr=0.05, p_long=0.5.
func Default() *Config {
	ops := symreg.DefaultCatalog()
	return &Config{
		Ops:          ops,
		PriorPar:     symreg.DefaultPriorPar(ops),
		BT:           1,
		PT:           1,
		MaxSize:      50,
		PRR:          0.05,
		PLong:        0.5,
		Burnin:       2000,
		Thin:         10,
		Samples:      1000,
		TraceFile:    "trace.dat",
		ProgressFile: "progress.dat",
		WriteFiles:   true,
		ResetFiles:   true,
		Seed:         1,
	}
}

// Manager guards the active Config behind a read-write mutex so it can
// be read and replaced from multiple goroutines without racing.
type Manager struct {
	mu  sync.RWMutex
	cfg *Config
}

// NewManager wraps cfg (or Default() if nil) in a Manager.
func NewManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = Default()
	}
	return &Manager{cfg: cfg}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Update replaces the current configuration.
func (m *Manager) Update(cfg *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
}

// Load reads path as YAML into a Config seeded with Default(), then
// applies SYMREG_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := applyEnvOverrides(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides walks v's fields and, for every field carrying an
// `env:"NAME"` tag whose environment variable is set, overwrites the
// field with the parsed value — mirroring the teacher's reflect-based
// override walk, scaled down to this package's flat field set.
func applyEnvOverrides(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}
		raw, ok := os.LookupEnv(envName)
		if !ok {
			continue
		}
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("config: %s: %w", envName, err)
			}
			fv.SetBool(b)
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("config: %s: %w", envName, err)
			}
			fv.SetInt(n)
		case reflect.Float64:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("config: %s: %w", envName, err)
			}
			fv.SetFloat(f)
		}
	}
	return nil
}

// TreeConfig translates c into the symreg.TreeConfig constructor input,
// leaving X/Y/RNG for the caller to fill in (X and Y come from the data
// package; cmd/symreg builds the RNG from c.Seed).
func (c *Config) TreeConfig() symreg.TreeConfig {
	return symreg.TreeConfig{
		Ops:        c.Ops,
		Variables:  c.Variables,
		Parameters: c.Parameters,
		PriorPar:   c.PriorPar,
		BT:         c.BT,
		PT:         c.PT,
		MaxSize:    c.MaxSize,
	}
}

// DriverConfig translates c into the symreg.DriverConfig constructor
// input, leaving Trace for the caller to fill in once the trace writer
// is open.
func (c *Config) DriverConfig() symreg.DriverConfig {
	return symreg.DriverConfig{
		PRR:     c.PRR,
		PLong:   c.PLong,
		Burnin:  c.Burnin,
		Thin:    c.Thin,
		Samples: c.Samples,
	}
}
