package curvega

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
)

// Config stores every parameter of a curve-separation run.
type Config struct {
	Run       RunConfig       `toml:"run"`
	Curve     CurveConfig     `toml:"curve"`
	Points    PointsConfig    `toml:"points"`
	Selection SelectionConfig `toml:"selection"`
	Crossover CrossoverConfig `toml:"crossover"`
	Mutation  MutationConfig  `toml:"mutation"`
}

// RunConfig holds parameters of the generational loop itself.
type RunConfig struct {
	PopulationSize int   `ini:"population_size" toml:"population_size"`
	MaxGenerations int   `ini:"max_generations" toml:"max_generations"`
	Seed           int64 `ini:"seed" toml:"seed"`       // 0 = seed from the clock
	Workers        int   `ini:"workers" toml:"workers"` // <= 1 evaluates sequentially
}

// CurveConfig describes the genome: polynomial degree and coefficient bounds.
type CurveConfig struct {
	Degree         int `ini:"degree" toml:"degree"`
	CoefficientMin int `ini:"coefficient_min" toml:"coefficient_min"`
	CoefficientMax int `ini:"coefficient_max" toml:"coefficient_max"`
}

// PointsConfig describes how the two labeled point sets are generated.
type PointsConfig struct {
	PositiveCount int     `ini:"positive_count" toml:"positive_count"`
	NegativeCount int     `ini:"negative_count" toml:"negative_count"`
	MinX          float64 `ini:"min_x" toml:"min_x"`
	MaxX          float64 `ini:"max_x" toml:"max_x"`
	MinY          float64 `ini:"min_y" toml:"min_y"`
	MaxY          float64 `ini:"max_y" toml:"max_y"`
	// Reference, when set, is a polynomial (highest order first) that positive points
	// are sampled above and negative points below. Empty means uniform sampling.
	Reference []int `ini:"reference" delim:" " toml:"reference"`
}

// Bounds returns the sampling rectangle.
func (pc PointsConfig) Bounds() Bounds {
	return Bounds{MinX: pc.MinX, MaxX: pc.MaxX, MinY: pc.MinY, MaxY: pc.MaxY}
}

// SelectionConfig names the parent selection strategy.
type SelectionConfig struct {
	Strategy string `ini:"strategy" toml:"strategy"` // "cumulative" or "mating_pool"
}

// CrossoverConfig names the crossover policy and its mix proportion.
type CrossoverConfig struct {
	Strategy string  `ini:"strategy" toml:"strategy"` // "single_point" or "uniform"
	MixRate  float64 `ini:"mix_rate" toml:"mix_rate"`
}

// MutationConfig names the mutation operator and its parameters.
type MutationConfig struct {
	Strategy string  `ini:"strategy" toml:"strategy"` // "bitflip" or "bitmask"
	Rate     float64 `ini:"rate" toml:"rate"`         // per-gene probability
	// Mask selects the bits flipped by the bitmask operator, e.g. "0x0f" or "0b0011".
	// Empty means every bit of the coefficient encoding.
	Mask string `ini:"mask" toml:"mask"`
}

// BitMask parses Mask. An empty mask yields 0, which the operators read as "all bits".
func (mc MutationConfig) BitMask() (uint64, error) {
	s := strings.TrimSpace(mc.Mask)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, configErrorf("mutation.mask", "cannot parse %q: %v", mc.Mask, err)
	}
	return v, nil
}

// DefaultConfig returns the parameters of the original lab setup.
func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			PopulationSize: 30,
			MaxGenerations: 100,
			Seed:           0,
			Workers:        runtime.NumCPU(),
		},
		Curve: CurveConfig{
			Degree:         2,
			CoefficientMin: -127,
			CoefficientMax: 127,
		},
		Points: PointsConfig{
			PositiveCount: 100,
			NegativeCount: 100,
			MinX:          -20,
			MaxX:          20,
			MinY:          -10,
			MaxY:          10,
		},
		Selection: SelectionConfig{Strategy: "cumulative"},
		Crossover: CrossoverConfig{Strategy: "single_point", MixRate: 0.5},
		Mutation:  MutationConfig{Strategy: "bitflip", Rate: 1.0},
	}
}

// LoadConfig loads a configuration file on top of DefaultConfig.
// Files ending in .toml are decoded as TOML, anything else as INI.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	if strings.EqualFold(filepath.Ext(filePath), ".toml") {
		if _, err := toml.DecodeFile(filePath, config); err != nil {
			return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
		}
	} else if err := loadINI(filePath, config); err != nil {
		return nil, err
	}

	config.Selection.Strategy = cleanIniString(config.Selection.Strategy)
	config.Crossover.Strategy = cleanIniString(config.Crossover.Strategy)
	config.Mutation.Strategy = cleanIniString(config.Mutation.Strategy)
	config.Mutation.Mask = cleanIniString(config.Mutation.Mask)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadINI(filePath string, config *Config) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	sections := []struct {
		name   string
		target any
	}{
		{"Run", &config.Run},
		{"Curve", &config.Curve},
		{"Points", &config.Points},
		{"Selection", &config.Selection},
		{"Crossover", &config.Crossover},
		{"Mutation", &config.Mutation},
	}
	for _, s := range sections {
		if !cfg.HasSection(s.name) {
			continue
		}
		if err := cfg.Section(s.name).MapTo(s.target); err != nil {
			return fmt.Errorf("failed to map [%s] section: %w", s.name, err)
		}
	}
	return nil
}

// Validate checks every parameter and returns the first ConfigurationError found.
func (c *Config) Validate() error {
	if c.Run.PopulationSize <= 0 {
		return configErrorf("run.population_size", "must be positive, got %d", c.Run.PopulationSize)
	}
	if c.Run.MaxGenerations < 0 {
		return configErrorf("run.max_generations", "cannot be negative")
	}
	if c.Curve.Degree < 1 {
		return configErrorf("curve.degree", "must be at least 1, got %d", c.Curve.Degree)
	}
	if c.Curve.CoefficientMax < c.Curve.CoefficientMin {
		return configErrorf("curve.coefficient_max", "cannot be less than coefficient_min")
	}
	if BitWidthFor(c.Curve.CoefficientMin, c.Curve.CoefficientMax) > maxBitWidth {
		return configErrorf("curve.coefficient_min", "bounds need more than %d bits", maxBitWidth)
	}
	if c.Points.PositiveCount < 0 || c.Points.NegativeCount < 0 {
		return configErrorf("points", "point counts cannot be negative")
	}
	if c.Points.PositiveCount+c.Points.NegativeCount == 0 {
		return configErrorf("points", "at least one point is required")
	}
	if c.Points.MaxX < c.Points.MinX || c.Points.MaxY < c.Points.MinY {
		return configErrorf("points", "max bounds cannot be less than min bounds")
	}
	if len(c.Points.Reference) == 1 {
		return configErrorf("points.reference", "needs at least two coefficients")
	}
	if c.Crossover.MixRate < 0 || c.Crossover.MixRate > 1 {
		return configErrorf("crossover.mix_rate", "must be between 0 and 1")
	}
	if c.Mutation.Rate < 0 || c.Mutation.Rate > 1 {
		return configErrorf("mutation.rate", "must be between 0 and 1")
	}
	if _, err := c.Mutation.BitMask(); err != nil {
		return err
	}

	if _, ok := selectors[strings.ToLower(c.Selection.Strategy)]; !ok {
		return configErrorf("selection.strategy", "unknown strategy %q (available: %v)", c.Selection.Strategy, SelectorNames())
	}
	if _, ok := crossovers[strings.ToLower(c.Crossover.Strategy)]; !ok {
		return configErrorf("crossover.strategy", "unknown strategy %q (available: %v)", c.Crossover.Strategy, CrossoverNames())
	}
	if _, ok := mutators[strings.ToLower(c.Mutation.Strategy)]; !ok {
		return configErrorf("mutation.strategy", "unknown strategy %q (available: %v)", c.Mutation.Strategy, MutatorNames())
	}
	return nil
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
