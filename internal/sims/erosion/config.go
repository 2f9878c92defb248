package erosion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("erosion: invalid config")

// Variant selects between the two droplet update rules.
type Variant uint8

const (
	// VariantWeighted scales inertia by droplet velocity, damps evaporation
	// for fast droplets and only erodes above sea level.
	VariantWeighted Variant = iota
	// VariantConstant uses fixed inertia and evaporation and erodes at any
	// height.
	VariantConstant
)

func (v Variant) String() string {
	switch v {
	case VariantWeighted:
		return "weighted"
	case VariantConstant:
		return "constant"
	default:
		return "variant(" + strconv.Itoa(int(v)) + ")"
	}
}

// ParseVariant accepts the names produced by Variant.String.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weighted", "velocity":
		return VariantWeighted, nil
	case "constant", "classic":
		return VariantConstant, nil
	}
	return 0, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, s)
}

// Params holds the hydraulic erosion constants applied to every droplet.
type Params struct {
	Evaporation float32
	Inertia     float32
	MinSlope    float32
	Capacity    float32
	Deposition  float32
	Erosion     float32

	Variant Variant

	// WaterEpsilon is the volume below which a droplet is despawned.
	WaterEpsilon float32
	// MaxLifetime caps droplet age in ticks. Zero disables the cap.
	MaxLifetime int
}

// TerrainParams shapes the fractal noise used to seed the heightmap.
type TerrainParams struct {
	Octaves     int
	Frequency   float64
	Lacunarity  float64
	Persistence float64
	// Bias is added to every cell and controls how much of the grid starts
	// above sea level.
	Bias float64
}

// Config controls grid dimensions, population and erosion tuning.
type Config struct {
	Size int
	Seed int64

	Terrain TerrainParams

	RainPerTick     int
	SourceAttempts  int
	SourceFlux      float64
	SourceMinHeight float32

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size: 512,
		Seed: 1337,
		Terrain: TerrainParams{
			Octaves:     6,
			Frequency:   1,
			Lacunarity:  2,
			Persistence: 0.5,
			Bias:        0.5,
		},
		RainPerTick:     5,
		SourceAttempts:  400,
		SourceFlux:      0.01,
		SourceMinHeight: 0.3,
		Params: Params{
			Evaporation:  0.05,
			Inertia:      0.1,
			MinSlope:     0,
			Capacity:     800,
			Deposition:   0.1,
			Erosion:      0.01,
			Variant:      VariantWeighted,
			WaterEpsilon: 1e-6,
			MaxLifetime:  4096,
		},
	}
}

// Validate reports the first setting that cannot produce a meaningful run.
func (c Config) Validate() error {
	if c.Size < 2 {
		return fmt.Errorf("%w: size must be at least 2, got %d", ErrInvalidConfig, c.Size)
	}
	if c.Terrain.Octaves < 1 {
		return fmt.Errorf("%w: octaves must be positive, got %d", ErrInvalidConfig, c.Terrain.Octaves)
	}
	if c.RainPerTick < 0 {
		return fmt.Errorf("%w: rain per tick must be non-negative, got %d", ErrInvalidConfig, c.RainPerTick)
	}
	if c.SourceAttempts < 0 {
		return fmt.Errorf("%w: source attempts must be non-negative, got %d", ErrInvalidConfig, c.SourceAttempts)
	}
	if !(c.SourceFlux >= 0) {
		return fmt.Errorf("%w: source flux must be non-negative, got %v", ErrInvalidConfig, c.SourceFlux)
	}
	return c.Params.Validate()
}

// Validate checks the erosion constants.
func (p Params) Validate() error {
	rates := []struct {
		name  string
		value float32
	}{
		{"evaporation", p.Evaporation},
		{"inertia", p.Inertia},
		{"min slope", p.MinSlope},
		{"capacity", p.Capacity},
		{"deposition", p.Deposition},
		{"erosion", p.Erosion},
		{"water epsilon", p.WaterEpsilon},
	}
	for _, r := range rates {
		if !(r.value >= 0) {
			return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidConfig, r.name, r.value)
		}
	}
	if p.Evaporation > 1 {
		return fmt.Errorf("%w: evaporation must not exceed 1, got %v", ErrInvalidConfig, p.Evaporation)
	}
	if p.Deposition > 1 {
		return fmt.Errorf("%w: deposition must not exceed 1, got %v", ErrInvalidConfig, p.Deposition)
	}
	if p.Variant > VariantConstant {
		return fmt.Errorf("%w: unknown variant %d", ErrInvalidConfig, p.Variant)
	}
	if p.MaxLifetime < 0 {
		return fmt.Errorf("%w: max lifetime must be non-negative, got %d", ErrInvalidConfig, p.MaxLifetime)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Values that fail to parse are ignored; range checks are left to Validate.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	setInt(cfg, "size", &c.Size)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}

	setInt(cfg, "octaves", &c.Terrain.Octaves)
	setFloat64(cfg, "frequency", &c.Terrain.Frequency)
	setFloat64(cfg, "lacunarity", &c.Terrain.Lacunarity)
	setFloat64(cfg, "persistence", &c.Terrain.Persistence)
	setFloat64(cfg, "bias", &c.Terrain.Bias)

	setInt(cfg, "rain", &c.RainPerTick)
	setInt(cfg, "source_attempts", &c.SourceAttempts)
	setFloat64(cfg, "source_flux", &c.SourceFlux)
	setFloat32(cfg, "source_min_height", &c.SourceMinHeight)

	setFloat32(cfg, "evaporation", &c.Params.Evaporation)
	setFloat32(cfg, "inertia", &c.Params.Inertia)
	setFloat32(cfg, "min_slope", &c.Params.MinSlope)
	setFloat32(cfg, "capacity", &c.Params.Capacity)
	setFloat32(cfg, "deposition", &c.Params.Deposition)
	setFloat32(cfg, "erosion", &c.Params.Erosion)
	setFloat32(cfg, "water_epsilon", &c.Params.WaterEpsilon)
	setInt(cfg, "max_lifetime", &c.Params.MaxLifetime)
	if v, ok := cfg["variant"]; ok {
		if parsed, err := ParseVariant(v); err == nil {
			c.Params.Variant = parsed
		}
	}
	return c
}

func setInt(cfg map[string]string, key string, dst *int) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = parsed
		}
	}
}

func setFloat64(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			*dst = parsed
		}
	}
}

func setFloat32(cfg map[string]string, key string, dst *float32) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 32); err == nil {
			*dst = float32(parsed)
		}
	}
}
