package app

import (
	"flag"
	"fmt"
	"strings"
)

// Overrides collects repeatable key=value flags into a config map.
type Overrides map[string]string

// String renders the overrides in flag form.
func (o Overrides) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (o Overrides) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("override %q is not key=value", value)
	}
	o[key] = strings.TrimSpace(val)
	return nil
}

// Config represents the command-line parameters shared by the binaries.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64
	Set   Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "erosion", Scale: 2, TPS: 60, Seed: 42, Set: Overrides{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.Var(c.Set, "set", "simulation override in key=value form (repeatable)")
}

// SimOptions returns the overrides passed to the simulation factory.
func (c *Config) SimOptions() map[string]string {
	opts := make(map[string]string, len(c.Set)+1)
	for k, v := range c.Set {
		opts[k] = v
	}
	if _, ok := opts["seed"]; !ok {
		opts["seed"] = fmt.Sprint(c.Seed)
	}
	return opts
}
