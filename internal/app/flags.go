package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters shared by the cloud shadow
// tools.
type Config struct {
	Preset    string
	Textures  string
	Seed      int64
	LogLevel  string
	Elevation float64
	Azimuth   float64
	Overrides KVList

	View int
	TPS  int
	CPU  bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Preset:    "fair",
		Textures:  ".",
		LogLevel:  "info",
		Elevation: 55,
		Azimuth:   135,
		View:      768,
		TPS:       60,
	}
}

// BindScene attaches the flags that select and tune the effect.
func (c *Config) BindScene(fs *flag.FlagSet) {
	fs.StringVar(&c.Preset, "preset", c.Preset, "builtin preset name or path to a preset .json file")
	fs.StringVar(&c.Textures, "textures", c.Textures, "directory relative texture paths resolve against")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random layer offsets (0 starts every layer at the origin)")
	fs.StringVar(&c.LogLevel, "log", c.LogLevel, "log level: debug, info, warn, error")
	fs.Float64Var(&c.Elevation, "elevation", c.Elevation, "sun elevation above the horizon in degrees")
	fs.Float64Var(&c.Azimuth, "azimuth", c.Azimuth, "sun azimuth in degrees")
	fs.Var(&c.Overrides, "set", "global setting override in key=value form (repeatable)")
}

// Bind attaches the full viewer configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	c.BindScene(fs)
	fs.IntVar(&c.View, "view", c.View, "preview window size in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.BoolVar(&c.CPU, "cpu", c.CPU, "composite on the CPU instead of the GPU")
}

// KVList collects repeated key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one key=value pair.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q is not in key=value form", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the collected pairs. Later pairs win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}
