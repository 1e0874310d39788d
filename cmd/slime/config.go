package main

import (
	"flag"
	"fmt"
	"strconv"
)

// AppConfig holds the process-level settings of the windowed runner.
// Simulation parameters live in the config file instead.
type AppConfig struct {
	ConfigFile string
	Width      int
	Height     int
	Scale      int
	Workers    int
	Seed       int64
	TPS        int
	LogLevel   string
}

// configResolver defines how to resolve a single configuration value
type configResolver struct {
	flagName    string
	envVarName  string
	defaultVal  string
	description string
	setter      func(*AppConfig, string) error
}

func intSetter(dst func(*AppConfig) *int, name string) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid value for %s: %q", name, v)
		}
		*dst(c) = n
		return nil
	}
}

var resolvers = []configResolver{
	{
		flagName:    "config",
		envVarName:  "SLIME_CONFIG",
		defaultVal:  "slimeconfig.txt",
		description: "path to the key: value parameter file",
		setter:      func(c *AppConfig, v string) error { c.ConfigFile = v; return nil },
	},
	{
		flagName:    "width",
		envVarName:  "SLIME_WIDTH",
		defaultVal:  "1000",
		description: "grid width in cells",
		setter:      intSetter(func(c *AppConfig) *int { return &c.Width }, "width"),
	},
	{
		flagName:    "height",
		envVarName:  "SLIME_HEIGHT",
		defaultVal:  "700",
		description: "grid height in cells",
		setter:      intSetter(func(c *AppConfig) *int { return &c.Height }, "height"),
	},
	{
		flagName:    "scale",
		envVarName:  "SLIME_SCALE",
		defaultVal:  "1",
		description: "window pixels per grid cell",
		setter:      intSetter(func(c *AppConfig) *int { return &c.Scale }, "scale"),
	},
	{
		flagName:    "workers",
		envVarName:  "SLIME_WORKERS",
		defaultVal:  "0",
		description: "parallel workers per pass; 0 uses every CPU",
		setter:      intSetter(func(c *AppConfig) *int { return &c.Workers }, "workers"),
	},
	{
		flagName:    "seed",
		envVarName:  "SLIME_SEED",
		defaultVal:  "0",
		description: "random seed; 0 picks one from the clock",
		setter: func(c *AppConfig, v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for seed: %q", v)
			}
			c.Seed = n
			return nil
		},
	},
	{
		flagName:    "tps",
		envVarName:  "SLIME_TPS",
		defaultVal:  "60",
		description: "simulation ticks per second",
		setter:      intSetter(func(c *AppConfig) *int { return &c.TPS }, "tps"),
	},
	{
		flagName:    "log-level",
		envVarName:  "SLIME_LOG_LEVEL",
		defaultVal:  "info",
		description: "Log level: debug, info, warn, error",
		setter:      func(c *AppConfig, v string) error { c.LogLevel = v; return nil },
	},
}

// loadAppConfig resolves every setting from flags, then the environment, then
// the built-in default.
func loadAppConfig(fs *flag.FlagSet, args []string, getenv func(string) string) (AppConfig, error) {
	cfg := AppConfig{}

	flagVars := make(map[string]*string)
	for _, r := range resolvers {
		flagVars[r.flagName] = fs.String(r.flagName, "", r.description)
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	for _, r := range resolvers {
		var value string
		if *flagVars[r.flagName] != "" {
			value = *flagVars[r.flagName]
		} else if envValue := getenv(r.envVarName); envValue != "" {
			value = envValue
		} else {
			value = r.defaultVal
		}
		if err := r.setter(&cfg, value); err != nil {
			return cfg, err
		}
	}

	if cfg.Width < 1 || cfg.Height < 1 {
		return cfg, fmt.Errorf("grid size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	if cfg.TPS < 1 {
		cfg.TPS = 60
	}
	return cfg, nil
}
