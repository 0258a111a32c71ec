package config

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Flags are the command-line options shared by every binary
type Flags struct {
	Config   string `long:"config" env:"CRAWLER_CONFIG" description:"Config file (default <data-dir>/crawler.json)"`
	DataDir  string `long:"data-dir" env:"CRAWLER_DATA_DIR" default:"data" description:"Directory holding the config and the job database"`
	Renderer string `long:"renderer" env:"CRAWLER_RENDERER" choice:"playwright" choice:"rod" description:"Browser engine, overrides the config file"`
	EnvFile  string `long:"env-file" env:"CRAWLER_ENV_FILE" description:"dotenv file to load (default .env)"`
	Headful  bool   `long:"headful" env:"CRAWLER_HEADFUL" description:"Show the browser window"`
	Port     string `long:"port" env:"PORT" default:"8080" description:"HTTP port (server only)"`
}

// ParseFlags parses args. A nil result with a nil error means help was shown.
func ParseFlags(args []string) (*Flags, error) {
	var f Flags
	parser := flags.NewParser(&f, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	return &f, nil
}

// LoadFromFlags loads the config and applies the command-line overrides
func LoadFromFlags(f *Flags) (*Config, error) {
	cfg, err := Load(f.DataDir, f.Config, f.EnvFile)
	if err != nil {
		return nil, err
	}
	if f.Renderer != "" {
		cfg.Renderer = f.Renderer
	}
	if f.Headful {
		cfg.Headless = false
	}
	return cfg, nil
}
