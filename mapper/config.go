package mapper

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rowmapper/convert"
	"rowmapper/logging"
	"rowmapper/naming"
)

// Config configures a Mapper.
type Config struct {
	// Naming derives column names from field names. Default naming.Identity.
	Naming naming.Strategy
	// Logger receives progress and warnings. Default: stderr at warn level.
	Logger logging.Logger
	// Extensions registers the convert/ext converters.
	Extensions bool
	// Converters are registered after the built-ins and extensions.
	Converters []convert.Converter
	// Metrics is optional.
	Metrics *Metrics
}

// DefaultConfig returns identity naming, the default logger, built-in
// converters only and no metrics.
func DefaultConfig() Config {
	return Config{
		Naming: naming.Identity,
		Logger: logging.Default(),
	}
}

// FileConfig is the YAML form of Config.
type FileConfig struct {
	Naming     string `yaml:"naming"`
	LogLevel   string `yaml:"log_level"`
	Extensions bool   `yaml:"extensions"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML config data. Missing keys keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	var fc FileConfig

	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return fc.Config()
}

// Config converts the file form into a Config.
func (fc FileConfig) Config() (Config, error) {
	strategy, err := naming.Parse(fc.Naming)
	if err != nil {
		return Config{}, err
	}

	level := fc.LogLevel
	if level == "" {
		level = logging.DefaultLevel
	}

	return Config{
		Naming:     strategy,
		Logger:     logging.New(os.Stderr, level),
		Extensions: fc.Extensions,
	}, nil
}
