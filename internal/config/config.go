// Package config resolves gradebook settings from a config file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default values used when nothing else is configured.
const (
	DefaultDataFile   = "students.txt"
	DefaultReportFile = "report.txt"
	DefaultFormat     = "text"

	// FileName is the config file name searched for, without extension.
	FileName = "gradebook"

	// EnvPrefix prefixes environment overrides, e.g. GRADEBOOK_DATA_FILE.
	EnvPrefix = "GRADEBOOK"
)

// Config holds the effective settings.
type Config struct {
	DataFile   string `yaml:"data_file" json:"data_file" mapstructure:"data_file"`
	ReportFile string `yaml:"report_file" json:"report_file" mapstructure:"report_file"`
	Format     string `yaml:"format" json:"format" mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataFile:   DefaultDataFile,
		ReportFile: DefaultReportFile,
		Format:     DefaultFormat,
	}
}

// Dirs returns the directories searched for gradebook.yaml, in order.
func Dirs() []string {
	dirs := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "gradebook"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "gradebook"))
	}
	return dirs
}

// Load builds the configuration from defaults, an optional config file and
// GRADEBOOK_* environment variables.
//
// When explicitPath is empty the standard directories are searched and a
// missing file is not an error. An explicit path must exist.
func Load(explicitPath string) (*Config, string, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("data_file", def.DataFile)
	v.SetDefault("report_file", def.ReportFile)
	v.SetDefault("format", def.Format)

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		for _, dir := range Dirs() {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, "", fmt.Errorf("decode config: %w", err)
	}
	return cfg, v.ConfigFileUsed(), nil
}

// WriteDefault writes the built-in configuration as YAML to path.
// An existing file is left untouched unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
