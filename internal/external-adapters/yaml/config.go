// Package yaml loads project-level configuration for the rcheck CLI.
package yaml

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project config file looked up in the working
// directory the CLI runs from.
const ConfigFileName = "rcheck.yml"

// Config holds project defaults for the CLI subcommands. Values act as flag
// defaults, so command-line flags always win.
type Config struct {
	Check   CheckConfig  `yaml:"check"`
	Build   BuildConfig  `yaml:"build"`
	Submit  SubmitConfig `yaml:"submit"`
	EnvFile string       `yaml:"env_file"`
}

// CheckConfig holds defaults for the check subcommand.
type CheckConfig struct {
	AsCran        bool     `yaml:"as_cran"`
	CheckVersion  bool     `yaml:"check_version"`
	ForceSuggests bool     `yaml:"force_suggests"`
	RunDontTest   bool     `yaml:"run_donttest"`
	Document      bool     `yaml:"document"`
	Args          []string `yaml:"args"`
	Dir           string   `yaml:"dir"`
}

// BuildConfig holds defaults for the build subcommand.
type BuildConfig struct {
	Vignettes bool     `yaml:"vignettes"`
	Manual    bool     `yaml:"manual"`
	Args      []string `yaml:"args"`
	Dest      string   `yaml:"dest"`
}

// SubmitConfig holds defaults for the submit subcommand.
type SubmitConfig struct {
	Versions []string `yaml:"versions"`
}

// DefaultConfig returns the built-in defaults used when no rcheck.yml is
// present.
func DefaultConfig() *Config {
	return &Config{
		Check: CheckConfig{
			AsCran:   true,
			Document: true,
		},
		Build: BuildConfig{
			Vignettes: true,
			Dest:      ".",
		},
		Submit: SubmitConfig{
			Versions: []string{"R-devel"},
		},
	}
}

// LoadConfig reads rcheck.yml from dir, falling back to the defaults when
// the file does not exist. Keys absent from the file keep their defaults.
func LoadConfig(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(dir, ConfigFileName)
	//nolint:gosec // G304: the config lives in the directory the user named
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
