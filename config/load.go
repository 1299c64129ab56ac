package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is looked for in the working directory.
	FileName = "minibasic.yaml"

	// HomeFileName is looked for in the user's home directory.
	HomeFileName = ".minibasic.yaml"

	maxDebounce = 10 * time.Second
)

// Load reads configuration with ENV interpolation.  An empty path
// searches the default locations; finding nothing there is not an
// error, the defaults are used.
func Load(path string, getenv func(string) string) (*Config, error) {

	cfg, _, err := LoadWithPath(path, getenv)
	return cfg, err
}

// LoadWithPath is Load, also returning the file actually read ("" when
// running on defaults).
func LoadWithPath(path string, getenv func(string) string) (*Config, string, error) {

	path, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	cfg := Defaults()
	if path == "" {
		return cfg, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	data = interpolateEnv(data, getenv)

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}

	return cfg, path, nil
}

// resolveConfigPath finds the config file to use.
// Search order: explicit path > ./minibasic.yaml > ~/.minibasic.yaml
func resolveConfigPath(explicit string) (string, error) {

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if _, err := os.Stat(FileName); err == nil {
		return FileName, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, HomeFileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} patterns with environment values.
func interpolateEnv(data []byte, getenv func(string) string) []byte {

	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		value := getenv(string(parts[1]))

		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}

		return []byte(value)
	})
}

// Validate checks the settings; call it again after applying command
// line overrides.
func Validate(cfg *Config) error {

	var errs []string

	if strings.TrimSpace(cfg.Prompt) == "" {
		errs = append(errs, "prompt must not be empty")
	}

	if cfg.MaxSteps < 0 {
		errs = append(errs, fmt.Sprintf("invalid max_steps: %d (must be >= 0)", cfg.MaxSteps))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level))
	}

	if cfg.Watch.Debounce < 0 || cfg.Watch.Debounce > maxDebounce {
		errs = append(errs, fmt.Sprintf("invalid watch.debounce: %s (must be 0-%s)", cfg.Watch.Debounce, maxDebounce))
	}

	for i, name := range cfg.Trace.Only {
		if !validName(name) {
			errs = append(errs, fmt.Sprintf("trace.only[%d]: %q is not a variable name", i, name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_$]*$`)

func validName(name string) bool {
	return namePattern.MatchString(strings.TrimSpace(name))
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
