package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"

	"github.com/KARIMDAVI/savipets-ios/internal/paths"
)

// DefaultRoot is the app-icon asset catalog directory, relative to the
// repository root the tool is run from.
const DefaultRoot = "SaviPets/Assets.xcassets/AppIcon.appiconset"

// DefaultIcons are the 1024×1024 marketing icons App Store Connect
// validates. Order determines processing order.
var DefaultIcons = []string{
	"SaviPets-iOS-Default-1024x1024@1x.png",
	"SaviPets-iOS-Dark-1024x1024@1x.png",
	"SaviPets-iOS-TintedLight-1024x1024@1x.png",
}

// Backend names accepted for the run log.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the icon root, the ordered icon list, and run-log settings.
type Config struct {
	Root       string   `json:"root"        env:"SAVIPETS_ICON_ROOT"`
	Icons      []string `json:"icons"       env:"SAVIPETS_ICON_FILES" envSeparator:","`
	Log        bool     `json:"log"         env:"SAVIPETS_ICON_LOG"`
	LogBackend string   `json:"log_backend" env:"SAVIPETS_ICON_LOG_BACKEND"`
}

// Default returns the compiled-in configuration the tool ships with.
func Default() Config {
	icons := make([]string, len(DefaultIcons))
	copy(icons, DefaultIcons)
	return Config{
		Root:       DefaultRoot,
		Icons:      icons,
		LogBackend: BackendFile,
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Validate reports configs no run could act on.
func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("icon root must not be empty")
	}
	if len(c.Icons) == 0 {
		return fmt.Errorf("icon list must not be empty")
	}
	if c.LogBackend != BackendFile && c.LogBackend != BackendSQLite {
		return fmt.Errorf("log_backend must be %q or %q, got %q", BackendFile, BackendSQLite, c.LogBackend)
	}
	return nil
}

// Load resolves the effective configuration. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. fixicons-config.json next to the running binary
//  3. ~/.config/fixicons/fixicons-config.json
//
// No config file is not an error: the compiled-in defaults apply, so a
// zero-argument run from the repository root works out of the box.
// SAVIPETS_ICON_* environment variables override whatever was loaded.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	switch {
	case explicitPath != "":
		c, err := readConfig(explicitPath)
		if err != nil {
			return Config{}, err
		}
		cfg = c
	default:
		if p, ok := findConfig(); ok {
			c, err := readConfig(p)
			if err != nil {
				return Config{}, err
			}
			cfg = c
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// findConfig looks for a config file next to the binary, then in the
// user config directory.
func findConfig() (string, bool) {
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		var p string
		if runtime.GOOS == "windows" {
			p = filepath.Join(home, "AppData", "Roaming", paths.AppDirName, paths.ConfigFileName)
		} else {
			p = filepath.Join(home, ".config", paths.AppDirName, paths.ConfigFileName)
		}
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}

	return "", false
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
