package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DirName is the per-user and per-project configuration directory.
const DirName = ".jotter"

// EnvPrefix prefixes every environment override, e.g. JOTTER_STORE_ADAPTER.
const EnvPrefix = "JOTTER"

// Load merges defaults, the global file, the project file and the environment.
// Missing files are skipped; malformed files are an error.
func Load() (*Config, error) {
	home, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()
	return LoadFrom(home, cwd)
}

// LoadFrom is Load with explicit home and working directories.
// Either may be empty to skip that layer.
func LoadFrom(home, cwd string) (*Config, error) {
	cfg := DefaultConfig()

	for _, dir := range []string{home, cwd} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, DirName, "config.yaml")
		if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(cfg)
}

// applyEnv overlays JOTTER_* variables. OPENAI_API_KEY is honoured when no
// jotter-specific key is configured anywhere.
func applyEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setString := func(key string, dst *string) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	setBool := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}

	setString("store.adapter", &cfg.Store.Adapter)
	setString("store.path", &cfg.Store.Path)
	setString("store.slot", &cfg.Store.Slot)
	setBool("store.versioning", &cfg.Store.Versioning)
	setBool("store.read_only", &cfg.Store.ReadOnly)

	setString("summarizer.api_key", &cfg.Summarizer.APIKey)
	setString("summarizer.base_url", &cfg.Summarizer.BaseURL)
	setString("summarizer.model", &cfg.Summarizer.Model)
	setString("summarizer.remote", &cfg.Summarizer.Remote)
	if n := v.GetInt("summarizer.max_tokens"); n > 0 {
		cfg.Summarizer.MaxTokens = n
	}
	if d := v.GetDuration("summarizer.timeout"); d > 0 {
		cfg.Summarizer.Timeout = d
	}

	setString("server.addr", &cfg.Server.Addr)
	setString("display.locale", &cfg.Display.Locale)
	setString("display.time_zone", &cfg.Display.TimeZone)

	if cfg.Summarizer.APIKey == "" {
		cfg.Summarizer.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DirName, "config.yaml")
}

// DataPath returns the default data directory: the project's .jotter/data when
// projectRoot is set, otherwise ~/.jotter/data.
func DataPath(home, projectRoot string) string {
	if projectRoot != "" {
		return filepath.Join(projectRoot, DirName, "data")
	}
	return filepath.Join(home, DirName, "data")
}

// ProjectConfigPath returns the path to the project config file.
func ProjectConfigPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, DirName, "config.yaml")
}
