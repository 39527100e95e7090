// Package config loads Aurora host configuration.
//
// Sources, lowest priority first: built-in defaults, ~/.config/aurora/.env,
// ./.env, an optional YAML config file, AURORA_* environment variables, and
// command-line flags bound to the same viper instance.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys. Environment names are derived as AURORA_ + the key in
// upper case with "." and "-" replaced by "_".
const (
	KeyLogLevel           = "log-level"
	KeyLogFile            = "log-file"
	KeyTestMode           = "test-mode"
	KeyManifest           = "manifest"
	KeySessionName        = "session.name"
	KeySessionPermissions = "session.permissions"
	KeyWorldPlayers       = "world.players"
	KeyDispatchStrict     = "dispatch.strict"
	KeyDispatchRate       = "dispatch.rate"
	KeyDispatchBurst      = "dispatch.burst"
	KeyCooldownSweep      = "cooldown.sweep"
	KeyCooldownCapacity   = "cooldown.capacity"
	KeyMetricsAddr        = "metrics.addr"
)

const envPrefix = "AURORA"

// AllPermissions grants every capability token when listed in session.permissions.
const AllPermissions = "*"

var keys = []string{
	KeyLogLevel, KeyLogFile, KeyTestMode, KeyManifest,
	KeySessionName, KeySessionPermissions, KeyWorldPlayers,
	KeyDispatchStrict, KeyDispatchRate, KeyDispatchBurst,
	KeyCooldownSweep, KeyCooldownCapacity, KeyMetricsAddr,
}

var envReplacer = strings.NewReplacer(".", "_", "-", "_")

// Config is the resolved host configuration.
type Config struct {
	LogLevel string
	LogFile  string
	TestMode bool
	// Manifest is a YAML command tree that replaces the embedded world manifest.
	Manifest string

	Session  SessionConfig
	World    WorldConfig
	Dispatch DispatchConfig
	Cooldown CooldownConfig
	Metrics  MetricsConfig
}

// SessionConfig describes the interactive caller.
type SessionConfig struct {
	Name        string
	Permissions []string
}

// AllowAll reports whether the session holds every permission.
func (s SessionConfig) AllowAll() bool {
	for _, p := range s.Permissions {
		if p == AllPermissions {
			return true
		}
	}
	return false
}

// WorldConfig seeds the demo world.
type WorldConfig struct {
	Players []string
}

// DispatchConfig tunes the dispatcher.
type DispatchConfig struct {
	Strict bool
	// Rate is commands per second per caller; zero disables the flood guard.
	Rate  float64
	Burst int
}

// CooldownConfig tunes cooldown bookkeeping.
type CooldownConfig struct {
	// Sweep is the pruning interval; zero never prunes.
	Sweep time.Duration
	// Capacity bounds each node's table; zero keeps it unbounded.
	Capacity int
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics; empty disables it.
	Addr string
}

// Options selects the files Load reads.
type Options struct {
	// ConfigFile is an optional YAML file.
	ConfigFile string
	// DotEnvPaths are read in order; later files win. Missing files are skipped.
	DotEnvPaths []string
}

// DefaultDotEnvPaths returns the user config .env followed by the local one.
func DefaultDotEnvPaths() []string {
	var paths []string
	if dir, err := UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, ".env"))
	}
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, ".env"))
	}
	return paths
}

// UserConfigDir returns $XDG_CONFIG_HOME/aurora or ~/.config/aurora.
func UserConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "aurora"), nil
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return envPrefix + "_" + strings.ToUpper(envReplacer.Replace(key))
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTestMode, false)
	v.SetDefault(KeyManifest, "")
	v.SetDefault(KeySessionName, "player")
	v.SetDefault(KeySessionPermissions, []string{})
	v.SetDefault(KeyWorldPlayers, []string{"alex", "bob"})
	v.SetDefault(KeyDispatchStrict, true)
	v.SetDefault(KeyDispatchRate, 0.0)
	v.SetDefault(KeyDispatchBurst, 5)
	v.SetDefault(KeyCooldownSweep, time.Duration(0))
	v.SetDefault(KeyCooldownCapacity, 0)
	v.SetDefault(KeyMetricsAddr, "")
}

// Load resolves the configuration from every source into a Config.
func Load(v *viper.Viper, opts Options) (*Config, error) {
	SetDefaults(v)

	for _, path := range opts.DotEnvPaths {
		if err := loadDotEnv(v, path); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	}

	cfg := &Config{
		LogLevel: v.GetString(KeyLogLevel),
		LogFile:  v.GetString(KeyLogFile),
		TestMode: v.GetBool(KeyTestMode),
		Manifest: v.GetString(KeyManifest),
		Session: SessionConfig{
			Name:        v.GetString(KeySessionName),
			Permissions: list(v.Get(KeySessionPermissions)),
		},
		World: WorldConfig{
			Players: list(v.Get(KeyWorldPlayers)),
		},
		Dispatch: DispatchConfig{
			Strict: v.GetBool(KeyDispatchStrict),
			Rate:   v.GetFloat64(KeyDispatchRate),
			Burst:  v.GetInt(KeyDispatchBurst),
		},
		Cooldown: CooldownConfig{
			Sweep:    v.GetDuration(KeyCooldownSweep),
			Capacity: v.GetInt(KeyCooldownCapacity),
		},
		Metrics: MetricsConfig{
			Addr: v.GetString(KeyMetricsAddr),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the host cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Session.Name) == "" {
		return fmt.Errorf("%s cannot be empty", KeySessionName)
	}
	if strings.ContainsAny(c.Session.Name, " \t") {
		return fmt.Errorf("%s cannot contain whitespace", KeySessionName)
	}
	if c.Dispatch.Rate < 0 {
		return fmt.Errorf("%s cannot be negative", KeyDispatchRate)
	}
	if c.Dispatch.Burst < 0 {
		return fmt.Errorf("%s cannot be negative", KeyDispatchBurst)
	}
	if c.Cooldown.Sweep < 0 {
		return fmt.Errorf("%s cannot be negative", KeyCooldownSweep)
	}
	if c.Cooldown.Capacity < 0 {
		return fmt.Errorf("%s cannot be negative", KeyCooldownCapacity)
	}
	return nil
}

// loadDotEnv applies AURORA_* entries of a .env file on top of the defaults.
func loadDotEnv(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	for _, key := range keys {
		if value, ok := envMap[EnvName(key)]; ok {
			v.SetDefault(key, value)
		}
	}
	return nil
}

// list accepts a YAML list or a comma/space separated string.
func list(raw any) []string {
	var items []string
	switch val := raw.(type) {
	case nil:
	case []string:
		items = val
	case []any:
		for _, item := range val {
			items = append(items, fmt.Sprint(item))
		}
	default:
		items = strings.FieldsFunc(fmt.Sprint(val), func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
