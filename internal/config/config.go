// Package config loads settings from ~/.vibematrix/config.yaml, VIBEMATRIX_*
// environment variables and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const envPrefix = "VIBEMATRIX"

// Config is the resolved application configuration.
type Config struct {
	DataDir      string  `yaml:"data_dir" mapstructure:"data_dir" validate:"required"`
	LogFile      string  `yaml:"log_file,omitempty" mapstructure:"log_file"`
	ScheduleFile string  `yaml:"schedule_file,omitempty" mapstructure:"schedule_file"`
	Storage      Storage `yaml:"storage" mapstructure:"storage"`
	HistoryLimit int     `yaml:"history_limit" mapstructure:"history_limit" validate:"gte=1"`
	Serve        Serve   `yaml:"serve" mapstructure:"serve"`
	Notify       Notify  `yaml:"notify" mapstructure:"notify"`
	Fast         bool    `yaml:"fast" mapstructure:"fast"`
	Silent       bool    `yaml:"silent" mapstructure:"silent"`
}

// Storage selects the journal backend.
type Storage struct {
	Driver string `yaml:"driver" mapstructure:"driver" validate:"oneof=json sqlite postgres memory"`
	DSN    string `yaml:"dsn,omitempty" mapstructure:"dsn" validate:"required_if=Driver postgres"`
}

// Serve configures the read-only HTTP view.
type Serve struct {
	Addr string `yaml:"addr" mapstructure:"addr" validate:"required"`
}

// Notify toggles desktop notifications.
type Notify struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// LogPath is the JSON mood log file.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, ".vibematrix.json")
}

// SchedulePath is the JSON schedule file.
func (c *Config) SchedulePath() string {
	if c.ScheduleFile != "" {
		return c.ScheduleFile
	}
	return filepath.Join(c.DataDir, ".vibematrix-schedule.json")
}

// SQLitePath is the database file used by the sqlite driver when no DSN is
// set.
func (c *Config) SQLitePath() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}
	return filepath.Join(c.DataDir, ".vibematrix.db")
}

// Default returns the configuration used when nothing is set.
func Default(home string) Config {
	return Config{
		DataDir:      home,
		Storage:      Storage{Driver: DriverJSON},
		HistoryLimit: 10,
		Serve:        Serve{Addr: "127.0.0.1:7777"},
		Notify:       Notify{Enabled: true},
	}
}

// DefaultPath is ~/.vibematrix/config.yaml.
func DefaultPath(home string) string {
	return filepath.Join(home, ".vibematrix", "config.yaml")
}

// Load reads configuration. An empty path means DefaultPath, which may be
// absent; an explicit path must exist. Overrides are keyed like the YAML
// ("data_dir", "storage.driver") and win over file and environment.
func Load(path string, overrides map[string]any) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home directory: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default(home))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath(home)
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	for k, val := range overrides {
		v.Set(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.DataDir = expandHome(cfg.DataDir, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)
	cfg.ScheduleFile = expandHome(cfg.ScheduleFile, home)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("schedule_file", d.ScheduleFile)
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.dsn", d.Storage.DSN)
	v.SetDefault("history_limit", d.HistoryLimit)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("notify.enabled", d.Notify.Enabled)
	v.SetDefault("fast", d.Fast)
	v.SetDefault("silent", d.Silent)
}

func expandHome(p, home string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}

// Save writes cfg as YAML to path, creating its directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
