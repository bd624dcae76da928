// Package config loads the application settings from GAZETTE_* environment
// variables (and an optional .env file) into typed structs.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from every variable before it is mapped onto a key.
const EnvPrefix = "GAZETTE_"

const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// Config is the root configuration object.
type Config struct {
	Primary    Primary          `koanf:"primary" validate:"required"`
	Server     ServerConfig     `koanf:"server" validate:"required"`
	Storage    StorageConfig    `koanf:"storage" validate:"required"`
	Serializer SerializerConfig `koanf:"serializer"`
	Log        LogConfig        `koanf:"log" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development test production"`
}

// ServerConfig groups settings for the HTTP server.
type ServerConfig struct {
	Addr         string        `koanf:"addr" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"gte=0"`
}

// StorageConfig selects the repository driver and where it keeps its data.
type StorageConfig struct {
	Driver     string `koanf:"driver" validate:"required,oneof=badger sqlite"`
	BadgerPath string `koanf:"badger_path" validate:"required_if=Driver badger"`
	SQLitePath string `koanf:"sqlite_path" validate:"required_if=Driver sqlite"`
	BackupDir  string `koanf:"backup_dir"`
}

// SerializerConfig tunes the post serializer.
type SerializerConfig struct {
	// CommentsDelay is how long resolving a post's comments takes.
	CommentsDelay time.Duration `koanf:"comments_delay" validate:"gte=0"`
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
}

// Default returns the configuration used when no variable overrides a key.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Storage: StorageConfig{
			Driver:     DriverBadger,
			BadgerPath: "data/badger",
			SQLitePath: "data/gazette.db",
			BackupDir:  "data/backups",
		},
		Serializer: SerializerConfig{CommentsDelay: time.Second},
		Log:        LogConfig{Level: "info"},
	}
}

// envKey maps GAZETTE_STORAGE_BADGER_PATH to storage.badger_path: the first
// underscore separates the section from the field.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Load reads the environment on top of Default and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags of the whole tree.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// IsProduction reports whether the service runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
