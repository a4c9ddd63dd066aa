/*
Package config loads the server configuration.

PRECEDENCE (lowest first):
  1. Defaults()
  2. config.yml in ./, ./config or /etc/insurance-admin (or --config)
  3. .env in the working directory
  4. INSURANCE_* environment variables ("." becomes "_",
     e.g. INSURANCE_STORE_DRIVER=sqlite)
  5. Command-line flags bound by cmd/server

A missing config file is not an error; defaults apply.

SEE ALSO:
  - cmd/server/main.go: Flag binding
  - logging/logger.go: Consumes Log
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "INSURANCE"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	Server   ServerConfig  `mapstructure:"server"`
	Store    StoreConfig   `mapstructure:"store"`
	Log      LogConfig     `mapstructure:"log"`
	CORS     CORSConfig    `mapstructure:"cors"`
	API      APIConfig     `mapstructure:"api"`
	Features FeatureConfig `mapstructure:"features"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type APIConfig struct {
	// ListCacheMaxAge is sent as Cache-Control max-age on list responses.
	ListCacheMaxAge time.Duration `mapstructure:"list_cache_max_age"`
}

type FeatureConfig struct {
	// EnableReset mounts POST /api/reset. Development only.
	EnableReset bool `mapstructure:"enable_reset"`
}

// Defaults mirrors the values New registers with viper.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Store: StoreConfig{Driver: DriverMemory, Path: "./data/insurance.db"},
		Log:   LogConfig{Level: "info"},
		CORS: CORSConfig{AllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}},
		API: APIConfig{ListCacheMaxAge: 60 * time.Second},
	}
}

// New returns a viper instance with defaults, search paths and env
// binding configured. Callers may bind flags before calling Load.
func New() *viper.Viper {
	v := viper.New()

	d := Defaults()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("cors.allowed_origins", d.CORS.AllowedOrigins)
	v.SetDefault("api.list_cache_max_age", d.API.ListCacheMaxAge)
	v.SetDefault("features.enable_reset", d.Features.EnableReset)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/insurance-admin")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env, the config file (file overrides the search paths when
// set) and unmarshals the result.
func Load(v *viper.Viper, file string) (Config, error) {
	_ = godotenv.Load()

	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	// "a,b" from the environment arrives as a single element.
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr cannot be empty")
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.Path == "" {
			return errors.New("store.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q (want %s or %s)", c.Store.Driver, DriverMemory, DriverSQLite)
	}
	if c.API.ListCacheMaxAge < 0 {
		return errors.New("api.list_cache_max_age cannot be negative")
	}
	return nil
}
