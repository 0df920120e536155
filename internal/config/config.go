// Package config handles loading and parsing application configuration.
//
// Settings are merged from three layers, later layers winning:
//  1. <dir>/base.yaml
//  2. <dir>/<APP_ENV>.yaml   (development or production)
//  3. environment variables  (APPLICATION_PORT, DATABASE_URL, ...)
//
// The directory defaults to ./configuration and can be changed with the
// CONFIG_DIR environment variable or the --config-dir flag.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Environment selects the overlay file and the logging format.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// ParseEnvironment accepts only the known environments; an empty value means
// Development.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case "", Development:
		return Development, nil
	case Production:
		return Production, nil
	default:
		return "", fmt.Errorf("%s is not a supported environment", s)
	}
}

// Settings is the root configuration structure.
type Settings struct {
	// Env is not read from YAML; it is the environment that chose the overlay.
	Env Environment `yaml:"-"`

	Application ApplicationSettings `yaml:"application"`
	Database    DatabaseSettings    `yaml:"database"`
}

// ApplicationSettings configures the HTTP listener.
type ApplicationSettings struct {
	Host string `yaml:"host" env:"APPLICATION_HOST" env-default:"127.0.0.1"`
	// Port 0 lets the OS pick a free port.
	Port uint16 `yaml:"port" env:"APPLICATION_PORT"`

	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"APPLICATION_READ_TIMEOUT"  env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"APPLICATION_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"APPLICATION_IDLE_TIMEOUT"  env-default:"60s"`

	// AllowedOrigins enables CORS for browser forms hosted elsewhere.
	AllowedOrigins []string `yaml:"allowed_origins" env:"APPLICATION_ALLOWED_ORIGINS" env-separator:","`
}

// Address is the host:port pair to listen on.
func (a ApplicationSettings) Address() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(int(a.Port)))
}

// Storage drivers understood by DatabaseSettings.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseSettings describes the store connection. For postgres either URL
// or the individual parts must be set; URL wins when both are present.
type DatabaseSettings struct {
	Driver string `yaml:"driver" env:"DATABASE_DRIVER" env-default:"postgres"`

	URL          string `yaml:"url"           env:"DATABASE_URL"`
	Host         string `yaml:"host"          env:"DATABASE_HOST"`
	Port         uint16 `yaml:"port"          env:"DATABASE_PORT"`
	Username     string `yaml:"username"      env:"DATABASE_USERNAME"`
	Password     string `yaml:"password"      env:"DATABASE_PASSWORD"`
	DatabaseName string `yaml:"database_name" env:"DATABASE_NAME"`
	RequireSSL   bool   `yaml:"require_ssl"   env:"DATABASE_REQUIRE_SSL"`

	MaxConnections int32 `yaml:"max_connections" env:"DATABASE_MAX_CONNECTIONS"`

	// Path is the sqlite database file (":memory:" for a throwaway store).
	Path string `yaml:"path" env:"DATABASE_PATH"`
}

// ConnectionString returns a postgres:// URL for pgx.
func (d DatabaseSettings) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}

	sslMode := "prefer"
	if d.RequireSSL {
		sslMode = "require"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(int(d.Port))),
		Path:     "/" + d.DatabaseName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}

// WithDatabase returns the connection string pointed at another database on
// the same server, keeping credentials and query parameters.
func (d DatabaseSettings) WithDatabase(name string) (string, error) {
	u, err := url.Parse(d.ConnectionString())
	if err != nil {
		return "", fmt.Errorf("config.WithDatabase: parse url: %w", err)
	}
	u.Path = "/" + name
	return u.String(), nil
}

// Validate checks the settings that cleanenv cannot express as tags.
func (s *Settings) Validate() error {
	switch s.Database.Driver {
	case DriverPostgres:
		if s.Database.URL == "" && (s.Database.Host == "" || s.Database.DatabaseName == "") {
			return errors.New("database: url or host and database_name are required")
		}
	case DriverSQLite:
		if s.Database.Path == "" {
			return errors.New("database: path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("database: unknown driver %q", s.Database.Driver)
	}
	return nil
}

// Load merges base.yaml, <env>.yaml and the environment into Settings.
// Both files must exist.
func Load(dir string, env Environment) (*Settings, error) {
	var cfg Settings

	// cleanenv.ReadConfig decodes the file over whatever is already in cfg,
	// so the second file only replaces the keys it mentions. Env overrides
	// are re-applied on each call, which leaves them on top at the end.
	for _, name := range []string{"base.yaml", string(env) + ".yaml"} {
		if err := cleanenv.ReadConfig(filepath.Join(dir, name), &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: %s: %w", name, err)
		}
	}

	cfg.Env = env
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// MustLoad reads APP_ENV and the config directory from the process and
// returns the merged settings, exiting the process on any failure.
func MustLoad() *Settings {
	// A local .env file is optional; variables already set take precedence.
	_ = godotenv.Load()

	env, err := ParseEnvironment(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("failed to parse APP_ENV: %s", err)
	}

	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		flags := flag.String("config-dir", "configuration", "Directory holding base.yaml and the environment overlays")
		flag.Parse()
		dir = *flags
	}

	cfg, err := Load(dir, env)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}
