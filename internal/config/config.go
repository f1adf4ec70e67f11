package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendJSONFile = "jsonfile"
	BackendSQLite   = "sqlite"
)

// Transport modes.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Store     StoreConfig     `yaml:"store" toml:"store"`
	Log       LogConfig       `yaml:"log" toml:"log"`
	Auth      AuthConfig      `yaml:"auth" toml:"auth"`
	Transport TransportConfig `yaml:"transport" toml:"transport"`
	CORS      CORSConfig      `yaml:"cors" toml:"cors"`
}

type ServerConfig struct {
	Host string `yaml:"host" toml:"host"`
	Port int    `yaml:"port" toml:"port"`
}

type StoreConfig struct {
	Backend string `yaml:"backend" toml:"backend"`
	// DataDir holds projects.json and downloads.json for the jsonfile backend.
	DataDir string `yaml:"dataDir" toml:"dataDir"`
	DBPath  string `yaml:"dbPath" toml:"dbPath"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	Path  string `yaml:"path" toml:"path"`
}

type AuthConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Username string `yaml:"username" toml:"username"`
	Password string `yaml:"password" toml:"password"`
}

type TransportConfig struct {
	Mode string `yaml:"mode" toml:"mode"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins" toml:"allowedOrigins"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3001,
		},
		Store: StoreConfig{
			Backend: BackendJSONFile,
			DataDir: "data",
			DBPath:  "stageboard.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			Username: "admin",
			Password: "password",
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads configuration from an optional YAML or TOML file and environment variables.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("STAGEBOARD_CONFIG_PATH"))
}

// LoadFrom is Load with an explicit config file path. An empty path skips the file.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("STAGEBOARD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("STAGEBOARD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid STAGEBOARD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if backend := os.Getenv("STAGEBOARD_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if dir := os.Getenv("STAGEBOARD_DATA_DIR"); dir != "" {
		cfg.Store.DataDir = dir
	}
	if dbPath := os.Getenv("STAGEBOARD_DB_PATH"); dbPath != "" {
		cfg.Store.DBPath = dbPath
	}
	if level := os.Getenv("STAGEBOARD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("STAGEBOARD_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if enabled := os.Getenv("STAGEBOARD_AUTH_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid STAGEBOARD_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = v
	}
	if user := os.Getenv("STAGEBOARD_ADMIN_USER"); user != "" {
		cfg.Auth.Username = user
	}
	if pass := os.Getenv("STAGEBOARD_ADMIN_PASSWORD"); pass != "" {
		cfg.Auth.Password = pass
	}
	if mode := os.Getenv("STAGEBOARD_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if origins := os.Getenv("STAGEBOARD_CORS_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = splitList(origins)
	}
	return nil
}

// Validate reports settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port %d out of range", c.Server.Port))
	}
	switch c.Store.Backend {
	case BackendJSONFile:
		if c.Store.DataDir == "" {
			errs = append(errs, errors.New("store dataDir is required for the jsonfile backend"))
		}
	case BackendSQLite:
		if c.Store.DBPath == "" {
			errs = append(errs, errors.New("store dbPath is required for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}
	switch c.Transport.Mode {
	case TransportHTTP, TransportStdio:
	default:
		errs = append(errs, fmt.Errorf("unknown transport mode %q", c.Transport.Mode))
	}
	if c.Auth.Enabled && (c.Auth.Username == "" || c.Auth.Password == "") {
		errs = append(errs, errors.New("auth requires a username and password"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
