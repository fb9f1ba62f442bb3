package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// Reference corpus used by crack when --reference is not given
	ReferencePaths []string

	// Worker goroutines for parallel key search (0 = GOMAXPROCS)
	Workers int

	// HTTP API
	ServerPort string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig mirrors the optional YAML config file. Pointer and nil-slice
// fields distinguish "unset" from zero values.
type fileConfig struct {
	References []string `yaml:"references"`
	Workers    *int     `yaml:"workers"`
	ServerPort string   `yaml:"server_port"`
	LogFile    string   `yaml:"log_file"`
	LogLevel   string   `yaml:"log_level"`
}

// Load reads configuration from the YAML file named by SHIFTCRACK_CONFIG
// (default ~/.config/shiftcrack/config.yaml, optional) and then from
// environment variables, which take precedence.
func Load() Config {
	cfg := Config{
		ServerPort: "8585",
		LogFile:    filepath.Join(os.TempDir(), "shiftcrack.log"),
		LogLevel:   slog.LevelInfo,
	}

	path := getEnv("SHIFTCRACK_CONFIG", defaultConfigPath())
	if path != "" {
		fc, err := loadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// optional
		case err != nil:
			slog.Warn("ignoring config file", "file", path, "error", err)
		default:
			fc.apply(&cfg)
		}
	}

	if refs := os.Getenv("SHIFTCRACK_REFERENCE"); refs != "" {
		cfg.ReferencePaths = splitList(refs)
	}
	if w := os.Getenv("SHIFTCRACK_WORKERS"); w != "" {
		if n, err := strconv.Atoi(w); err == nil && n >= 0 {
			cfg.Workers = n
		}
	}
	cfg.ServerPort = getEnv("SHIFTCRACK_SERVER_PORT", cfg.ServerPort)
	cfg.LogFile = getEnv("SHIFTCRACK_LOG_FILE", cfg.LogFile)
	if lvl := os.Getenv("SHIFTCRACK_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = parseLogLevel(lvl)
	}

	return cfg
}

// loadFile parses a YAML config file.
func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

func (fc fileConfig) apply(cfg *Config) {
	if len(fc.References) > 0 {
		cfg.ReferencePaths = fc.References
	}
	if fc.Workers != nil && *fc.Workers >= 0 {
		cfg.Workers = *fc.Workers
	}
	if fc.ServerPort != "" {
		cfg.ServerPort = fc.ServerPort
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = parseLogLevel(fc.LogLevel)
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "shiftcrack", "config.yaml")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// splitList splits a path list on the OS list separator or commas.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == filepath.ListSeparator
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
