// Package config loads application configuration from an optional YAML file
// and environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	GitHubToken    string
	CheckInterval  time.Duration
	ListenAddr     string
	DBPath         string
	ApprovalMarker string
	LogLevel       string
	LogFile        string
	DesktopNotify  bool
	SecretKey      []byte // 32-byte AES key; nil disables stored credentials.
}

// HasGitHubToken returns true when a token was configured. Without one the
// app starts but checks stay on the missing-credential path until a token is
// stored through the API.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// fileConfig mirrors Config in the YAML file named by PRCELEBRATION_CONFIG.
type fileConfig struct {
	GitHubToken          string `yaml:"github_token"`
	CheckIntervalSeconds int    `yaml:"check_interval_seconds"`
	ListenAddr           string `yaml:"listen_addr"`
	DBPath               string `yaml:"db_path"`
	ApprovalMarker       string `yaml:"approval_marker"`
	LogLevel             string `yaml:"log_level"`
	LogFile              string `yaml:"log_file"`
	DesktopNotify        *bool  `yaml:"desktop_notify"`
	SecretKey            string `yaml:"secret_key"`
}

// MaxCheckIntervalSeconds bounds the check interval at one day.
const MaxCheckIntervalSeconds = 24 * 60 * 60

// Load reads configuration and returns a validated Config. Values come from
// defaults, then the YAML file named by PRCELEBRATION_CONFIG (if set), then
// PRCELEBRATION_* environment variables. PRCELEBRATION_GITHUB_TOKEN is
// optional. Defaults: check interval 60s, listen address 127.0.0.1:8080,
// database prcelebration.db, approval marker "@robodoo r+", log level info,
// desktop notifications on.
func Load() (*Config, error) {
	fc := fileConfig{
		CheckIntervalSeconds: 60,
		ListenAddr:           "127.0.0.1:8080",
		DBPath:               "prcelebration.db",
		ApprovalMarker:       "@robodoo r+",
		LogLevel:             "info",
	}
	desktopNotify := true

	if path, ok := os.LookupEnv("PRCELEBRATION_CONFIG"); ok && path != "" {
		if err := loadFile(path, &fc); err != nil {
			return nil, err
		}
		if fc.DesktopNotify != nil {
			desktopNotify = *fc.DesktopNotify
		}
	}

	if v, ok := os.LookupEnv("PRCELEBRATION_GITHUB_TOKEN"); ok {
		fc.GitHubToken = v
	}

	if v, ok := os.LookupEnv("PRCELEBRATION_CHECK_INTERVAL_SECONDS"); ok {
		seconds, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("PRCELEBRATION_CHECK_INTERVAL_SECONDS has invalid value %q: %w", v, err)
		}
		fc.CheckIntervalSeconds = seconds
	}
	if fc.CheckIntervalSeconds <= 0 || fc.CheckIntervalSeconds > MaxCheckIntervalSeconds {
		return nil, fmt.Errorf("check interval must be between 1 and %d seconds, got %d",
			MaxCheckIntervalSeconds, fc.CheckIntervalSeconds)
	}

	if v, ok := os.LookupEnv("PRCELEBRATION_LISTEN_ADDR"); ok {
		fc.ListenAddr = v
	}

	if v, ok := os.LookupEnv("PRCELEBRATION_DB_PATH"); ok {
		fc.DBPath = v
	}

	if v, ok := os.LookupEnv("PRCELEBRATION_APPROVAL_MARKER"); ok {
		fc.ApprovalMarker = v
	}
	if strings.TrimSpace(fc.ApprovalMarker) == "" {
		return nil, fmt.Errorf("approval marker must not be empty")
	}

	if v, ok := os.LookupEnv("PRCELEBRATION_LOG_LEVEL"); ok {
		fc.LogLevel = v
	}
	fc.LogLevel = strings.ToLower(strings.TrimSpace(fc.LogLevel))
	switch fc.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q (debug|info|warn|error)", fc.LogLevel)
	}

	if v, ok := os.LookupEnv("PRCELEBRATION_LOG_FILE"); ok {
		fc.LogFile = v
	}

	if v, ok := os.LookupEnv("PRCELEBRATION_DESKTOP_NOTIFY"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PRCELEBRATION_DESKTOP_NOTIFY has invalid value %q: %w", v, err)
		}
		desktopNotify = parsed
	}

	if v, ok := os.LookupEnv("PRCELEBRATION_SECRET_KEY"); ok {
		fc.SecretKey = v
	}
	var secretKey []byte
	if fc.SecretKey != "" {
		decoded, err := hex.DecodeString(fc.SecretKey)
		if err != nil {
			return nil, fmt.Errorf("PRCELEBRATION_SECRET_KEY must be hex encoded: %w", err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("PRCELEBRATION_SECRET_KEY must be 32 bytes (64 hex chars), got %d bytes", len(decoded))
		}
		secretKey = decoded
	}

	return &Config{
		GitHubToken:    fc.GitHubToken,
		CheckInterval:  time.Duration(fc.CheckIntervalSeconds) * time.Second,
		ListenAddr:     fc.ListenAddr,
		DBPath:         fc.DBPath,
		ApprovalMarker: fc.ApprovalMarker,
		LogLevel:       fc.LogLevel,
		LogFile:        fc.LogFile,
		DesktopNotify:  desktopNotify,
		SecretKey:      secretKey,
	}, nil
}

func loadFile(path string, fc *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
