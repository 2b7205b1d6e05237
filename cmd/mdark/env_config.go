package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdark/internal/config"
)

// envConfig holds configuration from environment variables.
// Empty fields and nil pointers mean the variable is unset.
type envConfig struct {
	ConfigPath  string         // MDARK_CONFIG: config file name or path
	OutputDir   string         // MDARK_OUTPUT_DIR: where exports are saved
	Timeout     *time.Duration // MDARK_TIMEOUT: browser wait limit
	ExportDark  *bool          // MDARK_EXPORT_DARK: dark PDF profile
	DarkMode    *bool          // MDARK_DARK_MODE: dark editor theme
	Font        string         // MDARK_FONT: font option name
	Width       int            // MDARK_WIDTH: capture width in CSS pixels
	Storage     string         // MDARK_STORAGE: bolt, sqlite, memory
	StoragePath string         // MDARK_STORAGE_PATH: counter store file
	AssetPath   string         // MDARK_ASSET_PATH: asset override directory
	LogLevel    string         // MDARK_LOG_LEVEL: debug, info, warn, error
	LogFile     string         // MDARK_LOG_FILE: append logs to this file
}

// knownEnvVars lists valid MDARK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDARK_CONFIG":       true,
	"MDARK_OUTPUT_DIR":   true,
	"MDARK_TIMEOUT":      true,
	"MDARK_EXPORT_DARK":  true,
	"MDARK_DARK_MODE":    true,
	"MDARK_FONT":         true,
	"MDARK_WIDTH":        true,
	"MDARK_STORAGE":      true,
	"MDARK_STORAGE_PATH": true,
	"MDARK_ASSET_PATH":   true,
	"MDARK_LOG_LEVEL":    true,
	"MDARK_LOG_FILE":     true,
	"MDARK_CONTAINER":    true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers, booleans and durations are usage errors.
func loadEnvConfig() (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("MDARK_CONFIG"),
		OutputDir:   os.Getenv("MDARK_OUTPUT_DIR"),
		Font:        os.Getenv("MDARK_FONT"),
		Storage:     os.Getenv("MDARK_STORAGE"),
		StoragePath: os.Getenv("MDARK_STORAGE_PATH"),
		AssetPath:   os.Getenv("MDARK_ASSET_PATH"),
		LogLevel:    os.Getenv("MDARK_LOG_LEVEL"),
		LogFile:     os.Getenv("MDARK_LOG_FILE"),
	}

	if v := os.Getenv("MDARK_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return nil, fmt.Errorf("MDARK_TIMEOUT: %w", err)
		}
		cfg.Timeout = &d
	}

	if v := os.Getenv("MDARK_WIDTH"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil || w <= 0 {
			return nil, fmt.Errorf("%w: MDARK_WIDTH=%q is not a positive integer", config.ErrInvalidValue, v)
		}
		cfg.Width = w
	}

	var err error
	if cfg.ExportDark, err = envBool("MDARK_EXPORT_DARK"); err != nil {
		return nil, err
	}
	if cfg.DarkMode, err = envBool("MDARK_DARK_MODE"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envBool(name string) (*bool, error) {
	v := os.Getenv(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q is not a boolean", config.ErrInvalidValue, name, v)
	}
	return &b, nil
}

// parseTimeout parses a Go duration. Zero disables the limit.
func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", config.ErrInvalidValue, s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: timeout must not be negative, got %s", config.ErrInvalidValue, s)
	}
	return d, nil
}

// warnUnknownEnvVars logs warnings for unrecognized MDARK_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDARK_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays set environment variables onto cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Export.OutputDir = env.OutputDir
	}
	if env.Timeout != nil {
		cfg.Export.Timeout = *env.Timeout
	}
	if env.ExportDark != nil {
		cfg.Export.Dark = *env.ExportDark
	}
	if env.DarkMode != nil {
		cfg.Editor.DarkMode = *env.DarkMode
	}
	if env.Font != "" {
		cfg.Editor.Font = env.Font
	}
	if env.Width > 0 {
		cfg.Export.Width = env.Width
	}
	if env.Storage != "" {
		cfg.Storage.Driver = env.Storage
	}
	if env.StoragePath != "" {
		cfg.Storage.Path = env.StoragePath
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFile != "" {
		cfg.Log.File = env.LogFile
	}
}
