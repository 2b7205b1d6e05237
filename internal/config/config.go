package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-mdark/internal/fileutil"
	"github.com/alnah/go-mdark/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxFontLength   = 50   // "Open Sans"
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxDriverLength = 10   // "sqlite"
	MaxLevelLength  = 10   // "debug"
)

// Export width bounds in CSS pixels.
const (
	MinExportWidth     = 200
	MaxExportWidth     = 4000
	DefaultExportWidth = 800
)

// appDirName is the directory under os.UserConfigDir holding config and data.
const appDirName = "mdark"

// Config holds all configuration for the editor and the exporter.
type Config struct {
	Editor  EditorConfig  `yaml:"editor"`
	Export  ExportConfig  `yaml:"export"`
	Storage StorageConfig `yaml:"storage"`
	Assets  AssetsConfig  `yaml:"assets"`
	Log     LogConfig     `yaml:"log"`
}

// EditorConfig defines the initial editor state.
type EditorConfig struct {
	Font     string `yaml:"font"`     // Font option name, e.g. "Inter" (default: "Sans-serif")
	DarkMode bool   `yaml:"darkMode"` // Terminal preview theme
}

// ExportConfig defines PDF export options.
type ExportConfig struct {
	Dark      bool          `yaml:"dark"`      // White on black instead of black on white
	OutputDir string        `yaml:"outputDir"` // Empty = current directory
	Width     int           `yaml:"width"`     // Capture width in CSS pixels (default: 800)
	Timeout   time.Duration `yaml:"timeout"`   // Zero = wait for the browser indefinitely
}

// StorageConfig defines where the usage counter lives.
type StorageConfig struct {
	Driver string `yaml:"driver"` // "bolt", "sqlite" or "memory" (default: "bolt")
	Path   string `yaml:"path"`   // Empty = per-user config dir
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig defines diagnostics output.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error" (default: "warn")
	File  string `yaml:"file"`  // Empty = stderr for commands, discarded in the editor
}

// Validate checks enums, bounds and field lengths. LoadConfig calls it.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"editor.font", c.Editor.Font, MaxFontLength},
		{"export.outputDir", c.Export.OutputDir, MaxPathLength},
		{"storage.driver", c.Storage.Driver, MaxDriverLength},
		{"storage.path", c.Storage.Path, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"log.level", c.Log.Level, MaxLevelLength},
		{"log.file", c.Log.File, MaxPathLength},
	} {
		if len(f.value) > f.max {
			return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, f.name, len(f.value), f.max)
		}
	}

	if w := c.Export.Width; w != 0 && (w < MinExportWidth || w > MaxExportWidth) {
		return fmt.Errorf("%w: export.width must be between %d and %d, got %d",
			ErrInvalidValue, MinExportWidth, MaxExportWidth, w)
	}
	if c.Export.Timeout < 0 {
		return fmt.Errorf("%w: export.timeout must not be negative, got %s", ErrInvalidValue, c.Export.Timeout)
	}
	if err := oneOf("storage.driver", c.Storage.Driver, "bolt", "sqlite", "memory"); err != nil {
		return err
	}
	return oneOf("log.level", c.Log.Level, "debug", "info", "warn", "error")
}

// oneOf accepts an empty value or a case-insensitive member of allowed.
func oneOf(field, value string, allowed ...string) error {
	if value == "" || slices.Contains(allowed, strings.ToLower(value)) {
		return nil
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, field, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Editor:  EditorConfig{Font: "Sans-serif"},
		Export:  ExportConfig{Width: DefaultExportWidth},
		Storage: StorageConfig{Driver: "bolt"},
		Log:     LogConfig{Level: "warn"},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. nameOrPath is used as is
// when it contains a path separator; otherwise it is a name looked up as
// name.yaml or name.yml in the working directory, then in UserDir.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !isFilePath(path) {
		var err error
		if path, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UserDir returns the per-user directory for mdark config and data.
func UserDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

func isFilePath(s string) bool {
	return fileutil.IsFilePath(s)
}

func resolveConfigPath(name string) (string, error) {
	dirs := []string{""}
	if userDir, err := UserDir(); err == nil {
		dirs = append(dirs, userDir)
	}

	var tried []string
	for _, dir := range dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			candidate := filepath.Join(dir, name+ext)
			if fileutil.FileExists(candidate) {
				return candidate, nil
			}
			tried = append(tried, candidate)
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
