package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mdark"
	"github.com/alnah/go-mdark/internal/config"
	"github.com/alnah/go-mdark/internal/fileutil"
	"github.com/alnah/go-mdark/internal/hints"
	"github.com/alnah/go-mdark/internal/logging"
	"github.com/alnah/go-mdark/internal/storage"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
)

// stdinName is the file argument that reads markdown from standard input.
const stdinName = "-"

// loadSettings builds the effective configuration from defaults, the config
// file and the environment. Commands apply their flags on top and then call
// cfg.Validate.
func loadSettings(common commonFlags, env *Environment) (*config.Config, error) {
	ev, err := loadEnvConfig()
	if err != nil {
		return nil, err
	}
	if !common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	name := common.config
	if name == "" {
		name = ev.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configCandidates(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(ev, cfg)
	mergeCommonFlags(common, cfg)
	return cfg, nil
}

// configCandidates lists the per-user paths searched for a config name.
func configCandidates(name string) []string {
	dir, err := config.UserDir()
	if err != nil || fileutil.IsFilePath(name) {
		return nil
	}
	return []string{filepath.Join(dir, name+".yaml"), filepath.Join(dir, name+".yml")}
}

// newLogger builds the command logger. The interactive editor owns the
// terminal, so it only logs when a log file is configured.
func newLogger(cfg *config.Config, common commonFlags, env *Environment, interactive bool) (*zap.Logger, func(), error) {
	quiet := common.quiet && !common.verbose
	if interactive && cfg.Log.File == "" {
		quiet = true
	}
	return logging.New(logging.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		Quiet: quiet,
		Out:   env.Stderr,
	})
}

// openCounter opens the usage counter store named by cfg.
func openCounter(cfg *config.Config) (*mdark.UsageCounter, func(), error) {
	driver := strings.ToLower(cfg.Storage.Driver)
	path := cfg.Storage.Path
	if path == "" && driver != storage.DriverMemory {
		var err error
		path, err = storage.DefaultPath(driver)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", mdark.ErrCounter, err)
		}
	}

	store, err := storage.Open(driver, path)
	if err != nil {
		if errors.Is(err, storage.ErrUnknownDriver) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v%s", mdark.ErrCounter, err, hints.ForStorage(path))
	}
	return mdark.NewUsageCounter(store), func() { _ = store.Close() }, nil
}

// openCounterSoft opens the counter but degrades to no counting on failure.
// The export itself never depends on the counter.
func openCounterSoft(cfg *config.Config, log *zap.Logger) (*mdark.UsageCounter, func()) {
	counter, closeFn, err := openCounter(cfg)
	if err != nil {
		log.Warn("usage counter disabled", zap.Error(err))
		return nil, func() {}
	}
	return counter, closeFn
}

// resolveFont looks up the configured font option.
func resolveFont(cfg *config.Config) (mdark.FontOption, error) {
	font, err := mdark.LookupFont(cfg.Editor.Font)
	if err != nil {
		return mdark.FontOption{}, fmt.Errorf("%w%s", err, hints.ForUnknownFont(mdark.FontNames()))
	}
	return font, nil
}

// surfaceWidth returns the configured capture width, defaulting when unset.
func surfaceWidth(cfg *config.Config) int {
	if cfg.Export.Width > 0 {
		return cfg.Export.Width
	}
	return mdark.DefaultSurfaceWidth
}

// exportOptions translates cfg into exporter options.
func exportOptions(cfg *config.Config, loader mdark.AssetLoader, counter *mdark.UsageCounter, log *zap.Logger) []mdark.ExportOption {
	opts := []mdark.ExportOption{
		mdark.WithOutputDir(cfg.Export.OutputDir),
		mdark.WithTimeout(cfg.Export.Timeout),
		mdark.WithAssetLoader(loader),
		mdark.WithLogger(log),
	}
	if counter != nil {
		opts = append(opts, mdark.WithCounter(counter))
	}
	return opts
}

// readMarkdown reads a markdown file, or stdin for "-". It returns the
// source and the directory relative image paths resolve against.
func readMarkdown(name string, stdin io.Reader) (string, string, error) {
	if name == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
		}
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		return string(data), wd, nil
	}

	if err := validateMarkdownExtension(name); err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(name) // #nosec G304 -- user-provided input path
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	dir, err := filepath.Abs(filepath.Dir(name))
	if err != nil {
		dir = filepath.Dir(name)
	}
	return string(data), dir, nil
}

// validateMarkdownExtension checks that path has a markdown extension.
func validateMarkdownExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}
