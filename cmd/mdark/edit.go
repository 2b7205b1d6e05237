package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-mdark"
)

// runEdit opens the interactive editor, optionally on a markdown file.
func runEdit(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseEditFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: edit takes at most one markdown file", ErrUsage)
	}

	cfg, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	mergeStorageFlags(flags.storage, cfg)
	if err := mergeExportSettings(flags.export, flags.set, cfg); err != nil {
		return err
	}
	if flags.set.Changed("dark-editor") {
		cfg.Editor.DarkMode = flags.darkEditor
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	font, err := resolveFont(cfg)
	if err != nil {
		return err
	}

	source, baseDir := mdark.WelcomeMarkdown, ""
	if len(positional) == 1 {
		source, baseDir, err = readMarkdown(positional[0], env.Stdin)
		if err != nil {
			return err
		}
	}

	log, closeLog, err := newLogger(cfg, flags.common, env, true)
	if err != nil {
		return err
	}
	defer closeLog()

	loader, err := mdark.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return err
	}

	counter, closeCounter := openCounterSoft(cfg, log)
	defer closeCounter()

	exporter := mdark.NewExporter(append(exportOptions(cfg, loader, counter, log), env.exporterOptions()...)...)
	defer func() {
		if cerr := exporter.Close(); cerr != nil {
			log.Warn("closing exporter", zap.Error(cerr))
		}
	}()

	renderer := mdark.NewRenderer(mdark.WithBaseDir(baseDir), mdark.WithRenderLogger(log))
	editor := mdark.NewEditor(ctx,
		mdark.WithRenderer(renderer),
		mdark.WithExporter(exporter),
		mdark.WithUsageCounter(counter),
		mdark.WithSurfaceWidth(surfaceWidth(cfg)),
		mdark.WithEditorLogger(log),
		mdark.WithInitialState(mdark.State{
			Source:     source,
			Font:       font.Name,
			DarkMode:   cfg.Editor.DarkMode,
			ExportDark: cfg.Export.Dark,
		}),
	)

	log.Debug("editor started",
		zap.String("font", font.Name),
		zap.Int("width", surfaceWidth(cfg)),
		zap.Int("usage_count", editor.State().UsageCount))
	return env.RunEditor(ctx, editor)
}
