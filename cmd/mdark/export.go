package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdark"
	"github.com/alnah/go-mdark/internal/hints"
)

// runExport renders one markdown file and saves it as a single-page PDF.
func runExport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: export needs exactly one markdown file (or - for stdin)", ErrUsage)
	}

	cfg, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	mergeStorageFlags(flags.storage, cfg)
	if err := mergeExportSettings(flags.export, flags.set, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	font, err := resolveFont(cfg)
	if err != nil {
		return err
	}

	source, baseDir, err := readMarkdown(positional[0], env.Stdin)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg, flags.common, env, false)
	if err != nil {
		return err
	}
	defer closeLog()

	loader, err := mdark.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return err
	}

	start := env.Now()
	tree, err := mdark.NewRenderer(mdark.WithBaseDir(baseDir), mdark.WithRenderLogger(log)).Render(ctx, source)
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

	surface := &mdark.Surface{Tree: tree, Width: surfaceWidth(cfg), Font: font}
	art, err := exporter.Export(ctx, surface, mdark.ResolveOverrides(cfg.Export.Dark))
	if err != nil {
		return exportError(err, cfg.Export.Timeout)
	}

	if art.CounterErr != nil && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "warning: usage count not updated: %v\n", art.CounterErr)
	}
	if !flags.common.quiet {
		printArtifact(env, art, env.Now().Sub(start), flags.common.verbose)
	}
	return nil
}

// exportError appends the hint matching err.
func exportError(err error, timeout time.Duration) error {
	switch {
	case errors.Is(err, mdark.ErrBrowserConnect),
		errors.Is(err, mdark.ErrPageCreate),
		errors.Is(err, mdark.ErrPageLoad):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect(hints.Detect(os.Getenv)))
	case errors.Is(err, mdark.ErrSave):
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	case timeout > 0 && errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}

func printArtifact(env *Environment, art *mdark.Artifact, elapsed time.Duration, verbose bool) {
	fmt.Fprintln(env.Stdout, art.Path)
	if !verbose {
		return
	}
	fmt.Fprintf(env.Stderr, "  id:      %s\n", art.ID)
	fmt.Fprintf(env.Stderr, "  size:    %d bytes\n", art.Size)
	fmt.Fprintf(env.Stderr, "  raster:  %dx%d px\n", art.RasterWidth, art.RasterHeight)
	fmt.Fprintf(env.Stderr, "  page:    %.1fx%.1f mm at x=%.1f (scale %.3f)\n",
		art.Placement.Width, art.Placement.Height, art.Placement.X, art.Placement.Ratio)
	fmt.Fprintf(env.Stderr, "  count:   %d\n", art.UsageCount)
	fmt.Fprintf(env.Stderr, "  elapsed: %s\n", elapsed.Round(time.Millisecond))
}
