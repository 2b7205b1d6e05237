package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mdark"
	"github.com/alnah/go-mdark/internal/config"
	"github.com/alnah/go-mdark/internal/fileutil"
)

// htmlPermissions is the mode of HTML files written by render.
const htmlPermissions = 0o644

// runRender prints the preview HTML of a markdown file. With --standalone
// it prints the restyled export page instead, without launching a browser.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: render needs exactly one markdown file (or - for stdin)", ErrUsage)
	}

	cfg, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	if err := mergeExportSettings(flags.export, flags.set, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
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

	tree, err := mdark.NewRenderer(mdark.WithBaseDir(baseDir), mdark.WithRenderLogger(log)).Render(ctx, source)
	if err != nil {
		return err
	}

	var out string
	if flags.standalone {
		out, err = standalonePage(cfg, tree, log)
	} else {
		out, err = tree.HTML()
	}
	if err != nil {
		return err
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	if flags.output == "" {
		_, err = fmt.Fprint(env.Stdout, out)
		return err
	}
	if err := fileutil.WriteFileAtomic(flags.output, []byte(out), htmlPermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintln(env.Stderr, flags.output)
	}
	return nil
}

// standalonePage lays tree out the way an export would and returns the page
// the rasterizer loads, with the restyled tree inlined.
func standalonePage(cfg *config.Config, tree *mdark.RenderTree, log *zap.Logger) (string, error) {
	font, err := resolveFont(cfg)
	if err != nil {
		return "", err
	}
	loader, err := mdark.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return "", err
	}

	exporter := mdark.NewExporter(mdark.WithAssetLoader(loader), mdark.WithLogger(log))
	defer func() { _ = exporter.Close() }()

	surface := &mdark.Surface{Tree: tree, Width: surfaceWidth(cfg), Font: font}
	return exporter.StandaloneHTML(surface, mdark.ResolveOverrides(cfg.Export.Dark))
}
