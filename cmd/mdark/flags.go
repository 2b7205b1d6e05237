package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdark/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// storageFlags selects the usage counter store.
type storageFlags struct {
	driver string
	path   string
}

// exportSettingsFlags holds the flags that shape an export.
type exportSettingsFlags struct {
	outputDir string
	dark      bool
	font      string
	width     int
	timeout   string
	assetPath string
}

// editFlags holds all flags for the edit command.
type editFlags struct {
	common     commonFlags
	storage    storageFlags
	export     exportSettingsFlags
	darkEditor bool
	set        *flag.FlagSet
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common  commonFlags
	storage storageFlags
	export  exportSettingsFlags
	set     *flag.FlagSet
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common     commonFlags
	export     exportSettingsFlags
	output     string
	standalone bool
	set        *flag.FlagSet
}

// storeCmdFlags holds flags for commands that only need settings and storage.
type storeCmdFlags struct {
	common  commonFlags
	storage storageFlags
	json    bool
	set     *flag.FlagSet
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug details to stderr")
}

// addStorageFlags adds usage counter storage flags to a FlagSet.
func addStorageFlags(fs *flag.FlagSet, f *storageFlags) {
	fs.StringVar(&f.driver, "storage", "", "counter storage: bolt, sqlite, memory")
	fs.StringVar(&f.path, "storage-path", "", "counter storage file")
}

// addExportSettingsFlags adds export shaping flags to a FlagSet.
func addExportSettingsFlags(fs *flag.FlagSet, f *exportSettingsFlags) {
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "directory for markdown-document.pdf")
	fs.BoolVar(&f.dark, "dark", false, "export white on black")
	fs.StringVarP(&f.font, "font", "f", "", "font option name (see 'mdark fonts')")
	fs.IntVarP(&f.width, "width", "w", 0, "capture width in CSS pixels")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "browser wait limit (e.g. 30s, 2m; 0 = none)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding built-in assets")
}

// newFlagSet creates a FlagSet whose usage and errors go to w.
func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { printCommandUsage(w, name) }
	return fs
}

// parseArgs parses args and tags failures as usage errors.
func parseArgs(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseEditFlags parses edit command flags and returns positional args.
func parseEditFlags(args []string, w io.Writer) (*editFlags, []string, error) {
	fs := newFlagSet("edit", w)
	f := &editFlags{set: fs}
	addCommonFlags(fs, &f.common)
	addStorageFlags(fs, &f.storage)
	addExportSettingsFlags(fs, &f.export)
	fs.BoolVar(&f.darkEditor, "dark-editor", false, "start the editor in dark mode")

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string, w io.Writer) (*exportFlags, []string, error) {
	fs := newFlagSet("export", w)
	f := &exportFlags{set: fs}
	addCommonFlags(fs, &f.common)
	addStorageFlags(fs, &f.storage)
	addExportSettingsFlags(fs, &f.export)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	fs := newFlagSet("render", w)
	f := &renderFlags{set: fs}
	addCommonFlags(fs, &f.common)
	addExportSettingsFlags(fs, &f.export)
	fs.StringVar(&f.output, "output", "", "write HTML to this file instead of stdout")
	fs.BoolVar(&f.standalone, "standalone", false, "emit the styled export page instead of the preview fragment")

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseStoreCmdFlags parses flags for count, config and doctor.
func parseStoreCmdFlags(name string, args []string, w io.Writer) (*storeCmdFlags, []string, error) {
	fs := newFlagSet(name, w)
	f := &storeCmdFlags{set: fs}
	addCommonFlags(fs, &f.common)
	addStorageFlags(fs, &f.storage)
	if name == "doctor" {
		fs.BoolVar(&f.json, "json", false, "print results as JSON")
	}

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// mergeCommonFlags applies common flags to cfg.
func mergeCommonFlags(f commonFlags, cfg *config.Config) {
	if f.verbose {
		cfg.Log.Level = "debug"
	}
}

// mergeStorageFlags applies storage flags to cfg.
func mergeStorageFlags(f storageFlags, cfg *config.Config) {
	if f.driver != "" {
		cfg.Storage.Driver = f.driver
	}
	if f.path != "" {
		cfg.Storage.Path = f.path
	}
}

// mergeExportSettings applies export flags to cfg. Booleans and numbers
// count only when given explicitly, so a file value of true survives a
// run without --dark.
func mergeExportSettings(f exportSettingsFlags, fs *flag.FlagSet, cfg *config.Config) error {
	if f.outputDir != "" {
		cfg.Export.OutputDir = f.outputDir
	}
	if fs.Changed("dark") {
		cfg.Export.Dark = f.dark
	}
	if f.font != "" {
		cfg.Editor.Font = f.font
	}
	if fs.Changed("width") {
		cfg.Export.Width = f.width
	}
	if f.timeout != "" {
		d, err := parseTimeout(f.timeout)
		if err != nil {
			return err
		}
		cfg.Export.Timeout = d
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	return nil
}
