package main

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdark"
	"github.com/alnah/go-mdark/internal/yamlutil"
)

// runCount prints how many PDFs have been generated.
func runCount(args []string, env *Environment) error {
	flags, positional, err := parseStoreCmdFlags("count", args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: count takes no arguments", ErrUsage)
	}

	cfg, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	mergeStorageFlags(flags.storage, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	counter, closeCounter, err := openCounter(cfg)
	if err != nil {
		return err
	}
	defer closeCounter()

	n, err := counter.Load()
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, n)
	return nil
}

// runFonts lists the font options with their CSS families.
func runFonts(args []string, env *Environment) error {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		printCommandUsage(env.Stdout, "fonts")
		return nil
	}
	if len(args) > 0 {
		return fmt.Errorf("%w: fonts takes no arguments", ErrUsage)
	}

	width := 0
	for _, f := range mdark.FontOptions() {
		width = max(width, len(f.Name))
	}
	for _, f := range mdark.FontOptions() {
		marker := " "
		if f.Name == mdark.DefaultFont.Name {
			marker = "*"
		}
		fmt.Fprintf(env.Stdout, "%s %-*s  %s\n", marker, width, f.Name, f.Family)
	}
	return nil
}

// runConfig prints the effective configuration as YAML.
func runConfig(args []string, env *Environment) error {
	flags, positional, err := parseStoreCmdFlags("config", args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: config takes no arguments", ErrUsage)
	}

	cfg, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	mergeStorageFlags(flags.storage, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	s := string(out)
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err = fmt.Fprint(env.Stdout, s)
	return err
}
