package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-mdark"
	"github.com/alnah/go-mdark/internal/tui"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Stage replaces the headless browser when set.
	Stage mdark.Stage
	// RunEditor runs the interactive editor until the user quits.
	RunEditor func(ctx context.Context, ed *mdark.Editor) error
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		RunEditor: tui.Run,
	}
}

// exporterOptions returns the options every command passes to NewExporter.
func (env *Environment) exporterOptions() []mdark.ExportOption {
	if env.Stage == nil {
		return nil
	}
	return []mdark.ExportOption{mdark.WithStage(env.Stage)}
}
