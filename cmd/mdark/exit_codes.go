package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mdark"
	"github.com/alnah/go-mdark/internal/config"
	"github.com/alnah/go-mdark/internal/logging"
	"github.com/alnah/go-mdark/internal/storage"
)

// Exit codes for the mdark CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, storage
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, mdark.ErrBrowserConnect) ||
		errors.Is(err, mdark.ErrPageCreate) ||
		errors.Is(err, mdark.ErrPageLoad) ||
		errors.Is(err, mdark.ErrRasterize) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, mdark.ErrSave) ||
		errors.Is(err, mdark.ErrCounter) ||
		errors.Is(err, storage.ErrClosed) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, storage.ErrUnknownDriver) ||
		errors.Is(err, mdark.ErrUnknownFont) ||
		errors.Is(err, mdark.ErrInvalidWidth) ||
		errors.Is(err, mdark.ErrInvalidAsset) {
		return ExitUsage
	}

	return ExitGeneral
}
