package main

// Notes:
// - exitCodeFor: we test the sentinels of every package the CLI reports,
//   plus wrapped errors so the errors.Is chain is exercised.
// - Exit code constants: Unix conventions and custom codes below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-mdark"
	"github.com/alnah/go-mdark/internal/config"
	"github.com/alnah/go-mdark/internal/logging"
	"github.com/alnah/go-mdark/internal/storage"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", mdark.ErrBrowserConnect, ExitBrowser},
		{"page create", mdark.ErrPageCreate, ExitBrowser},
		{"page load", mdark.ErrPageLoad, ExitBrowser},
		{"rasterize", mdark.ErrRasterize, ExitBrowser},
		{"wrapped page load", fmt.Errorf("export: %w", mdark.ErrPageLoad), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"save", mdark.ErrSave, ExitIO},
		{"counter", mdark.ErrCounter, ExitIO},
		{"store closed", storage.ErrClosed, ExitIO},
		{"wrapped read markdown", fmt.Errorf("%w: %w", ErrReadMarkdown, os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"log level", logging.ErrInvalidLevel, ExitUsage},
		{"unknown driver", storage.ErrUnknownDriver, ExitUsage},
		{"unknown font", mdark.ErrUnknownFont, ExitUsage},
		{"invalid width", mdark.ErrInvalidWidth, ExitUsage},
		{"invalid asset", mdark.ErrInvalidAsset, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// Everything else (exit 1)
		{"assemble", mdark.ErrAssemble, ExitGeneral},
		{"export in flight", mdark.ErrExportInFlight, ExitGeneral},
		{"unknown error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom exit code %d must be in (2, 126)", code)
		}
	}
}
