package main

// Notes:
// - Browser discovery depends on the host, so only the ROD_BROWSER_BIN
//   error path is asserted; it never reaches launcher.LookPath.
// - Container and CI detection itself is covered by the hints package;
//   here a Runtime value is passed in directly.

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdark/internal/config"
	"github.com/alnah/go-mdark/internal/hints"
)

// ---------------------------------------------------------------------------
// TestRunDoctor - Status aggregation
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	t.Parallel()

	t.Run("missing configured browser is an error", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Storage.Driver = "memory"
		cfg.Export.OutputDir = t.TempDir()
		rt := hints.Runtime{BrowserBin: filepath.Join(t.TempDir(), "no-chrome")}

		r := runDoctor(cfg, rt)

		if r.Status != statusErrors {
			t.Errorf("Status = %q, want %q", r.Status, statusErrors)
		}
		if r.Browser.Found {
			t.Error("browser should not be found")
		}
		if len(r.Errors) != 1 || !strings.Contains(r.Errors[0], "ROD_BROWSER_BIN") {
			t.Errorf("Errors = %v", r.Errors)
		}
		if !r.Counter.OK || !r.Dirs.OutputWritable {
			t.Errorf("other checks should pass: %+v %+v", r.Counter, r.Dirs)
		}
	})

	t.Run("container without no-sandbox warns", func(t *testing.T) {
		t.Parallel()

		r := &doctorReport{}
		r.checkHost(hints.Runtime{Container: true, ContainerHint: "/.dockerenv"})

		if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0], "ROD_NO_SANDBOX") {
			t.Errorf("Warnings = %v", r.Warnings)
		}
		if !r.Host.Container || r.Host.ContainerHint != "/.dockerenv" {
			t.Errorf("Host = %+v", r.Host)
		}
	})
}

// ---------------------------------------------------------------------------
// TestCheckCounter - Usage counter probe
// ---------------------------------------------------------------------------

func TestCheckCounter(t *testing.T) {
	t.Parallel()

	t.Run("memory store is ready", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Storage.Driver = "memory"
		r := &doctorReport{}
		r.checkCounter(cfg)

		if !r.Counter.OK || r.Counter.Count != 0 {
			t.Errorf("Counter = %+v", r.Counter)
		}
		if len(r.Warnings) != 0 {
			t.Errorf("unexpected warnings: %v", r.Warnings)
		}
	})

	t.Run("unopenable store only warns", func(t *testing.T) {
		t.Parallel()

		blocker := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(blocker, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		cfg := config.DefaultConfig()
		cfg.Storage.Path = filepath.Join(blocker, "count.db")
		r := &doctorReport{}
		r.checkCounter(cfg)

		if r.Counter.OK {
			t.Error("counter should not be OK")
		}
		if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0], "usage counter unavailable") {
			t.Errorf("Warnings = %v", r.Warnings)
		}
		if len(r.Errors) != 0 {
			t.Errorf("a broken counter must not block exports: %v", r.Errors)
		}
	})
}

// ---------------------------------------------------------------------------
// TestCheckDirs - Directory probes
// ---------------------------------------------------------------------------

func TestCheckDirs(t *testing.T) {
	t.Parallel()

	t.Run("writable output dir", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Export.OutputDir = t.TempDir()
		r := &doctorReport{}
		r.checkDirs(cfg)

		if !r.Dirs.OutputWritable || r.Dirs.Output != cfg.Export.OutputDir {
			t.Errorf("Dirs = %+v", r.Dirs)
		}
	})

	t.Run("missing output dir warns", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Export.OutputDir = filepath.Join(t.TempDir(), "later")
		r := &doctorReport{}
		r.checkDirs(cfg)

		if r.Dirs.OutputWritable {
			t.Error("missing dir should not be writable")
		}
		if len(r.Warnings) != 1 {
			t.Errorf("Warnings = %v, want one", r.Warnings)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Command wiring
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	code := runDoctorCmd([]string{"--json", "--storage", "memory"}, env.Environment)

	var r doctorReport
	if err := json.Unmarshal(env.stdout.Bytes(), &r); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, env.stdout)
	}
	if !r.Counter.OK || r.Counter.Driver != "memory" {
		t.Errorf("Counter = %+v", r.Counter)
	}
	switch r.Status {
	case statusReady, statusWarnings:
		if code != ExitSuccess {
			t.Errorf("exit code = %d for status %s", code, r.Status)
		}
	case statusErrors:
		if code != ExitGeneral {
			t.Errorf("exit code = %d for status %s", code, r.Status)
		}
	default:
		t.Errorf("unknown status %q", r.Status)
	}
}

func TestRunDoctorCmd_Usage(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"--nope"}, {"extra"}} {
		env := newTestEnv(t, "")
		if code := runDoctorCmd(args, env.Environment); code != ExitUsage {
			t.Errorf("doctor %v: exit code = %d, want %d", args, code, ExitUsage)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintDoctorReport - Human readable output
// ---------------------------------------------------------------------------

func TestPrintDoctorReport(t *testing.T) {
	t.Parallel()

	r := &doctorReport{
		Status:   statusErrors,
		Browser:  browserCheck{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 120", Sandbox: false},
		Host:     hostCheck{OS: "linux", Arch: "amd64", Container: true, ContainerHint: "/.dockerenv"},
		Dirs:     dirCheck{Temp: "/tmp", TempWritable: false, Output: "out", OutputWritable: true},
		Counter:  counterCheck{Driver: "bolt", OK: true, Count: 7},
		Warnings: []string{"something odd"},
		Errors:   []string{"temp directory /tmp is not writable"},
	}

	var buf bytes.Buffer
	printDoctorReport(&buf, r)
	out := buf.String()

	for _, want := range []string{
		"[OK] found at /usr/bin/chromium",
		"[OK] Chromium 120",
		"sandbox disabled",
		"[OK] container (/.dockerenv)",
		"[ERROR] temp /tmp",
		"[OK] output out",
		"[OK] bolt: 7 PDFs generated",
		"[WARN] something odd",
		"Status: not ready",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
