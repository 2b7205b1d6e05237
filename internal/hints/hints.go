// Package hints appends one actionable line to an error message, always in
// the form "\n  hint: <text>".
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdark/internal/fileutil"
)

// Getenv reads one environment variable; os.Getenv satisfies it.
type Getenv func(string) string

// Runtime is what the browser hints need to know about the host.
type Runtime struct {
	CI            bool
	Container     bool
	ContainerHint string // which signal detected the container
	NoSandbox     bool   // ROD_NO_SANDBOX=1
	BrowserBin    string // ROD_BROWSER_BIN
}

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// dockerenv is the marker file Docker creates in every container.
var dockerenv = "/.dockerenv"

// Detect reads the host runtime through getenv.
func Detect(getenv Getenv) Runtime {
	rt := Runtime{
		NoSandbox:  getenv("ROD_NO_SANDBOX") == "1",
		BrowserBin: getenv("ROD_BROWSER_BIN"),
	}
	for _, v := range ciVars {
		if getenv(v) != "" {
			rt.CI = true
			break
		}
	}

	// Variables name the runtime more precisely than the Docker marker, so
	// they are read first.
	switch {
	case getenv("MDARK_CONTAINER") == "1":
		rt.ContainerHint = "MDARK_CONTAINER=1"
	case getenv("container") != "":
		rt.ContainerHint = "container=" + getenv("container")
	case getenv("KUBERNETES_SERVICE_HOST") != "":
		rt.ContainerHint = "KUBERNETES_SERVICE_HOST"
	case fileutil.FileExists(dockerenv):
		rt.ContainerHint = dockerenv
	}
	rt.Container = rt.ContainerHint != ""
	return rt
}

// NeedsNoSandbox reports whether Chrome will likely refuse to start
// sandboxed on this host.
func (rt Runtime) NeedsNoSandbox() bool {
	return (rt.CI || rt.Container) && !rt.NoSandbox
}

// ForBrowserConnect suggests the rod variables that usually fix a browser
// that will not start.
func ForBrowserConnect(rt Runtime) string {
	var parts []string
	if rt.NeedsNoSandbox() {
		parts = append(parts, "set ROD_NO_SANDBOX=1 inside containers and CI")
	}
	if rt.BrowserBin == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to an installed Chrome")
	}
	if len(parts) > 0 {
		parts = append(parts, "run 'mdark doctor' for details")
	}
	return line(parts...)
}

// ForTimeout explains the browser wait limit.
func ForTimeout() string {
	return line("raise --timeout or export.timeout; 0 waits indefinitely")
}

// ForConfigNotFound points at --config and at the first per-user path
// that was searched.
func ForConfigNotFound(searched []string) string {
	for _, p := range searched {
		if strings.Contains(filepath.ToSlash(p), "/mdark/") {
			return line("use --config /path/to/file.yaml or create " + p)
		}
	}
	return line("use --config /path/to/file.yaml")
}

// ForOutputDirectory is appended when a finished document cannot be saved.
func ForOutputDirectory() string {
	return line("check the directory exists and is writable, or pass --output-dir")
}

// ForUnknownFont lists the accepted font names.
func ForUnknownFont(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return line("available: " + strings.Join(available, ", "))
}

// ForStorage is appended when the usage counter store cannot be opened.
func ForStorage(path string) string {
	if path == "" {
		return line("use --storage memory to skip persistence")
	}
	return line("check " + path + " is writable and not locked by another mdark, or use --storage memory")
}

// line joins the non-empty parts into a single hint.
func line(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return "\n  hint: " + strings.Join(kept, "; ")
}
