package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-mdark/internal/config"
	"github.com/alnah/go-mdark/internal/fileutil"
	"github.com/alnah/go-mdark/internal/hints"
)

// Report statuses, worst last.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorReport is printed as text or, with --json, encoded as is.
type doctorReport struct {
	Status   string       `json:"status"`
	Browser  browserCheck `json:"browser"`
	Host     hostCheck    `json:"host"`
	Dirs     dirCheck     `json:"directories"`
	Counter  counterCheck `json:"counter"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

type browserCheck struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type hostCheck struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	CI            bool   `json:"ci"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
}

type dirCheck struct {
	Temp           string `json:"temp"`
	TempWritable   bool   `json:"temp_writable"`
	Output         string `json:"output"`
	OutputWritable bool   `json:"output_writable"`
}

type counterCheck struct {
	Driver string `json:"driver"`
	Path   string `json:"path,omitempty"`
	OK     bool   `json:"ok"`
	Count  int    `json:"count"`
}

func (r *doctorReport) warn(format string, a ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, a...))
}

func (r *doctorReport) fail(format string, a ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, a...))
}

// runDoctorCmd prints the report and exits 1 only when an export cannot
// work at all. Warnings still exit 0.
func runDoctorCmd(args []string, env *Environment) int {
	flags, positional, err := parseStoreCmdFlags("doctor", args, env.Stderr)
	if err != nil {
		return reportError(env, err)
	}
	if len(positional) > 0 {
		return reportError(env, fmt.Errorf("%w: doctor takes no arguments", ErrUsage))
	}
	cfg, err := loadSettings(flags.common, env)
	if err != nil {
		return reportError(env, err)
	}
	mergeStorageFlags(flags.storage, cfg)

	r := runDoctor(cfg, hints.Detect(os.Getenv))

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return reportError(env, err)
		}
	} else {
		printDoctorReport(env.Stdout, r)
	}

	if r.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor runs every check against cfg and the detected host.
func runDoctor(cfg *config.Config, rt hints.Runtime) *doctorReport {
	r := &doctorReport{}
	r.checkBrowser(rt)
	r.checkHost(rt)
	r.checkDirs(cfg)
	r.checkCounter(cfg)

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

// checkBrowser finds the Chrome rod would launch. A missing browser is only
// a warning: rod downloads Chromium on the first export.
func (r *doctorReport) checkBrowser(rt hints.Runtime) {
	r.Browser.Sandbox = !rt.NoSandbox

	bin := rt.BrowserBin
	if bin == "" {
		var ok bool
		if bin, ok = launcher.LookPath(); !ok {
			r.warn("no Chrome/Chromium found; the first export downloads one (set ROD_BROWSER_BIN to use yours)")
			return
		}
	} else if !fileutil.FileExists(bin) {
		r.fail("ROD_BROWSER_BIN points at %s, which does not exist", bin)
		return
	}

	r.Browser.Found = true
	r.Browser.Path = bin
	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err != nil {
		r.warn("could not read the browser version: %v", err)
		return
	}
	r.Browser.Version = strings.TrimSpace(string(out))
}

func (r *doctorReport) checkHost(rt hints.Runtime) {
	r.Host = hostCheck{
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
		CI:            rt.CI,
		Container:     rt.Container,
		ContainerHint: rt.ContainerHint,
	}
	if rt.NeedsNoSandbox() {
		r.warn("container or CI detected without ROD_NO_SANDBOX=1; Chrome may refuse to start")
	}
}

// checkDirs probes the temp dir rod extracts into and the export directory.
// The export directory is created on first save, so its absence only warns.
func (r *doctorReport) checkDirs(cfg *config.Config) {
	r.Dirs.Temp = os.TempDir()
	r.Dirs.TempWritable = fileutil.DirWritable(r.Dirs.Temp)
	if !r.Dirs.TempWritable {
		r.fail("temp directory %s is not writable", r.Dirs.Temp)
	}

	r.Dirs.Output = cfg.Export.OutputDir
	if r.Dirs.Output == "" {
		r.Dirs.Output = "."
	}
	r.Dirs.OutputWritable = fileutil.DirWritable(r.Dirs.Output)
	if !r.Dirs.OutputWritable {
		r.warn("output directory %s is not writable yet", r.Dirs.Output)
	}
}

// checkCounter opens the usage counter. A broken counter never blocks an
// export, so failures only warn.
func (r *doctorReport) checkCounter(cfg *config.Config) {
	r.Counter.Driver = cfg.Storage.Driver
	r.Counter.Path = cfg.Storage.Path

	counter, closeCounter, err := openCounter(cfg)
	if err != nil {
		r.warn("usage counter unavailable: %v", err)
		return
	}
	defer closeCounter()

	n, err := counter.Load()
	if err != nil {
		r.warn("usage counter unreadable: %v", err)
		return
	}
	r.Counter.OK = true
	r.Counter.Count = n
}

type reportLine struct {
	mark string
	text string
}

type reportSection struct {
	title string
	lines []reportLine
}

func mark(ok bool, failure string) string {
	if ok {
		return "[OK]"
	}
	return failure
}

// sections lays the report out for printing.
func (r *doctorReport) sections() []reportSection {
	browser := reportSection{title: "Browser"}
	if r.Browser.Found {
		browser.lines = append(browser.lines, reportLine{"[OK]", "found at " + r.Browser.Path})
		if r.Browser.Version != "" {
			browser.lines = append(browser.lines, reportLine{"[OK]", r.Browser.Version})
		}
	} else {
		browser.lines = append(browser.lines, reportLine{"[WARN]", "not found"})
	}
	sandbox := "sandbox enabled"
	if !r.Browser.Sandbox {
		sandbox = "sandbox disabled (ROD_NO_SANDBOX=1)"
	}
	browser.lines = append(browser.lines, reportLine{"[OK]", sandbox})

	host := reportSection{title: "Host", lines: []reportLine{{"[OK]", r.Host.OS + "/" + r.Host.Arch}}}
	if r.Host.Container {
		host.lines = append(host.lines, reportLine{"[OK]", "container (" + r.Host.ContainerHint + ")"})
	}
	if r.Host.CI {
		host.lines = append(host.lines, reportLine{"[OK]", "CI"})
	}

	dirs := reportSection{title: "Directories", lines: []reportLine{
		{mark(r.Dirs.TempWritable, "[ERROR]"), "temp " + r.Dirs.Temp},
		{mark(r.Dirs.OutputWritable, "[WARN]"), "output " + r.Dirs.Output},
	}}

	counter := reportSection{title: "Usage counter"}
	if r.Counter.OK {
		counter.lines = []reportLine{{"[OK]", fmt.Sprintf("%s: %d PDFs generated", r.Counter.Driver, r.Counter.Count)}}
	} else {
		counter.lines = []reportLine{{"[WARN]", r.Counter.Driver + ": unavailable"}}
	}

	out := []reportSection{browser, host, dirs, counter}
	if len(r.Warnings) > 0 {
		s := reportSection{title: "Warnings"}
		for _, w := range r.Warnings {
			s.lines = append(s.lines, reportLine{"[WARN]", w})
		}
		out = append(out, s)
	}
	if len(r.Errors) > 0 {
		s := reportSection{title: "Errors"}
		for _, e := range r.Errors {
			s.lines = append(s.lines, reportLine{"[ERROR]", e})
		}
		out = append(out, s)
	}
	return out
}

var statusText = map[string]string{
	statusReady:    "ready to export",
	statusWarnings: "ready with warnings",
	statusErrors:   "not ready (see errors above)",
}

func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "mdark doctor")
	for _, s := range r.sections() {
		fmt.Fprintf(w, "\n%s\n", s.title)
		for _, l := range s.lines {
			fmt.Fprintf(w, "  %s %s\n", l.mark, l.text)
		}
	}
	fmt.Fprintf(w, "\nStatus: %s\n", statusText[r.Status])
}
