package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/alnah/go-mdark"
)

var _ tea.Model = Model{}

// ExportDoneMsg is sent when a started export settles. The editor state has
// already been updated by then.
type ExportDoneMsg struct {
	Artifact *mdark.Artifact
	Err      error
}

const (
	statusHeight = 1
	bannerHeight = 1
	titleHeight  = 1
	borderSize   = 2
)

// Model is the Bubble Tea model for the mdark editor. All application state
// lives in the wrapped Editor; the model only holds widgets and layout.
type Model struct {
	// Input is the markdown text area. Exported for test access.
	Input textarea.Model
	// Preview is the scrollable rendered preview. Exported for test access.
	Preview viewport.Model

	ctx     context.Context
	editor  *mdark.Editor
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	styles  Styles

	md      *glamour.TermRenderer
	mdDark  bool
	mdWidth int

	width  int
	height int
	ready  bool
}

// New creates the editor model. ctx bounds renders and exports started
// from the UI.
func New(ctx context.Context, ed *mdark.Editor) Model {
	st := ed.State()

	ta := textarea.New()
	ta.Placeholder = "Write markdown..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(st.Source)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		Input:   ta,
		ctx:     ctx,
		editor:  ed,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		styles:  NewStyles(st.DarkMode),
	}
}

// Editor returns the wrapped editor.
func (m Model) Editor() *mdark.Editor { return m.editor }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ExportDoneMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.editor.State().Exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.Preview, cmd = m.Preview.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	paneH := msg.Height - statusHeight - bannerHeight - titleHeight - borderSize
	if paneH < 1 {
		paneH = 1
	}
	leftW := msg.Width/2 - borderSize
	rightW := msg.Width - msg.Width/2 - borderSize
	if leftW < 1 {
		leftW = 1
	}
	if rightW < 1 {
		rightW = 1
	}

	m.Input.SetWidth(leftW)
	m.Input.SetHeight(paneH)

	if !m.ready {
		m.Preview = viewport.New(rightW, paneH)
		m.ready = true
	} else {
		m.Preview.Width = rightW
		m.Preview.Height = paneH
	}
	m.help.Width = msg.Width
	return m.refreshPreview()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.editor.State()

	if st.HelpVisible {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help, m.keys.Dismiss):
			m.editor.HideHelp()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Export):
		return m.startExport()
	case key.Matches(msg, m.keys.CycleFont):
		m.editor.CycleFont()
		return m, nil
	case key.Matches(msg, m.keys.ToggleDark):
		dark := m.editor.ToggleDarkMode()
		m.styles = NewStyles(dark)
		return m.refreshPreview(), nil
	case key.Matches(msg, m.keys.ToggleExport):
		m.editor.ToggleExportDark()
		return m, nil
	case key.Matches(msg, m.keys.ScrollUp):
		m.Preview.SetYOffset(m.Preview.YOffset - m.Preview.Height)
		return m, nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.Preview.SetYOffset(m.Preview.YOffset + m.Preview.Height)
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.editor.ShowHelp()
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		if st.Error != "" {
			m.editor.DismissError()
		}
		return m, nil
	}

	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if after := m.Input.Value(); after != before {
		m.editor.SetSource(m.ctx, after)
		m = m.refreshPreview()
	}
	return m, cmd
}

// startExport runs the export off the update loop. A second request while
// one is running is dropped.
func (m Model) startExport() (tea.Model, tea.Cmd) {
	run, ok := m.editor.StartExport()
	if !ok {
		return m, nil
	}
	ctx := m.ctx
	export := func() tea.Msg {
		art, err := run(ctx)
		return ExportDoneMsg{Artifact: art, Err: err}
	}
	return m, tea.Batch(m.spinner.Tick, export)
}

func (m Model) refreshPreview() Model {
	if !m.ready {
		return m
	}
	st := m.editor.State()

	if m.md == nil || m.mdDark != st.DarkMode || m.mdWidth != m.Preview.Width {
		style := styles.LightStyle
		if st.DarkMode {
			style = styles.DarkStyle
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(m.Preview.Width),
		)
		if err != nil {
			r = nil
		}
		m.md, m.mdDark, m.mdWidth = r, st.DarkMode, m.Preview.Width
	}

	m.Preview.SetContent(m.previewContent(st.Source))
	return m
}

// previewContent falls back to the render tree's text when the terminal
// renderer is unavailable.
func (m Model) previewContent(source string) string {
	if m.md != nil {
		if out, err := m.md.Render(source); err == nil {
			return out
		}
	}
	if tree := m.editor.Preview(); tree != nil {
		return tree.Text()
	}
	return source
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	st := m.editor.State()
	if st.HelpVisible {
		return m.helpView()
	}

	left := m.styles.Pane.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.PaneTitle.Render("Markdown"),
		m.Input.View(),
	))
	right := m.styles.Pane.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.PaneTitle.Render("Preview · "+m.editor.Font().Name),
		m.Preview.View(),
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.bannerLine(st),
		m.statusLine(st),
	)
}

func (m Model) bannerLine(st mdark.State) string {
	switch {
	case st.Error != "":
		return m.styles.ErrorBar.Render("✗ " + st.Error + "  (esc to dismiss)")
	case st.LastExport != "":
		return m.styles.PaneTitle.Render("Saved " + st.LastExport)
	}
	return ""
}

func (m Model) statusLine(st mdark.State) string {
	items := []string{
		m.styles.StatusItem.Render("Font: " + m.editor.Font().Name),
		m.styles.StatusItem.Render("Editor: " + themeName(st.DarkMode)),
		m.styles.StatusItem.Render("PDF: " + themeName(st.ExportDark)),
		m.styles.StatusItem.Render(fmt.Sprintf("PDFs generated: %d", st.UsageCount)),
	}
	if st.Exporting {
		items = append(items, m.styles.Busy.Render(m.spinner.View()+" Generating..."))
	}
	items = append(items, m.styles.StatusItem.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return m.styles.StatusBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, items...))
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(m.styles.ModalTitle.Render("mdark"))
	b.WriteString("\n")
	b.WriteString("Type markdown on the left; the preview follows as you type.\n")
	b.WriteString("Exports save one A4 page as " + mdark.ArtifactName + ".\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.styles.Modal.Render(b.String()))
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// Run starts the editor full-screen and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, ed *mdark.Editor) error {
	p := tea.NewProgram(New(ctx, ed),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
