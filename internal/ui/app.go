package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/thwip/internal/binding"
	"github.com/five82/thwip/internal/prefs"
	"github.com/five82/thwip/internal/router"
)

// historyLimit bounds the back stack.
const historyLimit = 50

// Options configures the UI.
type Options struct {
	Context   context.Context
	Router    *router.Router
	StartPath string
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	router    *router.Router
	prefs     prefs.Prefs
	prefsPath string
	logger    *slog.Logger
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool
	notice string

	// Active route. Exactly one page is mounted at a time.
	match   router.Match
	page    binding.Page
	history []string
	pending tea.Cmd

	// Grid state. selectedKey follows the card identity across reloads.
	grid        viewport.Model
	selected    int
	selectedKey string

	spinner spinner.Model

	// Goto prompt
	prompting bool
	prompt    textinput.Model

	// Help overlay
	showHelp bool
}

// New creates the model and mounts the start path.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	theme := GetTheme(opts.Prefs.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	input := textinput.New()
	input.Prompt = ":"
	input.Placeholder = "/publisher/acme"
	input.CharLimit = 256

	m := Model{
		ctx:       ctx,
		router:    opts.Router,
		prefs:     opts.Prefs,
		prefsPath: opts.PrefsPath,
		logger:    logger,
		keys:      DefaultKeyMap(),
		theme:     theme,
		spinner:   sp,
		prompt:    input,
	}

	start := strings.TrimSpace(opts.StartPath)
	if start == "" {
		start = router.LandingPath
	}
	m.pending = m.navigate(start, false)
	if m.page == nil && start != router.LandingPath {
		notice := m.notice
		m.pending = m.navigate(router.LandingPath, false)
		m.notice = notice
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pending, m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		gridHeight := max(1, m.height-chromeLines)
		if !m.ready {
			m.grid = viewport.New(m.width, gridHeight)
		} else {
			m.grid.Width = m.width
			m.grid.Height = gridHeight
		}
		m.prompt.Width = max(10, m.width-4)
		m.ready = true
		m.refreshGrid()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.page == nil {
		return m, nil
	}
	before := m.page.Phase()
	cmd := m.page.Update(msg)
	if m.page.Phase() != before {
		m.syncSelection()
		m.refreshGrid()
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.grid.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.refreshGrid()
		return m, nil

	case key.Matches(msg, m.keys.Series):
		return m, m.navigate("/series", true)

	case key.Matches(msg, m.keys.Publishers):
		return m, m.navigate("/publisher", true)

	case key.Matches(msg, m.keys.Open):
		return m, m.openSelected()

	case key.Matches(msg, m.keys.Back):
		return m, m.back()

	case key.Matches(msg, m.keys.Reload):
		return m, m.remount()

	case key.Matches(msg, m.keys.Goto):
		m.prompting = true
		m.prompt.SetValue("")
		return m, m.prompt.Focus()
	}

	m.handleGridKey(msg)
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		target := strings.TrimSpace(m.prompt.Value())
		m.prompting = false
		m.prompt.Blur()
		if target == "" {
			return m, nil
		}
		return m, m.navigate(target, true)

	case key.Matches(msg, m.keys.Cancel), msg.Type == tea.KeyCtrlC:
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	if opts.Router == nil {
		return errors.New("ui requires a router")
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
