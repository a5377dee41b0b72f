// ABOUTME: Terminal storefront built on bubbletea
// ABOUTME: Each session view has its own render/handle pair; network work runs as tea.Cmds
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/harperreed/flagshop/session"
)

// Model is the main bubbletea model. Shop state lives in the session; the
// model only holds presentation state.
type Model struct {
	ctx    context.Context
	app    *session.App
	logger *zap.Logger

	// Catalog view state
	cursor int

	// Form state shared by the login, register and customize views
	loginInputs     []textinput.Model
	registerInputs  []textinput.Model
	customizeInputs []textinput.Model
	focusIndex      int
	wholesale       bool

	// Customize view state
	dragging bool

	// Quotes view state
	quoteCursor int

	busy   string
	width  int
	height int
}

// NewModel creates a new TUI model over app.
func NewModel(ctx context.Context, app *session.App, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Model{
		ctx:             ctx,
		app:             app,
		logger:          logger,
		loginInputs:     newLoginInputs(),
		registerInputs:  newRegisterInputs(),
		customizeInputs: newCustomizeInputs(),
		width:           80,
		height:          24,
	}
}

// Run starts the full-screen program with mouse support.
func Run(ctx context.Context, app *session.App, logger *zap.Logger) error {
	p := tea.NewProgram(NewModel(ctx, app, logger), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.bootstrapCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.MouseMsg:
		if m.app.View() == session.ViewCustomize {
			return m.handleCustomizeMouse(msg)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case resultMsg:
		return m.handleResult(msg)
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.app.View() {
	case session.ViewHome:
		body = m.renderHomeView()
	case session.ViewCatalog:
		body = m.renderCatalogView()
	case session.ViewCustomize:
		body = m.renderCustomizeView()
	case session.ViewLogin:
		body = m.renderLoginView()
	case session.ViewRegister:
		body = m.renderRegisterView()
	case session.ViewQuotes:
		body = m.renderQuotesView()
	}
	return body + "\n" + m.renderStatus()
}

// typing reports whether keystrokes belong to a text input.
func (m Model) typing() bool {
	switch m.app.View() {
	case session.ViewLogin, session.ViewRegister:
		return true
	case session.ViewCustomize:
		return m.focusIndex < len(m.customizeInputs)
	}
	return false
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if !m.typing() {
			return m, tea.Quit
		}
	}

	switch m.app.View() {
	case session.ViewHome:
		return m.handleHomeKeys(msg)
	case session.ViewCatalog:
		return m.handleCatalogKeys(msg)
	case session.ViewCustomize:
		return m.handleCustomizeKeys(msg)
	case session.ViewLogin:
		return m.handleLoginKeys(msg)
	case session.ViewRegister:
		return m.handleRegisterKeys(msg)
	case session.ViewQuotes:
		return m.handleQuotesKeys(msg)
	}
	return m, nil
}

// navigate switches views, reporting rejected moves on the status line.
func (m Model) navigate(to session.View) (Model, tea.Cmd) {
	if err := m.app.Navigate(to); err != nil {
		m.app.Notify(session.UserMessage(err), true)
		return m, nil
	}
	m.app.ClearNotice()
	m.focusIndex = 0
	m.updateFormFocus()

	if to == session.ViewQuotes {
		m.busy = "Loading quotes..."
		return m, m.loadQuotesCmd()
	}
	return m, nil
}

func (m Model) renderStatus() string {
	if m.busy != "" {
		return busyStyle.Render(m.busy)
	}
	notice := m.app.Notice()
	if notice.Text == "" {
		return ""
	}
	if notice.Error {
		return errorStyle.Render("✗ " + notice.Text)
	}
	return successStyle.Render("✓ " + notice.Text)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	surfaceStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)
