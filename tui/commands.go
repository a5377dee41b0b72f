// ABOUTME: Asynchronous session operations wrapped as bubbletea commands
// ABOUTME: Results come back as resultMsg and are applied in arrival order
package tui

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/harperreed/flagshop/models"
)

type resultKind int

const (
	resultBootstrap resultKind = iota
	resultLogin
	resultRegister
	resultUpload
	resultQuote
	resultQuotes
	resultSaved
	resultProducts
)

type resultMsg struct {
	kind resultKind
	err  error
}

func (m Model) bootstrapCmd() tea.Cmd {
	return func() tea.Msg {
		return resultMsg{kind: resultBootstrap, err: m.app.Bootstrap(m.ctx)}
	}
}

func (m Model) loadProductsCmd() tea.Cmd {
	return func() tea.Msg {
		return resultMsg{kind: resultProducts, err: m.app.LoadProducts(m.ctx)}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{kind: resultLogin, err: m.app.Login(m.ctx, email, password)}
	}
}

func (m Model) registerCmd(in models.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{kind: resultRegister, err: m.app.Register(m.ctx, in)}
	}
}

func (m Model) uploadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			m.app.Notify("Cannot open "+path+": "+err.Error(), true)
			return resultMsg{kind: resultUpload, err: err}
		}
		defer f.Close()
		_, err = m.app.UploadLogo(m.ctx, f, filepath.Base(path))
		return resultMsg{kind: resultUpload, err: err}
	}
}

func (m Model) submitQuoteCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.SubmitQuote(m.ctx)
		return resultMsg{kind: resultQuote, err: err}
	}
}

func (m Model) saveCustomizationCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.SaveCustomization(m.ctx)
		return resultMsg{kind: resultSaved, err: err}
	}
}

func (m Model) loadQuotesCmd() tea.Cmd {
	return func() tea.Msg {
		return resultMsg{kind: resultQuotes, err: m.app.LoadQuotes(m.ctx)}
	}
}

func (m Model) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	m.busy = ""
	if msg.err != nil {
		m.logger.Debug("operation failed", zap.Int("kind", int(msg.kind)), zap.Error(msg.err))
		return m, nil
	}

	switch msg.kind {
	case resultLogin:
		m.loginInputs = newLoginInputs()
		m.focusIndex = 0
	case resultRegister:
		m.registerInputs = newRegisterInputs()
		m.wholesale = false
		m.focusIndex = 0
	case resultUpload:
		m.customizeInputs[fieldLogoPath].SetValue("")
	case resultQuote:
		m.customizeInputs = newCustomizeInputs()
		m.quoteCursor = 0
		m.focusIndex = 0
	case resultBootstrap, resultProducts:
		if n := len(m.app.Products()); m.cursor >= n {
			m.cursor = 0
		}
	}
	m.updateFormFocus()
	return m, nil
}
