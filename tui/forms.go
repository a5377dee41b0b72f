// ABOUTME: Login and registration forms
// ABOUTME: Text inputs built on bubbles/textinput with tab focus cycling
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/flagshop/models"
	"github.com/harperreed/flagshop/session"
)

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

func newPasswordInput() textinput.Model {
	in := newInput("Password", 100)
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	return in
}

func newLoginInputs() []textinput.Model {
	return []textinput.Model{
		newInput("Email", 100),
		newPasswordInput(),
	}
}

func newRegisterInputs() []textinput.Model {
	return []textinput.Model{
		newInput("Email", 100),
		newPasswordInput(),
		newInput("Business Name", 100),
		newInput("Phone", 20),
	}
}

// activeInputs returns the text inputs of the current view. The returned
// slice shares storage with the model.
func (m *Model) activeInputs() []textinput.Model {
	switch m.app.View() {
	case session.ViewLogin:
		return m.loginInputs
	case session.ViewRegister:
		return m.registerInputs
	case session.ViewCustomize:
		return m.customizeInputs
	}
	return nil
}

func (m *Model) updateFormFocus() {
	inputs := m.activeInputs()
	for i := range inputs {
		if i == m.focusIndex {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}

func renderInputs(inputs []textinput.Model, focus int) string {
	var s strings.Builder
	for i, input := range inputs {
		if i == focus {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		s.WriteString("\n")
	}
	return s.String()
}

// cycleFocus moves focus across n slots.
func (m Model) cycleFocus(msg tea.KeyMsg, n int) Model {
	if msg.String() == "shift+tab" || msg.String() == "up" {
		m.focusIndex = (m.focusIndex - 1 + n) % n
	} else {
		m.focusIndex = (m.focusIndex + 1) % n
	}
	m.updateFormFocus()
	return m
}

func (m Model) renderLoginView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("SIGN IN"))
	s.WriteString("\n")
	s.WriteString(renderInputs(m.loginInputs, m.focusIndex))
	help := []string{"Tab: Next field", "Enter: Sign in", "ctrl+n: Register instead", "Esc: Back"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(session.ViewHome)
	case "ctrl+n":
		return m.navigate(session.ViewRegister)
	case "tab", "shift+tab", "up", "down":
		return m.cycleFocus(msg, len(m.loginInputs)), nil
	case "enter":
		email := strings.TrimSpace(m.loginInputs[0].Value())
		password := m.loginInputs[1].Value()
		if email == "" || password == "" {
			m.app.Notify("Email and password are required", true)
			return m, nil
		}
		m.busy = "Signing in..."
		return m, m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	m.loginInputs[m.focusIndex], cmd = m.loginInputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m Model) renderRegisterView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("CREATE ACCOUNT"))
	s.WriteString("\n")
	s.WriteString(renderInputs(m.registerInputs, m.focusIndex))

	account := "Account type: [x] Regular  [ ] Wholesale"
	if m.wholesale {
		account = "Account type: [ ] Regular  [x] Wholesale (pricing applies after approval)"
	}
	s.WriteString("\n" + account + "\n")

	help := []string{"Tab: Next field", "ctrl+t: Toggle wholesale", "Enter: Create account", "Esc: Back"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) registerRequest() models.RegisterRequest {
	in := models.RegisterRequest{
		Email:        strings.TrimSpace(m.registerInputs[0].Value()),
		Password:     m.registerInputs[1].Value(),
		BusinessName: strings.TrimSpace(m.registerInputs[2].Value()),
		Phone:        strings.TrimSpace(m.registerInputs[3].Value()),
		AccountType:  models.AccountRegular,
	}
	if m.wholesale {
		in.AccountType = models.AccountWholesale
	}
	return in
}

func (m Model) handleRegisterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(session.ViewHome)
	case "tab", "shift+tab", "up", "down":
		return m.cycleFocus(msg, len(m.registerInputs)), nil
	case "ctrl+t":
		m.wholesale = !m.wholesale
		return m, nil
	case "enter":
		in := m.registerRequest()
		if in.Email == "" || in.Password == "" || in.BusinessName == "" {
			m.app.Notify("Email, password and business name are required", true)
			return m, nil
		}
		m.busy = "Creating account..."
		return m, m.registerCmd(in)
	}

	var cmd tea.Cmd
	m.registerInputs[m.focusIndex], cmd = m.registerInputs[m.focusIndex].Update(msg)
	return m, cmd
}
