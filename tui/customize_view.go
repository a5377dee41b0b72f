// ABOUTME: Customization screen with a live preview surface
// ABOUTME: The logo marker follows mouse clicks/drags or arrow-key nudges on the surface
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/harperreed/flagshop/customizer"
	"github.com/harperreed/flagshop/models"
	"github.com/harperreed/flagshop/pricing"
	"github.com/harperreed/flagshop/session"
)

const (
	fieldBusinessName = iota
	fieldPhone
	fieldLogoPath
	focusSurface
)

// Preview surface size in cells, inside its border.
const (
	surfaceWidth  = 40
	surfaceHeight = 10
)

const (
	nudgeStep     = 5.0
	fineNudgeStep = 1.0
)

func newCustomizeInputs() []textinput.Model {
	return []textinput.Model{
		newInput("Business Name", 100),
		newInput("Phone Number", 20),
		newInput("Logo file (.jpg .png .pdf .ai), Enter to upload", 500),
	}
}

func (m Model) renderCustomizeHeader() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("CUSTOMIZE"))
	s.WriteString("\n")

	product := m.app.SelectedProduct()
	if product == nil {
		s.WriteString("No product selected\n\n")
		return s.String()
	}
	s.WriteString(headerStyle.Render(product.Name))
	s.WriteString("\n")

	price, tier := m.app.PriceFor(*product)
	line := pricing.FormatPrice(price)
	switch tier {
	case pricing.TierWholesaleActive:
		line += "  " + badgeStyle.Render(tier.Badge())
	case pricing.TierWholesalePending:
		line += "  " + pendingStyle.Render(tier.Badge())
	}
	s.WriteString(line)
	s.WriteString("\n\n")
	return s.String()
}

// surfaceBounds locates the inside of the preview box on screen. The box is
// drawn at column 0 directly below the header.
func (m Model) surfaceBounds() customizer.Bounds {
	top := strings.Count(m.renderCustomizeHeader(), "\n")
	return customizer.Bounds{
		Left:   1,
		Top:    float64(top + 1),
		Width:  surfaceWidth,
		Height: surfaceHeight,
	}
}

// markerCell is the surface cell the logo is drawn in.
func markerCell(pos models.NormalizedPosition) (col, row int) {
	col = int(math.Round(pos.X / 100 * float64(surfaceWidth-1)))
	row = int(math.Round(pos.Y / 100 * float64(surfaceHeight-1)))
	return col, row
}

func centreText(line []rune, text string) {
	r := []rune(text)
	if len(r) > len(line) {
		r = r[:len(line)]
	}
	start := (len(line) - len(r)) / 2
	copy(line[start:], r)
}

func (m Model) renderSurface(draft models.CustomizationDraft) string {
	grid := make([][]rune, surfaceHeight)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", surfaceWidth))
	}

	if draft.BusinessName != "" {
		centreText(grid[surfaceHeight-2], draft.BusinessName)
	}
	if draft.PhoneNumber != "" {
		centreText(grid[surfaceHeight-1], draft.PhoneNumber)
	}

	marker := '+'
	if draft.HasLogo() {
		marker = '@'
	}
	col, row := markerCell(draft.LogoPosition)
	grid[row][col] = marker

	lines := make([]string, surfaceHeight)
	for i, r := range grid {
		lines[i] = string(r)
	}
	return surfaceStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderCustomizeView() string {
	var s strings.Builder
	s.WriteString(m.renderCustomizeHeader())

	draft := m.app.Draft()
	s.WriteString(m.renderSurface(draft))
	s.WriteString("\n")

	logo := "no logo"
	if draft.HasLogo() {
		logo = *draft.LogoURL
	}
	surfaceMark := "  "
	if m.focusIndex == focusSurface {
		surfaceMark = "> "
	}
	s.WriteString(fmt.Sprintf("%sLogo: %s at (%.0f%%, %.0f%%)\n\n", surfaceMark, logo, draft.LogoPosition.X, draft.LogoPosition.Y))

	s.WriteString(renderInputs(m.customizeInputs, m.focusIndex))
	s.WriteString("\n")

	switch {
	case m.app.Viewer() == nil:
		s.WriteString(pendingStyle.Render("Sign in to request a quote"))
	case !m.app.CanSubmit():
		s.WriteString(pendingStyle.Render("Enter a business name to request a quote"))
	default:
		s.WriteString(badgeStyle.Render("Ready: ctrl+r to request a quote"))
	}
	s.WriteString("\n")

	help := []string{
		"Tab: Next field",
		"Click/drag or arrows on preview: Move logo",
		"ctrl+r: Request quote",
		"ctrl+s: Save",
		"Esc: Catalog",
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) requestQuote() (Model, tea.Cmd) {
	if m.app.Viewer() == nil {
		m.app.Notify("Sign in to request a quote", true)
		return m, nil
	}
	if !m.app.CanSubmit() {
		m.app.Notify("Enter a business name to request a quote", true)
		return m, nil
	}
	m.busy = "Submitting quote request..."
	return m, m.submitQuoteCmd()
}

func (m Model) handleCustomizeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dragging = false
		return m.navigate(session.ViewCatalog)
	case "tab", "shift+tab":
		return m.cycleFocus(msg, focusSurface+1), nil
	case "ctrl+r":
		return m.requestQuote()
	case "ctrl+s":
		if m.app.Viewer() == nil {
			m.app.Notify("Sign in to save customizations", true)
			return m, nil
		}
		m.busy = "Saving..."
		return m, m.saveCustomizationCmd()
	}

	if m.focusIndex == focusSurface {
		return m.handleSurfaceKeys(msg)
	}

	if msg.String() == "enter" {
		if m.focusIndex == fieldLogoPath {
			path := strings.TrimSpace(m.customizeInputs[fieldLogoPath].Value())
			if path == "" {
				return m, nil
			}
			m.busy = "Uploading logo..."
			return m, m.uploadCmd(path)
		}
		return m.cycleFocus(msg, focusSurface+1), nil
	}

	var cmd tea.Cmd
	m.customizeInputs[m.focusIndex], cmd = m.customizeInputs[m.focusIndex].Update(msg)
	switch m.focusIndex {
	case fieldBusinessName:
		m.app.SetBusinessName(m.customizeInputs[fieldBusinessName].Value())
	case fieldPhone:
		m.app.SetPhoneNumber(m.customizeInputs[fieldPhone].Value())
	}
	return m, cmd
}

func (m Model) handleSurfaceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.app.Nudge(-nudgeStep, 0)
	case "right", "l":
		m.app.Nudge(nudgeStep, 0)
	case "up", "k":
		m.app.Nudge(0, -nudgeStep)
	case "down", "j":
		m.app.Nudge(0, nudgeStep)
	case "shift+left":
		m.app.Nudge(-fineNudgeStep, 0)
	case "shift+right":
		m.app.Nudge(fineNudgeStep, 0)
	case "shift+up":
		m.app.Nudge(0, -fineNudgeStep)
	case "shift+down":
		m.app.Nudge(0, fineNudgeStep)
	case "c":
		m.app.UpdatePosition(models.DefaultPosition())
	case "enter":
		return m.requestQuote()
	}
	return m, nil
}

// handleCustomizeMouse moves the logo to the pointer. A drag starts with a
// left press inside the surface and follows the pointer until release, even
// outside the box (positions are clamped).
func (m Model) handleCustomizeMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	bounds := m.surfaceBounds()
	// Aim at the centre of the cell under the pointer.
	x, y := float64(msg.X)+0.5, float64(msg.Y)+0.5

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !bounds.Contains(x, y) {
			return m, nil
		}
		m.dragging = true
		m.focusIndex = focusSurface
		m.updateFormFocus()
	case tea.MouseActionMotion:
		if !m.dragging {
			return m, nil
		}
	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.dragging = false
	default:
		return m, nil
	}

	if err := m.app.MoveLogo(x, y, bounds); err != nil {
		m.logger.Debug("ignoring pointer event", zap.Error(err))
	}
	return m, nil
}
