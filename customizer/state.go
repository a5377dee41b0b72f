// ABOUTME: Customization state for the product currently being customized
// ABOUTME: Every mutation swaps in a new draft value produced by the model reducers
package customizer

import (
	"github.com/harperreed/flagshop/models"
)

// State tracks one product and its draft. Selecting another product discards
// the previous draft; nothing carries over between products.
type State struct {
	product *models.Product
	draft   models.CustomizationDraft
}

// NewState returns a state with no product selected and a reset draft.
func NewState() *State {
	return &State{draft: models.NewDraft()}
}

// SelectProduct makes product the active one and resets the draft.
func (s *State) SelectProduct(product models.Product) {
	p := product
	s.product = &p
	s.draft = models.NewDraft()
}

// Clear drops the selected product and resets the draft.
func (s *State) Clear() {
	s.product = nil
	s.draft = models.NewDraft()
}

// Product returns a copy of the selected product, or nil.
func (s *State) Product() *models.Product {
	if s.product == nil {
		return nil
	}
	p := *s.product
	return &p
}

// Draft returns a snapshot of the current draft.
func (s *State) Draft() models.CustomizationDraft {
	return s.draft.Snapshot()
}

func (s *State) SetBusinessName(text string) {
	s.draft = s.draft.WithBusinessName(text)
}

// SetPhoneNumber stores the phone verbatim; format is not validated.
func (s *State) SetPhoneNumber(text string) {
	s.draft = s.draft.WithPhoneNumber(text)
}

// SetLogo attaches an uploaded asset reference. Call only after the upload
// gateway reported success.
func (s *State) SetLogo(assetRef string) {
	s.draft = s.draft.WithLogo(assetRef)
}

// UpdatePosition replaces the logo position, clamped to the surface.
func (s *State) UpdatePosition(pos models.NormalizedPosition) {
	s.draft = s.draft.WithPosition(pos)
}

// Nudge moves the logo by a percentage delta on each axis.
func (s *State) Nudge(dx, dy float64) {
	cur := s.draft.LogoPosition
	s.UpdatePosition(models.NormalizedPosition{X: cur.X + dx, Y: cur.Y + dy})
}

// MoveTo maps a pointer event onto the surface and applies it.
func (s *State) MoveTo(pointerX, pointerY float64, surface Bounds) error {
	pos, err := MapToNormalized(pointerX, pointerY, surface)
	if err != nil {
		return err
	}
	s.UpdatePosition(pos)
	return nil
}

// CanSubmit mirrors the presentation gate: a business name is required.
func (s *State) CanSubmit() bool {
	return s.product != nil && !isBlank(s.draft.BusinessName)
}
