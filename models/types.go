// ABOUTME: Data models for storefront entities
// ABOUTME: Defines Viewer, Product, CustomizationDraft, QuotePayload and Quote structs
package models

import (
	"time"
)

// Account types.
const (
	AccountRegular   = "regular"
	AccountWholesale = "wholesale"
)

// Quote statuses. The backend may introduce others; they are kept verbatim.
const (
	QuoteStatusPending  = "pending"
	QuoteStatusApproved = "approved"
	QuoteStatusRejected = "rejected"
)

// Viewer is the authenticated actor. A nil *Viewer means anonymous.
type Viewer struct {
	ID                string `json:"id,omitempty"`
	Email             string `json:"email"`
	BusinessName      string `json:"business_name"`
	AccountType       string `json:"account_type"`
	WholesaleApproved bool   `json:"wholesale_approved"`
}

// IsWholesale reports whether the viewer registered a wholesale account,
// regardless of approval.
func (v *Viewer) IsWholesale() bool {
	return v != nil && v.AccountType == AccountWholesale
}

type Product struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	ImageURL       string   `json:"image_url"`
	Sizes          []string `json:"sizes"`
	Customizable   bool     `json:"customizable"`
	BasePrice      float64  `json:"base_price"`
	WholesalePrice float64  `json:"wholesale_price"`
}

// NormalizedPosition is a percentage offset inside the preview surface.
type NormalizedPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DefaultPosition is the centre of the surface.
func DefaultPosition() NormalizedPosition {
	return NormalizedPosition{X: 50, Y: 50}
}

// Clamp returns the position limited to [0,100] on both axes.
func (p NormalizedPosition) Clamp() NormalizedPosition {
	return NormalizedPosition{X: clampPercent(p.X), Y: clampPercent(p.Y)}
}

func clampPercent(v float64) float64 {
	if v != v { // NaN
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// CustomizationDraft is the in-progress customization for one product.
// Values are treated as immutable: the With* helpers return updated copies.
type CustomizationDraft struct {
	BusinessName string             `json:"business_name"`
	PhoneNumber  string             `json:"phone_number"`
	LogoURL      *string            `json:"logo_url"`
	LogoPosition NormalizedPosition `json:"logo_position"`
}

// NewDraft returns the reset draft: empty text, no logo, centred position.
func NewDraft() CustomizationDraft {
	return CustomizationDraft{LogoPosition: DefaultPosition()}
}

func (d CustomizationDraft) WithBusinessName(name string) CustomizationDraft {
	d.BusinessName = name
	return d
}

func (d CustomizationDraft) WithPhoneNumber(phone string) CustomizationDraft {
	d.PhoneNumber = phone
	return d
}

func (d CustomizationDraft) WithLogo(assetRef string) CustomizationDraft {
	ref := assetRef
	d.LogoURL = &ref
	return d
}

func (d CustomizationDraft) WithPosition(pos NormalizedPosition) CustomizationDraft {
	d.LogoPosition = pos.Clamp()
	return d
}

// HasLogo reports whether an uploaded asset is attached.
func (d CustomizationDraft) HasLogo() bool {
	return d.LogoURL != nil && *d.LogoURL != ""
}

// Snapshot returns a deep copy safe to hand to a payload.
func (d CustomizationDraft) Snapshot() CustomizationDraft {
	if d.LogoURL != nil {
		ref := *d.LogoURL
		d.LogoURL = &ref
	}
	return d
}

// QuotePayload is the outbound body of POST /api/quotes.
type QuotePayload struct {
	UserEmail         string             `json:"user_email"`
	BusinessName      string             `json:"business_name"`
	ProductName       string             `json:"product_name"`
	CustomizationData CustomizationDraft `json:"customization_data"`
	Quantity          int                `json:"quantity"`
	Message           string             `json:"message"`
}

// Quote is a persisted quote request as returned by the backend.
type Quote struct {
	ID                string              `json:"id"`
	UserEmail         string              `json:"user_email,omitempty"`
	ProductName       string              `json:"product_name"`
	BusinessName      string              `json:"business_name"`
	Quantity          int                 `json:"quantity"`
	Status            string              `json:"status"`
	CreatedAt         Timestamp           `json:"created_at"`
	Message           string              `json:"message,omitempty"`
	CustomizationData *CustomizationDraft `json:"customization_data,omitempty"`
}

// QuoteReceipt is the backend acknowledgement of a created quote.
type QuoteReceipt struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        Viewer `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
	AccountType  string `json:"account_type"`
}

// UploadResult is the body of a successful POST /api/upload.
type UploadResult struct {
	Filename         string `json:"filename,omitempty"`
	OriginalFilename string `json:"original_filename,omitempty"`
	FileURL          string `json:"file_url"`
	FileSize         int64  `json:"file_size,omitempty"`
}

// SavedCustomization is a draft stored server side without requesting a quote.
type SavedCustomization struct {
	ID           string              `json:"id,omitempty"`
	UserEmail    string              `json:"user_email,omitempty"`
	ProductID    string              `json:"product_id"`
	BusinessName string              `json:"business_name"`
	PhoneNumber  string              `json:"phone_number"`
	LogoURL      *string             `json:"logo_url"`
	LogoPosition *NormalizedPosition `json:"logo_position"`
	CreatedAt    *Timestamp          `json:"created_at,omitempty"`
}

// Submission is a locally recorded quote submission.
type Submission struct {
	ID           string       `json:"id"`
	RemoteID     string       `json:"remote_id"`
	Payload      QuotePayload `json:"payload"`
	SubmittedAt  time.Time    `json:"submitted_at"`
	BackendReply string       `json:"backend_reply,omitempty"`
}
