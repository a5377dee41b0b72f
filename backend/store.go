// ABOUTME: SQLite persistence for the development backend
// ABOUTME: Users, saved customizations and quote requests
package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/flagshop/db"
	"github.com/harperreed/flagshop/models"
)

const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	business_name TEXT NOT NULL,
	phone TEXT,
	account_type TEXT NOT NULL CHECK(account_type IN ('regular', 'wholesale')),
	wholesale_approved INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS customizations (
	id TEXT PRIMARY KEY,
	user_email TEXT NOT NULL,
	product_id TEXT NOT NULL,
	business_name TEXT NOT NULL,
	phone_number TEXT,
	logo_url TEXT,
	logo_position TEXT,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_customizations_user ON customizations(user_email);

CREATE TABLE IF NOT EXISTS quotes (
	id TEXT PRIMARY KEY,
	user_email TEXT NOT NULL,
	business_name TEXT NOT NULL,
	product_name TEXT NOT NULL,
	customization_data TEXT,
	quantity INTEGER NOT NULL,
	message TEXT,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quotes_user ON quotes(user_email);
`

// ErrEmailTaken is returned when registering an address twice.
var ErrEmailTaken = errors.New("email already registered")

type user struct {
	models.Viewer
	PasswordHash string
	Phone        string
}

type Store struct {
	db *sql.DB
}

// OpenStore opens the backend database at path (":memory:" for tests).
func OpenStore(path string) (*Store, error) {
	conn, err := db.Open(path, Schema)
	if err != nil {
		return nil, err
	}
	return &Store{db: conn}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createUser(ctx context.Context, u *user) error {
	u.ID = uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, business_name, phone, account_type, wholesale_approved, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.PasswordHash, u.BusinessName, u.Phone, u.AccountType, u.WholesaleApproved, now, now)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrEmailTaken
	}
	return err
}

func (s *Store) userByEmail(ctx context.Context, email string) (*user, error) {
	u := &user{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, business_name, phone, account_type, wholesale_approved
		FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.BusinessName, &u.Phone, &u.AccountType, &u.WholesaleApproved)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// ApproveWholesale marks a wholesale account as approved.
func (s *Store) ApproveWholesale(ctx context.Context, email string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET wholesale_approved = 1, updated_at = ?
		WHERE email = ? AND account_type = 'wholesale'
	`, time.Now().UTC(), email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no wholesale account for %s", email)
	}
	return nil
}

func (s *Store) CreateQuote(ctx context.Context, q *models.Quote) error {
	q.ID = uuid.New().String()
	q.Status = models.QuoteStatusPending
	q.CreatedAt = models.NewTimestamp(time.Now().UTC())

	var custom []byte
	if q.CustomizationData != nil {
		var err error
		if custom, err = json.Marshal(q.CustomizationData); err != nil {
			return err
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (id, user_email, business_name, product_name, customization_data, quantity, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.UserEmail, q.BusinessName, q.ProductName, nullableJSON(custom), q.Quantity, q.Message, q.Status, q.CreatedAt.Time)
	return err
}

func (s *Store) ListQuotes(ctx context.Context, email string) ([]models.Quote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_email, business_name, product_name, customization_data, quantity, message, status, created_at
		FROM quotes WHERE user_email = ?
		ORDER BY created_at DESC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := []models.Quote{}
	for rows.Next() {
		var (
			q       models.Quote
			custom  sql.NullString
			message sql.NullString
		)
		if err := rows.Scan(&q.ID, &q.UserEmail, &q.BusinessName, &q.ProductName, &custom, &q.Quantity, &message, &q.Status, &q.CreatedAt.Time); err != nil {
			return nil, err
		}
		q.Message = message.String
		if custom.Valid && custom.String != "" {
			var draft models.CustomizationDraft
			if err := json.Unmarshal([]byte(custom.String), &draft); err == nil {
				q.CustomizationData = &draft
			}
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (s *Store) CreateCustomization(ctx context.Context, c *models.SavedCustomization) error {
	c.ID = uuid.New().String()
	now := time.Now().UTC()
	created := models.NewTimestamp(now)
	c.CreatedAt = &created

	var pos []byte
	if c.LogoPosition != nil {
		var err error
		if pos, err = json.Marshal(c.LogoPosition); err != nil {
			return err
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customizations (id, user_email, product_id, business_name, phone_number, logo_url, logo_position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.UserEmail, c.ProductID, c.BusinessName, c.PhoneNumber, c.LogoURL, nullableJSON(pos), now)
	return err
}

func (s *Store) ListCustomizations(ctx context.Context, email string) ([]models.SavedCustomization, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_email, product_id, business_name, phone_number, logo_url, logo_position, created_at
		FROM customizations WHERE user_email = ?
		ORDER BY created_at DESC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SavedCustomization{}
	for rows.Next() {
		var (
			c       models.SavedCustomization
			phone   sql.NullString
			logoURL sql.NullString
			pos     sql.NullString
			created time.Time
		)
		if err := rows.Scan(&c.ID, &c.UserEmail, &c.ProductID, &c.BusinessName, &phone, &logoURL, &pos, &created); err != nil {
			return nil, err
		}
		c.PhoneNumber = phone.String
		if logoURL.Valid {
			ref := logoURL.String
			c.LogoURL = &ref
		}
		if pos.Valid && pos.String != "" {
			var p models.NormalizedPosition
			if err := json.Unmarshal([]byte(pos.String), &p); err == nil {
				c.LogoPosition = &p
			}
		}
		stamp := models.NewTimestamp(created)
		c.CreatedAt = &stamp
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullableJSON(b []byte) interface{} {
	if b == nil {
		return nil
	}
	return string(b)
}
