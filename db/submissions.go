// ABOUTME: Local quote submission history
// ABOUTME: Every accepted quote request is stored with a ULID, the backend id and the payload
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/flagshop/models"
)

func RecordSubmission(db *sql.DB, sub *models.Submission) error {
	if sub.ID == "" {
		sub.ID = ulid.Make().String()
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(sub.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO submissions (id, remote_id, user_email, business_name, product_name, quantity, payload, backend_reply, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sub.ID, sub.RemoteID, sub.Payload.UserEmail, sub.Payload.BusinessName, sub.Payload.ProductName,
		sub.Payload.Quantity, string(payload), sub.BackendReply, sub.SubmittedAt)
	return err
}

func GetSubmission(db *sql.DB, id string) (*models.Submission, error) {
	row := db.QueryRow(`
		SELECT id, remote_id, payload, backend_reply, submitted_at
		FROM submissions WHERE id = ?
	`, id)

	sub, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return sub, err
}

// ListSubmissions returns the newest submissions first. An empty email
// lists every account's submissions.
func ListSubmissions(db *sql.DB, email string, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT id, remote_id, payload, backend_reply, submitted_at
		FROM submissions
		WHERE ? = '' OR user_email = ?
		ORDER BY submitted_at DESC, id DESC
		LIMIT ?
	`, email, email, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(s scanner) (*models.Submission, error) {
	var (
		sub     models.Submission
		payload string
		reply   sql.NullString
	)
	if err := s.Scan(&sub.ID, &sub.RemoteID, &payload, &reply, &sub.SubmittedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &sub.Payload); err != nil {
		return nil, fmt.Errorf("corrupt payload for submission %s: %w", sub.ID, err)
	}
	sub.BackendReply = reply.String
	return &sub, nil
}

// History records submissions for the session layer.
type History struct {
	db *sql.DB
}

func NewHistory(db *sql.DB) *History {
	return &History{db: db}
}

func (h *History) RecordSubmission(ctx context.Context, remoteID string, payload models.QuotePayload, reply string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return RecordSubmission(h.db, &models.Submission{
		RemoteID:     remoteID,
		Payload:      payload,
		BackendReply: reply,
	})
}

func (h *History) List(email string, limit int) ([]models.Submission, error) {
	return ListSubmissions(h.db, email, limit)
}
