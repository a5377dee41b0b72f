// ABOUTME: Upload gateway for logo assets
// ABOUTME: Multipart POST of a single file; returns the backend's file URL as the asset reference
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/harperreed/flagshop/models"
)

// AllowedLogoExtensions are the file types accepted for logos.
var AllowedLogoExtensions = []string{".jpg", ".jpeg", ".png", ".pdf", ".ai"}

// ValidateLogoFileName rejects names whose extension is not an accepted logo type.
func ValidateLogoFileName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedLogoExtensions {
		if ext == allowed {
			return nil
		}
	}
	return &UploadError{
		FileName: name,
		Detail:   "File type not allowed. Please upload JPG, PNG, PDF, or AI files.",
	}
}

// Upload sends one file and returns the full backend response.
func (c *Client) Upload(ctx context.Context, r io.Reader, fileName string) (*models.UploadResult, error) {
	if err := ValidateLogoFileName(fileName); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(fileName))
	if err != nil {
		return nil, &UploadError{FileName: fileName, Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, &UploadError{FileName: fileName, Err: fmt.Errorf("failed to read file: %w", err)}
	}
	if err := mw.Close(); err != nil {
		return nil, &UploadError{FileName: fileName, Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload", &body, true)
	if err != nil {
		return nil, &UploadError{FileName: fileName, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out models.UploadResult
	if err := c.do("upload", req, &out); err != nil {
		c.logger.Warn("logo upload failed", zap.String("file", fileName), zap.Error(err))
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, &UploadError{FileName: fileName, Detail: apiErr.Detail, Err: err}
		}
		return nil, &UploadError{FileName: fileName, Err: err}
	}
	if out.FileURL == "" {
		return nil, &UploadError{FileName: fileName, Detail: "backend returned no file_url"}
	}
	return &out, nil
}

// UploadLogo implements the upload gateway: it returns only the asset reference.
func (c *Client) UploadLogo(ctx context.Context, r io.Reader, fileName string) (string, error) {
	res, err := c.Upload(ctx, r, fileName)
	if err != nil {
		return "", err
	}
	return res.FileURL, nil
}
