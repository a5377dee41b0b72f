// ABOUTME: Bridges the upload gateway into the customization state
// ABOUTME: A draft's logo only changes after the gateway confirms the upload
package customizer

import (
	"context"
	"io"
)

// Uploader sends a logo file to the backend and returns its asset reference.
type Uploader interface {
	UploadLogo(ctx context.Context, r io.Reader, fileName string) (string, error)
}

// UploadLogo runs one upload attempt. On failure the previous logo reference
// stays in place and the error is returned unchanged.
func (s *State) UploadLogo(ctx context.Context, up Uploader, r io.Reader, fileName string) (string, error) {
	ref, err := up.UploadLogo(ctx, r, fileName)
	if err != nil {
		return "", err
	}
	s.SetLogo(ref)
	return ref, nil
}
