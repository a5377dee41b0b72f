// ABOUTME: Error taxonomy for backend calls
// ABOUTME: Transport, auth, generic API and upload failures carry the backend detail verbatim
package api

import (
	"fmt"
)

// NetworkError is a transport-level failure: no response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx response. Detail is the backend's {detail} message.
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
}

// AuthError is a rejected call against an auth endpoint.
type AuthError struct {
	StatusCode int
	Detail     string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("authentication failed (%d)", e.StatusCode)
}

// UploadError covers every failed logo upload: rejected file, transport
// failure or non-2xx response.
type UploadError struct {
	FileName string
	Detail   string
	Err      error
}

func (e *UploadError) Error() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Err != nil:
		return fmt.Sprintf("upload of %s failed: %v", e.FileName, e.Err)
	default:
		return fmt.Sprintf("upload of %s failed", e.FileName)
	}
}

func (e *UploadError) Unwrap() error { return e.Err }
