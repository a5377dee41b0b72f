// ABOUTME: Persistent access-token cell on top of charm KV
// ABOUTME: A missing key reads as the empty token (anonymous)

package charm

import (
	"errors"

	"github.com/dgraph-io/badger/v3"
)

var tokenKey = []byte("token")

// TokenStore persists the single bearer token across runs.
type TokenStore struct {
	client *Client
}

func NewTokenStore(c *Client) *TokenStore {
	return &TokenStore{client: c}
}

// Token returns the stored token, or "" when none is stored.
func (s *TokenStore) Token() (string, error) {
	val, err := s.client.Get(tokenKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(val), nil
}

func (s *TokenStore) SetToken(token string) error {
	if token == "" {
		return s.ClearToken()
	}
	return s.client.Set(tokenKey, []byte(token))
}

func (s *TokenStore) ClearToken() error {
	return s.client.Delete(tokenKey)
}
