package upstream

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	credentialService = "opextract"
	tokenKey          = "git_token"

	// TokenEnv overrides the stored token.
	TokenEnv = "OPEXTRACT_GIT_TOKEN"
)

// CredentialStore keeps the access token for private remotes in the OS credential
// store.
type CredentialStore struct {
	service string
}

// NewCredentialStore returns a store backed by the OS keyring.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{service: credentialService}
}

// Token returns the access token. TokenEnv takes precedence over the stored value.
// An absent token is not an error; the returned token is empty.
func (s *CredentialStore) Token() (string, error) {
	if token := strings.TrimSpace(os.Getenv(TokenEnv)); token != "" {
		return token, nil
	}

	token, err := keyring.Get(s.service, tokenKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to retrieve token from credential store: %w", err)
	}
	return strings.TrimSpace(token), nil
}

// Store saves token, replacing any stored token.
func (s *CredentialStore) Store(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return fmt.Errorf("token must not contain whitespace")
	}

	if err := keyring.Set(s.service, tokenKey, token); err != nil {
		return fmt.Errorf("failed to store token in credential store: %w", err)
	}
	return nil
}

// Delete removes the stored token. Deleting an absent token succeeds.
func (s *CredentialStore) Delete() error {
	err := keyring.Delete(s.service, tokenKey)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from credential store: %w", err)
	}
	return nil
}
