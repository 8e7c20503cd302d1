package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	defaultSecretService = "pennywise"
	defaultSecretUser    = "api_token"
)

// ErrNoToken means no credential is stored anywhere we looked.
var ErrNoToken = errors.New("no API token stored")

var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

// LoadToken loads the service bearer token.
//
// Order of precedence:
// 1) PENNYWISE_TOKEN environment variable.
// 2) System credential store item referenced by service/account.
func LoadToken() (string, error) {
	if token := strings.TrimSpace(os.Getenv("PENNYWISE_TOKEN")); token != "" {
		return token, nil
	}

	token, err := loadFromKeyring()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", err
	}

	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// SaveToken stores the bearer token in the system credential store.
func SaveToken(token string) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return errors.New("API token cannot be empty")
	}

	service := envOrDefault("PENNYWISE_KEYCHAIN_SERVICE", defaultSecretService)
	account := envOrDefault("PENNYWISE_KEYCHAIN_ACCOUNT", defaultSecretUser)

	if err := keyringSet(service, account, trimmed); err != nil {
		return fmt.Errorf(
			"failed to store keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}

	return nil
}

// ClearToken removes the stored token. A missing item is not an error.
func ClearToken() error {
	service := envOrDefault("PENNYWISE_KEYCHAIN_SERVICE", defaultSecretService)
	account := envOrDefault("PENNYWISE_KEYCHAIN_ACCOUNT", defaultSecretUser)

	if err := keyringDelete(service, account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf(
			"failed to delete keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}

	return nil
}

func loadFromKeyring() (string, error) {
	service := envOrDefault("PENNYWISE_KEYCHAIN_SERVICE", defaultSecretService)
	account := envOrDefault("PENNYWISE_KEYCHAIN_ACCOUNT", defaultSecretUser)

	secret, err := keyringGet(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf(
			"failed to read keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}

	return strings.TrimSpace(secret), nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
