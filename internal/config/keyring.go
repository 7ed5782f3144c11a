package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Keyring coordinates of the stored access key
const (
	KeyringService = "landing"
	KeyringUser    = "web3forms_access_key"
)

// ErrNoStoredKey is returned when the keyring holds no access key
var ErrNoStoredKey = errors.New("no access key in keyring")

// StoreAccessKey saves key in the OS keyring
func StoreAccessKey(key string) error {
	if key == "" {
		return fmt.Errorf("access key cannot be empty")
	}
	return keyring.Set(KeyringService, KeyringUser, key)
}

// LoadAccessKey reads the access key from the OS keyring
func LoadAccessKey() (string, error) {
	key, err := keyring.Get(KeyringService, KeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoStoredKey
	}
	if err != nil {
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	return key, nil
}

// DeleteAccessKey removes the stored access key
func DeleteAccessKey() error {
	err := keyring.Delete(KeyringService, KeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNoStoredKey
	}
	return err
}

// MaskKey shows only the last four characters of key
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
