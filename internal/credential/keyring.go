package credential

import (
	"errors"
	"fmt"
	"strings"

	"github.com/99designs/keyring"
)

const serviceName = "stepwise"

// APIKeyName is the keyring entry holding the OpenAI API key.
const APIKeyName = "openai-api-key"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/stepwise/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("stepwise-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key from the system keyring. Removing a
// key that is not stored is not an error.
func Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}

// keyringGet is swapped out in tests.
var keyringGet = Get

// LookupAPIKey returns the API key to use: the configured value (from the
// environment or config file) when set, otherwise the keyring entry when
// useKeyring is true. It returns "" when no key is available, which callers
// treat as placeholder mode.
func LookupAPIKey(configured string, useKeyring bool) string {
	if key := strings.TrimSpace(configured); key != "" {
		return key
	}
	if !useKeyring {
		return ""
	}

	key, err := keyringGet(APIKeyName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(key)
}
