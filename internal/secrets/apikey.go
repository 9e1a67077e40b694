package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Groups this app's secrets in the OS keychain.
	KeyringService = "leadqual"
	keyringAccount = "oracle-api-key"

	envVar = "GROQ_API_KEY"
)

// OracleAPIKey resolves the optional oracle credential: OS keychain
// first, environment second. An empty result is a supported mode (the
// engine runs rule-only), so no error is returned.
func OracleAPIKey() string {
	if pw, err := keyring.Get(KeyringService, keyringAccount); err == nil && strings.TrimSpace(pw) != "" {
		return strings.TrimSpace(pw)
	}
	return strings.TrimSpace(os.Getenv(envVar))
}

func SetOracleAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, key)
}

func DeleteOracleAPIKey() error {
	return keyring.Delete(KeyringService, keyringAccount)
}
