package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "jobmatch"

	appIDAccount  = "adzuna_app_id"
	appKeyAccount = "adzuna_app_key"

	appIDEnv  = "ADZUNA_APP_ID"
	appKeyEnv = "ADZUNA_APP_KEY"
)

// ErrAdzunaCredentials is returned when no credential source yields a pair.
var ErrAdzunaCredentials = errors.New(
	"adzuna credentials not found (set ADZUNA_APP_ID/ADZUNA_APP_KEY or store them in the keychain)")

// AdzunaCredentials resolves the Adzuna app id/key pair: environment first,
// OS keychain second.
func AdzunaCredentials() (appID, appKey string, err error) {
	appID = strings.TrimSpace(os.Getenv(appIDEnv))
	appKey = strings.TrimSpace(os.Getenv(appKeyEnv))
	if appID != "" && appKey != "" {
		return appID, appKey, nil
	}

	if appID == "" {
		if v, kerr := keyring.Get(KeyringService, appIDAccount); kerr == nil {
			appID = strings.TrimSpace(v)
		}
	}
	if appKey == "" {
		if v, kerr := keyring.Get(KeyringService, appKeyAccount); kerr == nil {
			appKey = strings.TrimSpace(v)
		}
	}

	if appID == "" || appKey == "" {
		return "", "", ErrAdzunaCredentials
	}
	return appID, appKey, nil
}

// SetAdzunaCredentials stores the pair in the OS keychain.
func SetAdzunaCredentials(appID, appKey string) error {
	if strings.TrimSpace(appID) == "" || strings.TrimSpace(appKey) == "" {
		return errors.New("app id and app key must be non-empty")
	}
	if err := keyring.Set(KeyringService, appIDAccount, appID); err != nil {
		return err
	}
	return keyring.Set(KeyringService, appKeyAccount, appKey)
}

// DeleteAdzunaCredentials removes the pair from the OS keychain.
func DeleteAdzunaCredentials() error {
	if err := keyring.Delete(KeyringService, appIDAccount); err != nil {
		return err
	}
	return keyring.Delete(KeyringService, appKeyAccount)
}
