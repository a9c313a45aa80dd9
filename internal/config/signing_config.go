package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	appIDVar            = "APP_ID"
	signingKeyFileVar   = "SIGNING_KEY_FILE"
	signingKeyVar       = "SIGNING_KEY"
	signingKeyIDVar     = "SIGNING_KEY_ID"
	signingAlgorithmVar = "SIGNING_ALGORITHM"
	tokenExpiryVar      = "TOKEN_EXPIRY"
	signTimeoutVar      = "SIGN_TIMEOUT"
)

// SigningConfig describes the key material and token lifetimes used to sign claims.
type SigningConfig interface {
	GetAppID() string
	GetSigningKey() (string, error)
	GetSigningKeyID() string
	GetSigningAlgorithm() string
	GetTokenExpiry() time.Duration
	GetSignTimeout() time.Duration
}

type Signing struct{}

var _ SigningConfig = Signing{}

func (Signing) GetAppID() string {
	return GetEnv(appIDVar, "")
}

// GetSigningKey returns the PEM private key from SIGNING_KEY_FILE, or SIGNING_KEY when no file is
// configured. An empty result with a nil error means no key is configured.
func (Signing) GetSigningKey() (string, error) {
	if path := GetEnv(signingKeyFileVar, ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(err, "[Signing GetSigningKey] failed to read %s", path)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return GetEnv(signingKeyVar, ""), nil
}

func (Signing) GetSigningKeyID() string {
	return GetEnv(signingKeyIDVar, "kin-sign-1")
}

// GetSigningAlgorithm is empty unless overridden; the key type then picks the default.
func (Signing) GetSigningAlgorithm() string {
	return GetEnv(signingAlgorithmVar, "")
}

func (Signing) GetTokenExpiry() time.Duration {
	return GetDuration(tokenExpiryVar, 24*time.Hour)
}

func (Signing) GetSignTimeout() time.Duration {
	return GetDuration(signTimeoutVar, 10*time.Second)
}
