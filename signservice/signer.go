package signservice

import (
	"github.com/google/uuid"
	"github.com/jrsteele09/go-kin-bridge/internal/config"
	"github.com/jrsteele09/go-kin-bridge/token"
	"github.com/jrsteele09/go-kin-bridge/token/keys"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// NewSignerFromConfig loads the configured signing key. Outside DEV a missing key is an error; in
// DEV an ephemeral RSA key is generated so the service can run without setup.
func NewSignerFromConfig(cfg config.Config) (*token.KeyPairSigner, error) {
	if cfg.GetAppID() == "" {
		return nil, errors.New("[NewSignerFromConfig] APP_ID must be set")
	}
	pemKey, err := cfg.GetSigningKey()
	if err != nil {
		return nil, err
	}

	var keyPair *keys.KeyPair
	switch {
	case pemKey != "":
		keyPair, err = keys.LoadKeyPair(cfg.GetSigningKeyID(), pemKey, cfg.GetSigningAlgorithm())
		if err != nil {
			return nil, errors.Wrap(err, "[NewSignerFromConfig] invalid signing key")
		}
	case cfg.GetEnv() == "DEV":
		keyID := "dev-" + uuid.NewString()
		keyPair, err = keys.GenerateRSAKeyPair(keyID, 2048)
		if err != nil {
			return nil, errors.Wrap(err, "[NewSignerFromConfig] failed to generate key")
		}
		log.Warn().Str("kid", keyID).Msg("no signing key configured, using an ephemeral key")
	default:
		return nil, errors.New("[NewSignerFromConfig] SIGNING_KEY or SIGNING_KEY_FILE must be set")
	}

	return token.NewKeyPairSigner(keyPair, cfg.GetAppID(), token.WithTokenExpiry(cfg.GetTokenExpiry())), nil
}
