package token

import (
	"context"

	"github.com/jrsteele09/go-kin-bridge/kinerrors"
	"github.com/jrsteele09/go-kin-bridge/session"
	"github.com/jrsteele09/go-kin-bridge/token/keys"
	"golang.org/x/oauth2/clientcredentials"
)

// NewSignerForCredentials selects the signing strategy once for a set of credentials. Local key
// material wins over a signing service URL; with neither, the returned signer fails every call.
func NewSignerForCredentials(creds session.Credentials, options ...Option) (Signer, error) {
	switch {
	case creds.HasKeyPair():
		keyPair, err := keys.LoadKeyPair(creds.KeyPairIdentifier, creds.PrivateKey, creds.SigningAlgorithm)
		if err != nil {
			return nil, kinerrors.Wrap(kinerrors.Configuration, err, "invalid privateKey")
		}
		return NewKeyPairSigner(keyPair, creds.AppID, options...), nil

	case creds.SigningServiceURL != "":
		opts := []Option{WithAuthHeader(creds.SigningServiceAuthHeader)}
		if o := creds.SigningServiceOAuth2; o != nil {
			cc := clientcredentials.Config{
				ClientID:     o.ClientID,
				ClientSecret: o.ClientSecret,
				TokenURL:     o.TokenURL,
				Scopes:       o.Scopes,
			}
			opts = append(opts, WithTokenSource(cc.TokenSource(context.Background())))
		}
		return NewRemoteSigner(creds.SigningServiceURL, append(opts, options...)...), nil

	default:
		return unavailableSigner{}, nil
	}
}
