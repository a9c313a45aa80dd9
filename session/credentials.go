package session

import (
	"github.com/jrsteele09/go-kin-bridge/kinerrors"
)

// OAuth2ClientCredentials configures a client credentials grant whose access token is sent to the
// remote signing service as a bearer authorization header.
type OAuth2ClientCredentials struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
}

// Credentials are the signing and identity settings supplied by the host application.
type Credentials struct {
	APIKey            string
	AppID             string
	PrivateKey        string // PEM, or base64 wrapped PEM
	KeyPairIdentifier string // "kid" header of locally signed tokens
	SigningAlgorithm  string // optional override, e.g. RS256
	UseJWT            bool

	SigningServiceURL        string
	SigningServiceAuthHeader string
	SigningServiceOAuth2     *OAuth2ClientCredentials

	Debug bool
}

// HasKeyPair reports whether local signing material is configured.
func (c Credentials) HasKeyPair() bool {
	return c.PrivateKey != "" && c.KeyPairIdentifier != ""
}

// Validate checks the credential invariants without touching any session state.
func (c Credentials) Validate() error {
	if c.AppID == "" {
		return kinerrors.New(kinerrors.Configuration, "appId must not be empty")
	}
	if !c.UseJWT && c.APIKey == "" {
		return kinerrors.New(kinerrors.Configuration, "apiKey must not be empty when useJWT is false")
	}
	if c.UseJWT && !c.HasKeyPair() && c.SigningServiceURL == "" {
		return kinerrors.New(kinerrors.Configuration,
			"privateKey and keyPairIdentifier must not be empty when useJWT is true OR set signingServiceUrl")
	}
	if o := c.SigningServiceOAuth2; o != nil && (o.ClientID == "" || o.TokenURL == "") {
		return kinerrors.New(kinerrors.Configuration, "signingServiceOAuth2 requires clientId and tokenUrl")
	}
	return nil
}

const redactedValue = "[redacted]"

// Redacted returns a copy safe to log.
func (c Credentials) Redacted() Credentials {
	if c.PrivateKey != "" {
		c.PrivateKey = redactedValue
	}
	if c.SigningServiceAuthHeader != "" {
		c.SigningServiceAuthHeader = redactedValue
	}
	if c.APIKey != "" {
		c.APIKey = redactedValue
	}
	if c.SigningServiceOAuth2 != nil {
		o := *c.SigningServiceOAuth2
		if o.ClientSecret != "" {
			o.ClientSecret = redactedValue
		}
		c.SigningServiceOAuth2 = &o
	}
	return c
}
