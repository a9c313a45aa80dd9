package token

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-kin-bridge/claims"
	"github.com/jrsteele09/go-kin-bridge/kinerrors"
	"github.com/jrsteele09/go-kin-bridge/token/keys"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	DefaultTokenExpiry    = 24 * time.Hour
	DefaultRequestTimeout = 10 * time.Second
)

// Strategy names how a Signer obtains signatures.
type Strategy string

const (
	StrategyLocal       Strategy = "local"
	StrategyRemote      Strategy = "remote"
	StrategyUnavailable Strategy = "none"
)

// Signer turns a claim into a compact signed token. Implementations may block on network I/O
// and must honour ctx.
type Signer interface {
	Sign(ctx context.Context, claim claims.Claim) (string, error)

	// Strategy reports which signing path this signer uses
	Strategy() Strategy
}

type settings struct {
	expiry      time.Duration
	timeout     time.Duration
	nowFunc     func() time.Time
	httpClient  *http.Client
	authHeader  string
	tokenSource oauth2.TokenSource
}

// Option configures a Signer.
type Option func(*settings)

// WithTokenExpiry sets the lifetime of locally signed tokens (default 24h).
func WithTokenExpiry(expiry time.Duration) Option {
	return func(s *settings) {
		s.expiry = expiry
	}
}

// WithTimeout bounds each remote signing request (default 10s).
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

func WithNowFunc(now func() time.Time) Option {
	return func(s *settings) {
		s.nowFunc = now
	}
}

// WithHTTPClient replaces the client used for remote signing. Its Timeout is overwritten by the
// configured request timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		s.httpClient = client
	}
}

// WithAuthHeader sends value as the authorization header of remote signing requests.
func WithAuthHeader(value string) Option {
	return func(s *settings) {
		s.authHeader = value
	}
}

// WithTokenSource authorizes remote signing requests with a bearer token from ts. It takes
// precedence over WithAuthHeader.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(s *settings) {
		s.tokenSource = ts
	}
}

func newSettings(options []Option) *settings {
	s := &settings{}
	for _, opt := range options {
		opt(s)
	}
	if s.expiry <= 0 {
		s.expiry = DefaultTokenExpiry
	}
	if s.timeout <= 0 {
		s.timeout = DefaultRequestTimeout
	}
	if s.nowFunc == nil {
		s.nowFunc = time.Now
	}
	return s
}

// KeyPairSigner signs claims locally with an RSA or ECDSA key pair.
type KeyPairSigner struct {
	keyPair *keys.KeyPair
	issuer  string
	expiry  time.Duration
	nowFunc func() time.Time
}

// NewKeyPairSigner creates a local signer; issuer is the application id.
func NewKeyPairSigner(keyPair *keys.KeyPair, issuer string, options ...Option) *KeyPairSigner {
	s := newSettings(options)
	return &KeyPairSigner{
		keyPair: keyPair,
		issuer:  issuer,
		expiry:  s.expiry,
		nowFunc: s.nowFunc,
	}
}

// Sign merges the claim payload with the standard claims. Standard claims are written last so a
// payload can never override them.
func (a *KeyPairSigner) Sign(_ context.Context, claim claims.Claim) (string, error) {
	mapClaims := jwt.MapClaims{}
	for k, v := range claim.Payload {
		mapClaims[k] = v
	}
	now := a.nowFunc()
	mapClaims["iss"] = a.issuer
	mapClaims["iat"] = now.Unix()
	mapClaims["exp"] = now.Add(a.expiry).Unix()
	mapClaims["sub"] = string(claim.Subject)

	token := jwt.NewWithClaims(a.keyPair.GetSigningMethod(), mapClaims)
	token.Header["kid"] = a.keyPair.KeyID

	signedToken, err := token.SignedString(a.keyPair.PrivateKey)
	if err != nil {
		return "", kinerrors.Wrap(kinerrors.Signing, errors.Wrap(err, "failed to sign token with asymmetric key"), "JWT encoding failed")
	}
	return signedToken, nil
}

func (a *KeyPairSigner) Strategy() Strategy {
	return StrategyLocal
}

// KeyPair exposes the signing key material, e.g. to publish a JWKS.
func (a *KeyPairSigner) KeyPair() *keys.KeyPair {
	return a.keyPair
}

// GetJWKS returns the JSON Web Key Set for the signing key
func (a *KeyPairSigner) GetJWKS() (*keys.JWKS, error) {
	jwk, err := a.keyPair.ToJWK()
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert key to JWK")
	}

	return &keys.JWKS{
		Keys: []keys.JWK{*jwk},
	}, nil
}

type unavailableSigner struct{}

func (unavailableSigner) Sign(context.Context, claims.Claim) (string, error) {
	return "", kinerrors.New(kinerrors.Signing, "local JWT signing is not supported, set a signingServiceUrl")
}

func (unavailableSigner) Strategy() Strategy {
	return StrategyUnavailable
}
