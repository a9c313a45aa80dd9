package token

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIntrospection describes a token issued by a KeyPairSigner. When Active is false the other
// fields may not be populated.
type TokenIntrospection struct {
	Active bool    `json:"active"`
	Iss    *string `json:"iss,omitempty"`
	Sub    *string `json:"sub,omitempty"`
	Kid    *string `json:"kid,omitempty"`
	Iat    *int64  `json:"iat,omitempty"`
	Exp    *int64  `json:"exp,omitempty"`
}

// Introspect reports whether rawToken was signed by this signer, is unexpired and carries this
// signer's issuer. Any parse or verification failure yields an inactive result.
func (a *KeyPairSigner) Introspect(rawToken string) *TokenIntrospection {
	if strings.TrimSpace(rawToken) == "" {
		return &TokenIntrospection{Active: false}
	}

	mapClaims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(rawToken, mapClaims, func(t *jwt.Token) (any, error) {
		return a.keyPair.PublicKey, nil
	},
		jwt.WithValidMethods([]string{a.keyPair.GetSigningMethod().Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.nowFunc),
	)
	if err != nil || !token.Valid {
		return &TokenIntrospection{Active: false}
	}

	iss, _ := mapClaims["iss"].(string)
	sub, _ := mapClaims["sub"].(string)
	kid, _ := token.Header["kid"].(string)
	iat, _ := mapClaims["iat"].(float64)
	exp, _ := mapClaims["exp"].(float64)
	iatInt := int64(iat)
	expInt := int64(exp)

	return &TokenIntrospection{
		Active: true,
		Iss:    &iss,
		Sub:    &sub,
		Kid:    &kid,
		Iat:    &iatInt,
		Exp:    &expInt,
	}
}
