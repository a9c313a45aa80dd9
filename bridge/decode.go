package bridge

import (
	"github.com/jrsteele09/go-kin-bridge/claims"
	"github.com/jrsteele09/go-kin-bridge/internal/utils"
	"github.com/jrsteele09/go-kin-bridge/kinerrors"
	"github.com/jrsteele09/go-kin-bridge/session"
)

// optionReader collects the first type error while reading an option map so decoders stay flat.
type optionReader struct {
	options utils.Options
	err     error
}

func newOptionReader(options map[string]any) *optionReader {
	return &optionReader{options: utils.Options(options)}
}

func (r *optionReader) string(key string) string {
	if r.err != nil {
		return ""
	}
	v, _, err := r.options.String(key)
	r.fail(err)
	return v
}

// stringOr returns the first present key.
func (r *optionReader) stringOr(keys ...string) string {
	for _, key := range keys {
		if r.options.Has(key) {
			return r.string(key)
		}
	}
	return ""
}

func (r *optionReader) bool(key string) bool {
	return utils.Value(r.optionalBool(key))
}

func (r *optionReader) optionalBool(key string) *bool {
	if r.err != nil {
		return nil
	}
	v, ok, err := r.options.Bool(key)
	r.fail(err)
	if !ok || err != nil {
		return nil
	}
	return &v
}

func (r *optionReader) number(key string) *float64 {
	if r.err != nil {
		return nil
	}
	v, ok, err := r.options.Number(key)
	r.fail(err)
	if !ok || err != nil {
		return nil
	}
	return &v
}

func (r *optionReader) stringSlice(key string) []string {
	if r.err != nil || !r.options.Has(key) {
		return nil
	}
	switch v := r.options[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				r.err = kinerrors.Newf(kinerrors.Validation, "%s must be a list of strings, got %T", key, item)
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		r.err = kinerrors.Newf(kinerrors.Validation, "%s must be a list of strings, got %T", key, v)
		return nil
	}
}

func (r *optionReader) object(key string) map[string]any {
	if r.err != nil || !r.options.Has(key) {
		return nil
	}
	obj, ok := r.options[key].(map[string]any)
	if !ok {
		r.err = kinerrors.Newf(kinerrors.Validation, "%s must be an object, got %T", key, r.options[key])
		return nil
	}
	return obj
}

func (r *optionReader) fail(err error) {
	if err != nil && r.err == nil {
		r.err = kinerrors.Wrap(kinerrors.Validation, err, "")
	}
}

// DecodeCredentials reads setCredentials options. jwtServiceUrl is accepted as an older name for
// signingServiceUrl.
func DecodeCredentials(options map[string]any) (session.Credentials, error) {
	r := newOptionReader(options)
	creds := session.Credentials{
		APIKey:                   r.string("apiKey"),
		AppID:                    r.string("appId"),
		PrivateKey:               r.string("privateKey"),
		KeyPairIdentifier:        r.string("keyPairIdentifier"),
		SigningAlgorithm:         r.string("signingAlgorithm"),
		UseJWT:                   r.bool("useJWT"),
		SigningServiceURL:        r.stringOr("signingServiceUrl", "jwtServiceUrl"),
		SigningServiceAuthHeader: r.string("signingServiceAuthHeader"),
		Debug:                    r.bool("debug"),
	}
	if oauth := r.object("signingServiceOAuth2"); oauth != nil {
		o := newOptionReader(oauth)
		creds.SigningServiceOAuth2 = &session.OAuth2ClientCredentials{
			ClientID:     o.string("clientId"),
			ClientSecret: o.string("clientSecret"),
			TokenURL:     o.string("tokenUrl"),
			Scopes:       o.stringSlice("scopes"),
		}
		r.fail(o.err)
	}
	return creds, r.err
}

func DecodeStartRequest(options map[string]any) (StartRequest, error) {
	r := newOptionReader(options)
	req := StartRequest{
		UserID:      r.string("userId"),
		Username:    r.string("username"),
		Environment: r.string("environment"),
	}
	return req, r.err
}

// DecodeOfferRequest reads earn and spend options.
func DecodeOfferRequest(options map[string]any) (claims.OfferRequest, error) {
	r := newOptionReader(options)
	req := claims.OfferRequest{
		OfferID:          r.string("offerId"),
		OfferAmount:      r.number("offerAmount"),
		OfferTitle:       r.string("offerTitle"),
		OfferDescription: r.string("offerDescription"),
		RecipientUserID:  r.string("recipientUserId"),
	}
	return req, r.err
}

func DecodePayToUserRequest(options map[string]any) (claims.PayToUserRequest, error) {
	r := newOptionReader(options)
	req := claims.PayToUserRequest{
		ToUserID:     r.string("toUserId"),
		OfferID:      r.string("offerId"),
		OfferAmount:  r.number("offerAmount"),
		ToUsername:   r.string("toUsername"),
		FromUsername: r.string("fromUsername"),
	}
	return req, r.err
}

func DecodeNativeOfferRequest(options map[string]any) (NativeOfferRequest, error) {
	r := newOptionReader(options)
	req := NativeOfferRequest{
		OfferID:          r.string("offerId"),
		OfferAmount:      r.number("offerAmount"),
		OfferTitle:       r.string("offerTitle"),
		OfferDescription: r.string("offerDescription"),
		OfferImageURL:    r.string("offerImageURL"),
		IsModal:          r.optionalBool("isModal"),
	}
	return req, r.err
}

// DecodeUserID reads the userId option of hasAccount.
func DecodeUserID(options map[string]any) (string, error) {
	r := newOptionReader(options)
	userID := r.string("userId")
	return userID, r.err
}

// DecodeOfferID reads the offerId option of removeSpendOffer.
func DecodeOfferID(options map[string]any) (string, error) {
	r := newOptionReader(options)
	offerID := r.string("offerId")
	return offerID, r.err
}
