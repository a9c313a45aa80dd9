package claims_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/jrsteele09/go-kin-bridge/claims"
	"github.com/jrsteele09/go-kin-bridge/internal/utils"
	"github.com/jrsteele09/go-kin-bridge/kinerrors"
	"github.com/stretchr/testify/require"
)

func offerRequest() claims.OfferRequest {
	return claims.OfferRequest{
		OfferID:          "offer-1",
		OfferAmount:      utils.Ptr(100.0),
		OfferTitle:       "Demo",
		OfferDescription: "A demo offer",
		RecipientUserID:  "user-1",
	}
}

func sub(t *testing.T, m map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := m[key].(map[string]any)
	require.True(t, ok, "payload has no %q object", key)
	return v
}

func TestBuildRegister(t *testing.T) {
	t.Run("user only", func(t *testing.T) {
		c, err := claims.BuildRegister(claims.RegisterRequest{UserID: "u1"})
		require.NoError(t, err)
		require.Equal(t, claims.SubjectRegister, c.Subject)
		require.Equal(t, map[string]any{"user_id": "u1"}, c.Payload)
	})

	t.Run("with device", func(t *testing.T) {
		c, err := claims.BuildRegister(claims.RegisterRequest{UserID: "u1", DeviceID: "d1"})
		require.NoError(t, err)
		require.Equal(t, "d1", c.Payload["device_id"])
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := claims.BuildRegister(claims.RegisterRequest{})
		require.True(t, errors.Is(err, kinerrors.ErrValidation))
		require.Contains(t, err.Error(), "userId must not be empty")
	})
}

func TestBuildEarnAndSpend(t *testing.T) {
	t.Run("earn uses recipient", func(t *testing.T) {
		c, err := claims.BuildEarn(offerRequest())
		require.NoError(t, err)
		require.Equal(t, claims.SubjectEarn, c.Subject)
		require.NotContains(t, c.Payload, "sender")

		recipient := sub(t, c.Payload, "recipient")
		require.Equal(t, "user-1", recipient["user_id"])
		require.Equal(t, "Demo", recipient["title"])
		require.Equal(t, "A demo offer", recipient["description"])

		offer := sub(t, c.Payload, "offer")
		require.Equal(t, "offer-1", offer["id"])
		require.Equal(t, int64(100), offer["amount"])
	})

	t.Run("spend uses sender", func(t *testing.T) {
		c, err := claims.BuildSpend(offerRequest())
		require.NoError(t, err)
		require.Equal(t, claims.SubjectSpend, c.Subject)
		require.NotContains(t, c.Payload, "recipient")
		require.Equal(t, "user-1", sub(t, c.Payload, "sender")["user_id"])
	})

	t.Run("fractional amount is truncated", func(t *testing.T) {
		req := offerRequest()
		req.OfferAmount = utils.Ptr(99.9)
		c, err := claims.BuildEarn(req)
		require.NoError(t, err)
		require.Equal(t, int64(99), sub(t, c.Payload, "offer")["amount"])
	})

	t.Run("zero amount is present", func(t *testing.T) {
		req := offerRequest()
		req.OfferAmount = utils.Ptr(0.0)
		_, err := claims.BuildSpend(req)
		require.NoError(t, err)
	})

	missingCases := []struct {
		name   string
		mutate func(*claims.OfferRequest)
		field  string
	}{
		{"offer id", func(r *claims.OfferRequest) { r.OfferID = "" }, "offerId"},
		{"amount", func(r *claims.OfferRequest) { r.OfferAmount = nil }, "offerAmount"},
		{"title", func(r *claims.OfferRequest) { r.OfferTitle = "" }, "offerTitle"},
		{"description", func(r *claims.OfferRequest) { r.OfferDescription = "" }, "offerDescription"},
		{"recipient", func(r *claims.OfferRequest) { r.RecipientUserID = "" }, "recipientUserId"},
	}
	for _, tc := range missingCases {
		t.Run("missing "+tc.name, func(t *testing.T) {
			req := offerRequest()
			tc.mutate(&req)
			c, err := claims.BuildEarn(req)
			require.True(t, errors.Is(err, kinerrors.ErrValidation))
			require.Contains(t, err.Error(), tc.field+" must not be empty")
			require.Nil(t, c.Payload)
		})
	}
}

func TestBuildPayToUser(t *testing.T) {
	req := claims.PayToUserRequest{
		ToUserID:    "bob-id",
		OfferID:     "p2p-1",
		OfferAmount: utils.Ptr(12.7),
	}

	t.Run("explicit usernames", func(t *testing.T) {
		r := req
		r.ToUsername = "bob"
		r.FromUsername = "alice"
		c, err := claims.BuildPayToUser(r, claims.Identity{UserID: "alice-id", Username: "ally"})
		require.NoError(t, err)
		require.Equal(t, claims.SubjectPayToUser, c.Subject)

		sender := sub(t, c.Payload, "sender")
		require.Equal(t, "Pay to bob", sender["title"])
		require.Equal(t, "Kin transfer to bob", sender["description"])
		require.Equal(t, "alice-id", sender["user_id"])

		recipient := sub(t, c.Payload, "recipient")
		require.Equal(t, "alice paid you", recipient["title"])
		require.Equal(t, "Kin transfer from alice", recipient["description"])
		require.Equal(t, "bob-id", recipient["user_id"])

		require.Equal(t, int64(12), sub(t, c.Payload, "offer")["amount"])
	})

	t.Run("usernames fall back to session identity", func(t *testing.T) {
		c, err := claims.BuildPayToUser(req, claims.Identity{UserID: "alice-id", Username: "ally"})
		require.NoError(t, err)
		require.Equal(t, "Pay to bob-id", sub(t, c.Payload, "sender")["title"])
		require.Equal(t, "ally paid you", sub(t, c.Payload, "recipient")["title"])
	})

	t.Run("from username falls back to user id", func(t *testing.T) {
		c, err := claims.BuildPayToUser(req, claims.Identity{UserID: "alice-id"})
		require.NoError(t, err)
		require.Equal(t, "Kin transfer from alice-id", sub(t, c.Payload, "recipient")["description"])
	})

	t.Run("missing to user", func(t *testing.T) {
		r := req
		r.ToUserID = ""
		_, err := claims.BuildPayToUser(r, claims.Identity{UserID: "alice-id"})
		require.True(t, errors.Is(err, kinerrors.ErrValidation))
		require.Contains(t, err.Error(), "toUserId")
	})
}

func TestClaimJSON(t *testing.T) {
	c, err := claims.BuildRegister(claims.RegisterRequest{UserID: "u1"})
	require.NoError(t, err)

	body, err := json.Marshal(c)
	require.NoError(t, err)
	require.JSONEq(t, `{"subject":"register","payload":{"user_id":"u1"}}`, string(body))
}

func TestAmount(t *testing.T) {
	require.Equal(t, int64(99), claims.Amount(99.9))
	require.Equal(t, int64(-1), claims.Amount(-1.7))
	require.Equal(t, int64(100), claims.Amount(100))

	t.Run("saturates outside the int64 range", func(t *testing.T) {
		require.Equal(t, int64(math.MaxInt64), claims.Amount(1e19))
		require.Equal(t, int64(math.MaxInt64), claims.Amount(1e30))
		require.Equal(t, int64(math.MinInt64), claims.Amount(-1e30))
		require.Equal(t, int64(math.MaxInt64), claims.Amount(math.Inf(1)))
		require.Equal(t, int64(0), claims.Amount(math.NaN()))
	})
}

func TestBuildEarn_LargeAndNonFiniteAmounts(t *testing.T) {
	request := func(amount float64) claims.OfferRequest {
		return claims.OfferRequest{
			OfferID:          "offer-1",
			OfferAmount:      utils.Ptr(amount),
			OfferTitle:       "Title",
			OfferDescription: "Description",
			RecipientUserID:  "user-1",
		}
	}

	t.Run("large amount stays positive", func(t *testing.T) {
		c, err := claims.BuildEarn(request(1e19))
		require.NoError(t, err)
		offer := c.Payload["offer"].(map[string]any)
		require.Equal(t, int64(math.MaxInt64), offer["amount"])
	})

	for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		t.Run("rejects non-finite", func(t *testing.T) {
			_, err := claims.BuildEarn(request(amount))
			require.True(t, errors.Is(err, kinerrors.ErrValidation))
			require.Contains(t, err.Error(), "offerAmount must be a finite number")
		})
	}

	t.Run("pay to user rejects non-finite", func(t *testing.T) {
		_, err := claims.BuildPayToUser(claims.PayToUserRequest{
			ToUserID: "u2", OfferID: "p1", OfferAmount: utils.Ptr(math.Inf(1)),
		}, claims.Identity{UserID: "u1"})
		require.True(t, errors.Is(err, kinerrors.ErrValidation))
	})
}
