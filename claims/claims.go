package claims

import (
	"fmt"
	"math"

	"github.com/jrsteele09/go-kin-bridge/internal/utils"
	"github.com/jrsteele09/go-kin-bridge/kinerrors"
)

// Subject names the authorization intent of a claim.
type Subject string

const (
	SubjectRegister  Subject = "register"
	SubjectEarn      Subject = "earn"
	SubjectSpend     Subject = "spend"
	SubjectPayToUser Subject = "pay_to_user"
)

// Valid reports whether s is one of the known subjects.
func (s Subject) Valid() bool {
	switch s {
	case SubjectRegister, SubjectEarn, SubjectSpend, SubjectPayToUser:
		return true
	}
	return false
}

// Claim is an unsigned authorization intent. It marshals to the exact body the remote
// signing service expects.
type Claim struct {
	Subject Subject        `json:"subject"`
	Payload map[string]any `json:"payload"`
}

// Identity is the logged-in user a claim is built on behalf of.
type Identity struct {
	UserID   string
	Username string
}

type RegisterRequest struct {
	UserID   string
	DeviceID string
}

// OfferRequest carries the caller inputs shared by earn and spend.
type OfferRequest struct {
	OfferID          string
	OfferAmount      *float64
	OfferTitle       string
	OfferDescription string
	RecipientUserID  string
}

type PayToUserRequest struct {
	ToUserID     string
	OfferID      string
	OfferAmount  *float64
	ToUsername   string
	FromUsername string
}

// Amount truncates a caller supplied amount toward zero, saturating at the int64 range.
// NaN maps to zero.
func Amount(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= float64(math.MaxInt64):
		return math.MaxInt64
	case v <= float64(math.MinInt64):
		return math.MinInt64
	}
	return int64(math.Trunc(v))
}

func finite(v *float64) bool {
	return !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func notFinite(field string) error {
	return kinerrors.Newf(kinerrors.Validation, "%s must be a finite number", field)
}

func missing(field string) error {
	return kinerrors.Newf(kinerrors.Validation, "%s must not be empty", field)
}

// BuildRegister builds the onboarding claim for userID.
func BuildRegister(req RegisterRequest) (Claim, error) {
	if req.UserID == "" {
		return Claim{}, missing("userId")
	}
	payload := map[string]any{"user_id": req.UserID}
	if req.DeviceID != "" {
		payload["device_id"] = req.DeviceID
	}
	return Claim{Subject: SubjectRegister, Payload: payload}, nil
}

// BuildEarn builds a claim paying RecipientUserID; the narrative sits under "recipient".
func BuildEarn(req OfferRequest) (Claim, error) {
	return buildOffer(SubjectEarn, "recipient", req)
}

// BuildSpend builds a claim charging RecipientUserID; the narrative sits under "sender".
func BuildSpend(req OfferRequest) (Claim, error) {
	return buildOffer(SubjectSpend, "sender", req)
}

func buildOffer(subject Subject, sideKey string, req OfferRequest) (Claim, error) {
	if err := req.Validate(); err != nil {
		return Claim{}, err
	}
	return Claim{
		Subject: subject,
		Payload: map[string]any{
			"offer": offer(req.OfferID, *req.OfferAmount),
			sideKey: party(req.OfferTitle, req.OfferDescription, req.RecipientUserID),
		},
	}, nil
}

// Validate checks the required fields in the order a caller would supply them.
func (req OfferRequest) Validate() error {
	switch {
	case req.OfferID == "":
		return missing("offerId")
	case req.OfferAmount == nil:
		return missing("offerAmount")
	case !finite(req.OfferAmount):
		return notFinite("offerAmount")
	case req.OfferTitle == "":
		return missing("offerTitle")
	case req.OfferDescription == "":
		return missing("offerDescription")
	case req.RecipientUserID == "":
		return missing("recipientUserId")
	}
	return nil
}

func (req PayToUserRequest) Validate() error {
	switch {
	case req.ToUserID == "":
		return missing("toUserId")
	case req.OfferID == "":
		return missing("offerId")
	case req.OfferAmount == nil:
		return missing("offerAmount")
	case !finite(req.OfferAmount):
		return notFinite("offerAmount")
	}
	return nil
}

// BuildPayToUser builds a peer transfer claim from the logged-in identity to ToUserID.
func BuildPayToUser(req PayToUserRequest, from Identity) (Claim, error) {
	if err := req.Validate(); err != nil {
		return Claim{}, err
	}
	if from.UserID == "" {
		return Claim{}, missing("loggedInUserId")
	}

	toUsername := firstNonEmpty(req.ToUsername, req.ToUserID)
	fromUsername := firstNonEmpty(req.FromUsername, from.Username, from.UserID)

	return Claim{
		Subject: SubjectPayToUser,
		Payload: map[string]any{
			"offer": offer(req.OfferID, utils.Value(req.OfferAmount)),
			"sender": party(
				fmt.Sprintf("Pay to %s", toUsername),
				fmt.Sprintf("Kin transfer to %s", toUsername),
				from.UserID,
			),
			"recipient": party(
				fmt.Sprintf("%s paid you", fromUsername),
				fmt.Sprintf("Kin transfer from %s", fromUsername),
				req.ToUserID,
			),
		},
	}, nil
}

func offer(id string, amount float64) map[string]any {
	return map[string]any{
		"id":     id,
		"amount": Amount(amount),
	}
}

func party(title, description, userID string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": description,
		"user_id":     userID,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
