package bridge

import (
	"context"

	"github.com/jrsteele09/go-kin-bridge/claims"
	"github.com/jrsteele09/go-kin-bridge/kinerrors"
	"github.com/jrsteele09/go-kin-bridge/native"
)

// NativeOfferRequest describes a spend offer rendered inside the marketplace.
type NativeOfferRequest struct {
	OfferID          string
	OfferAmount      *float64
	OfferTitle       string
	OfferDescription string
	OfferImageURL    string
	IsModal          *bool
}

func (req NativeOfferRequest) Validate() error {
	var field string
	switch {
	case req.OfferID == "":
		field = "offerId"
	case req.OfferAmount == nil:
		field = "offerAmount"
	case req.OfferTitle == "":
		field = "offerTitle"
	case req.OfferDescription == "":
		field = "offerDescription"
	case req.OfferImageURL == "":
		field = "offerImageURL"
	case req.IsModal == nil:
		field = "isModal"
	default:
		return nil
	}
	return kinerrors.Newf(kinerrors.Validation, "%s must not be empty", field)
}

// AddSpendOffer pushes a native spend offer to the marketplace.
func (m *Module) AddSpendOffer(_ context.Context, req NativeOfferRequest) (ok bool, err error) {
	l := m.begin("addSpendOffer")
	defer func() { finish(l, err) }()

	if err = m.session.RequireOnboarded(); err != nil {
		return false, err
	}
	if err = req.Validate(); err != nil {
		return false, err
	}

	offer := native.NativeOffer{
		ID:          req.OfferID,
		Title:       req.OfferTitle,
		Description: req.OfferDescription,
		Amount:      claims.Amount(*req.OfferAmount),
		Image:       req.OfferImageURL,
		OfferType:   native.OfferTypeSpend,
	}
	added, err := m.ledger.AddNativeOffer(offer, *req.IsModal)
	if err != nil {
		return false, kinerrors.Wrap(kinerrors.NativeOperation, err, "failed to add native offer")
	}
	if !added {
		return false, kinerrors.New(kinerrors.NativeOperation, "failed to add native offer, unknown error")
	}
	return true, nil
}

// RemoveSpendOffer removes a previously added native offer.
func (m *Module) RemoveSpendOffer(_ context.Context, offerID string) (ok bool, err error) {
	l := m.begin("removeSpendOffer")
	defer func() { finish(l, err) }()

	if err = m.session.RequireOnboarded(); err != nil {
		return false, err
	}
	if offerID == "" {
		return false, kinerrors.New(kinerrors.Validation, "offerId must not be empty")
	}

	removed, err := m.ledger.RemoveNativeOffer(native.NativeOffer{ID: offerID, OfferType: native.OfferTypeSpend})
	if err != nil {
		return false, kinerrors.Wrap(kinerrors.NativeOperation, err, "failed to remove native offer")
	}
	if !removed {
		return false, kinerrors.New(kinerrors.NativeOperation, "failed to remove native offer, unknown error")
	}
	return true, nil
}
