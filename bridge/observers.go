package bridge

import (
	"github.com/jrsteele09/go-kin-bridge/events"
	"github.com/jrsteele09/go-kin-bridge/native"
	"github.com/rs/zerolog"
)

// NativeOfferClickedEvent is the payload of the onNativeOfferClicked event.
type NativeOfferClickedEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Image       string `json:"image"`
	IsModal     bool   `json:"isModal"`
	OfferType   string `json:"offerType"`
}

// registerObservers attaches each native observer once per module. A failed registration is
// logged, does not fail start and is retried on the next start. Callers hold startLock.
func (m *Module) registerObservers(l zerolog.Logger) {
	if !m.offerObserverAdded {
		if err := m.ledger.AddNativeOfferClickedObserver(m.onNativeOfferClicked); err != nil {
			l.Warn().Err(err).Msg("failed to add native offer clicked observer")
		} else {
			m.offerObserverAdded = true
		}
	}
	if !m.balanceObserverAdded {
		if err := m.ledger.AddBalanceObserver(m.onBalanceChanged); err != nil {
			l.Warn().Err(err).Msg("failed to add balance observer")
		} else {
			m.balanceObserverAdded = true
		}
	}
}

func (m *Module) onNativeOfferClicked(e native.NativeOfferClickEvent) {
	m.emitter.Emit(events.NativeOfferClicked, NativeOfferClickedEvent{
		ID:          e.Offer.ID,
		Title:       e.Offer.Title,
		Description: e.Offer.Description,
		Amount:      e.Offer.Amount,
		Image:       e.Offer.Image,
		IsModal:     e.DismissOnTap,
		OfferType:   string(e.Offer.OfferType),
	})
}

func (m *Module) onBalanceChanged(b native.Balance) {
	m.emitter.Emit(events.BalanceChanged, b.Amount)
}
