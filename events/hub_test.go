package events_test

import (
	"testing"

	"github.com/jrsteele09/go-kin-bridge/events"
	"github.com/stretchr/testify/require"
)

func TestHub(t *testing.T) {
	t.Run("drops events without listeners", func(t *testing.T) {
		h := events.NewHub()
		require.NotPanics(t, func() { h.Emit(events.BalanceChanged, int64(5)) })
		require.Equal(t, 0, h.ListenerCount(events.BalanceChanged))
	})

	t.Run("delivers in registration order", func(t *testing.T) {
		h := events.NewHub()
		var got []string
		h.AddListener(events.BalanceChanged, func(p any) { got = append(got, "a") })
		h.AddListener(events.BalanceChanged, func(p any) { got = append(got, "b") })
		h.AddListener(events.NativeOfferClicked, func(p any) { got = append(got, "other") })

		h.Emit(events.BalanceChanged, int64(5))
		require.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("remove stops delivery and no replay", func(t *testing.T) {
		h := events.NewHub()
		var count int
		remove := h.AddListener(events.BalanceChanged, func(any) { count++ })
		h.Emit(events.BalanceChanged, 1)
		remove()
		remove()
		h.Emit(events.BalanceChanged, 2)
		require.Equal(t, 1, count)
		require.Equal(t, 0, h.ListenerCount(events.BalanceChanged))

		h.AddListener(events.BalanceChanged, func(any) { count++ })
		require.Equal(t, 1, count)
	})

	t.Run("panicking listener does not stop others", func(t *testing.T) {
		h := events.NewHub()
		var delivered bool
		h.AddListener(events.BalanceChanged, func(any) { panic("listener bug") })
		h.AddListener(events.BalanceChanged, func(any) { delivered = true })
		require.NotPanics(t, func() { h.Emit(events.BalanceChanged, 1) })
		require.True(t, delivered)
	})
}
