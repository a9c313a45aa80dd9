package kinerrors_test

import (
	"errors"
	"testing"

	"github.com/jrsteele09/go-kin-bridge/kinerrors"
	"github.com/stretchr/testify/require"
)

func TestError_Is(t *testing.T) {
	err := kinerrors.New(kinerrors.PeerNotFound, "User u2 could not be found")

	require.True(t, errors.Is(err, kinerrors.ErrPeerNotFound))
	require.False(t, errors.Is(err, kinerrors.ErrSigning))
	require.Equal(t, "User u2 could not be found", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("classifies plain errors", func(t *testing.T) {
		err := kinerrors.Wrap(kinerrors.NativeOperation, errors.New("insufficient funds"), "purchase failed")
		require.True(t, errors.Is(err, kinerrors.ErrNativeOperation))
		require.Equal(t, "purchase failed: insufficient funds", err.Error())
	})

	t.Run("keeps the first classification", func(t *testing.T) {
		inner := kinerrors.New(kinerrors.Signing, "JWT signing failed: bad sig")
		err := kinerrors.Wrap(kinerrors.NativeOperation, inner, "")
		kind, ok := kinerrors.KindOf(err)
		require.True(t, ok)
		require.Equal(t, kinerrors.Signing, kind)
		require.Contains(t, err.Error(), "bad sig")
	})

	t.Run("nil cause", func(t *testing.T) {
		require.NoError(t, kinerrors.Wrap(kinerrors.Signing, nil, "ignored"))
	})
}

func TestWrapf(t *testing.T) {
	require.Nil(t, kinerrors.Wrapf(nil, "context"))

	err := kinerrors.Wrapf(kinerrors.ErrValidation, "decode %s", "earn")
	require.True(t, errors.Is(err, kinerrors.ErrValidation))
	require.Contains(t, err.Error(), "decode earn")
}
