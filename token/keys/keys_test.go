package keys_test

import (
	"encoding/base64"
	"testing"

	"github.com/jrsteele09/go-kin-bridge/token/keys"
	"github.com/stretchr/testify/require"
)

func TestLoadKeyPair(t *testing.T) {
	rsaPair, err := keys.GenerateRSAKeyPair("kid-rsa", 2048)
	require.NoError(t, err)
	rsaPEM, err := rsaPair.ExportPrivateKeyPEM()
	require.NoError(t, err)

	ecPair, err := keys.GenerateECDSAKeyPair("kid-ec")
	require.NoError(t, err)
	ecPEM, err := ecPair.ExportPrivateKeyPEM()
	require.NoError(t, err)

	t.Run("rsa pem defaults to RS512", func(t *testing.T) {
		kp, err := keys.LoadKeyPair("kid-rsa", rsaPEM, "")
		require.NoError(t, err)
		require.Equal(t, keys.RS512, kp.Algorithm)
		require.Equal(t, "RS512", kp.GetSigningMethod().Alg())
	})

	t.Run("base64 wrapped pem", func(t *testing.T) {
		wrapped := base64.StdEncoding.EncodeToString([]byte(rsaPEM))
		kp, err := keys.LoadKeyPair("kid-rsa", wrapped, "rs256")
		require.NoError(t, err)
		require.Equal(t, keys.RS256, kp.Algorithm)
	})

	t.Run("ec pem defaults to ES256", func(t *testing.T) {
		kp, err := keys.LoadKeyPair("kid-ec", ecPEM, "")
		require.NoError(t, err)
		require.Equal(t, keys.ES256, kp.Algorithm)
	})

	t.Run("algorithm must match key type", func(t *testing.T) {
		_, err := keys.LoadKeyPair("kid-ec", ecPEM, keys.RS512)
		require.Error(t, err)
		require.Contains(t, err.Error(), "does not match")
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := keys.LoadKeyPair("kid", "not a key!", "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to decode PEM block")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := keys.LoadPrivateKey("  ")
		require.Error(t, err)
	})
}

func TestToJWK(t *testing.T) {
	rsaPair, err := keys.GenerateRSAKeyPair("kid-rsa", 1024)
	require.NoError(t, err)
	jwk, err := rsaPair.ToJWK()
	require.NoError(t, err)
	require.Equal(t, "RSA", jwk.Kty)
	require.Equal(t, "kid-rsa", jwk.Kid)
	require.Equal(t, keys.RS512, jwk.Alg)
	require.NotEmpty(t, jwk.N)

	ecPair, err := keys.GenerateECDSAKeyPair("kid-ec")
	require.NoError(t, err)
	jwk, err = ecPair.ToJWK()
	require.NoError(t, err)
	require.Equal(t, "EC", jwk.Kty)
	require.Equal(t, "P-256", jwk.Crv)
}

func TestExportPublicKeyPEM(t *testing.T) {
	kp, err := keys.GenerateECDSAKeyPair("kid")
	require.NoError(t, err)
	pub, err := kp.ExportPublicKeyPEM()
	require.NoError(t, err)
	require.Contains(t, pub, "BEGIN PUBLIC KEY")
}
