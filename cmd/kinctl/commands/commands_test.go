package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrsteele09/go-kin-bridge/token/keys"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestKeygenAndSign(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "key.pem")

	out, err := runCmd(t, "keygen", "--type", "ec", "--kid", "cli-kid", "--out", keyFile)
	require.NoError(t, err)
	require.Contains(t, out, "Key ID: cli-kid")
	require.Contains(t, out, "Algorithm: ES256")

	out, err = runCmd(t, "sign", "--app-id", "app1", "--key-file", keyFile, "--kid", "cli-kid",
		"--subject", "register", "--payload", `{"user_id":"u1"}`)
	require.NoError(t, err)
	jwt := strings.TrimSpace(out)
	require.Len(t, strings.Split(jwt, "."), 3)
}

func TestSign_Errors(t *testing.T) {
	_, err := runCmd(t, "sign", "--app-id", "app1", "--subject", "mint", "--url", "http://localhost:1")
	require.Error(t, err)

	_, err = runCmd(t, "sign", "--app-id", "app1", "--subject", "earn")
	require.Error(t, err)
}

func TestParseClaim(t *testing.T) {
	claim, err := parseClaim("earn", `{"offer":{"id":"o1","amount":5}}`)
	require.NoError(t, err)
	require.Equal(t, "earn", string(claim.Subject))
	require.Contains(t, claim.Payload, "offer")

	_, err = parseClaim("earn", `[1,2]`)
	require.Error(t, err)

	_, err = parseClaim("earn", "@"+filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestDemo(t *testing.T) {
	kp, err := keys.GenerateRSAKeyPair("demo-kid", 2048)
	require.NoError(t, err)
	pemKey, err := kp.ExportPrivateKeyPEM()
	require.NoError(t, err)
	keyFile := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(keyFile, []byte(pemKey), 0o600))

	out, err := runCmd(t, "demo", "--app-id", "app1", "--key-file", keyFile, "--kid", "demo-kid", "--amount", "12.7")
	require.NoError(t, err)
	require.Contains(t, out, "started demo-user")
	require.Contains(t, out, "balance changed: 12")
	require.Contains(t, out, "pay to demo-peer: confirmed:")
}
