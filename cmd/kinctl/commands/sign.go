package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jrsteele09/go-kin-bridge/claims"
	"github.com/jrsteele09/go-kin-bridge/session"
	"github.com/jrsteele09/go-kin-bridge/token"
	"github.com/spf13/cobra"
)

type signFlags struct {
	keyFile    string
	keyID      string
	algorithm  string
	serviceURL string
	authHeader string
	timeout    time.Duration
}

func (f *signFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.keyFile, "key-file", "", "PEM private key for local signing")
	cmd.Flags().StringVar(&f.keyID, "kid", "", "key id written to the token header")
	cmd.Flags().StringVar(&f.algorithm, "alg", "", "signing algorithm override, e.g. RS256")
	cmd.Flags().StringVar(&f.serviceURL, "url", "", "remote signing service base URL")
	cmd.Flags().StringVar(&f.authHeader, "auth-header", "", "authorization header sent to the signing service")
	cmd.Flags().DurationVar(&f.timeout, "timeout", token.DefaultRequestTimeout, "remote signing timeout")
}

// credentials maps the flags onto bridge credentials so the CLI picks a signer the same way the
// bridge does.
func (f *signFlags) credentials() (session.Credentials, error) {
	creds := session.Credentials{
		AppID:                    appID,
		KeyPairIdentifier:        f.keyID,
		SigningAlgorithm:         f.algorithm,
		SigningServiceURL:        f.serviceURL,
		SigningServiceAuthHeader: f.authHeader,
		UseJWT:                   true,
	}
	if f.keyFile != "" {
		data, err := os.ReadFile(f.keyFile)
		if err != nil {
			return session.Credentials{}, err
		}
		creds.PrivateKey = string(data)
	}
	return creds, creds.Validate()
}

func signCmd() *cobra.Command {
	var (
		flags   signFlags
		subject string
		payload string
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a claim locally with --key-file or remotely with --url",
		Example: `  kinctl sign --app-id app1 --key-file key.pem --kid k1 --subject register --payload '{"user_id":"u1"}'
  kinctl sign --app-id app1 --url http://localhost:8080 --subject earn --payload @claim.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			claim, err := parseClaim(subject, payload)
			if err != nil {
				return err
			}
			creds, err := flags.credentials()
			if err != nil {
				return err
			}
			signer, err := token.NewSignerForCredentials(creds, token.WithTimeout(flags.timeout))
			if err != nil {
				return err
			}

			jwt, err := signer.Sign(context.Background(), claim)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), jwt)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&subject, "subject", "", "claim subject: register, earn, spend or pay_to_user")
	cmd.Flags().StringVar(&payload, "payload", "{}", "claim payload as JSON, or @file")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func parseClaim(subject, payload string) (claims.Claim, error) {
	s := claims.Subject(subject)
	if !s.Valid() {
		return claims.Claim{}, fmt.Errorf("unknown subject %q", subject)
	}

	raw := []byte(payload)
	if len(payload) > 0 && payload[0] == '@' {
		data, err := os.ReadFile(payload[1:])
		if err != nil {
			return claims.Claim{}, err
		}
		raw = data
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return claims.Claim{}, fmt.Errorf("payload must be a JSON object: %w", err)
	}
	if body == nil {
		body = map[string]any{}
	}
	return claims.Claim{Subject: s, Payload: body}, nil
}
