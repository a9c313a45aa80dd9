package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-kin-bridge/token/keys"
	"github.com/spf13/cobra"
)

func keygenCmd() *cobra.Command {
	var (
		keyType string
		keyID   string
		bits    int
		outFile string
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a signing key pair and print its PEM encoding",
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyID == "" {
				keyID = uuid.NewString()
			}

			var kp *keys.KeyPair
			var err error
			switch keyType {
			case "rsa":
				kp, err = keys.GenerateRSAKeyPair(keyID, bits)
			case "ec":
				kp, err = keys.GenerateECDSAKeyPair(keyID)
			default:
				return fmt.Errorf("unknown key type %q, use rsa or ec", keyType)
			}
			if err != nil {
				return err
			}

			private, err := kp.ExportPrivateKeyPEM()
			if err != nil {
				return err
			}
			public, err := kp.ExportPublicKeyPEM()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outFile != "" {
				if err := os.WriteFile(outFile, []byte(private), 0o600); err != nil {
					return err
				}
				fmt.Fprintf(out, "Private key written to %s\n", outFile)
			} else {
				fmt.Fprint(out, private)
			}
			fmt.Fprintf(out, "Key ID: %s\nAlgorithm: %s\n%s", kp.KeyID, kp.Algorithm, public)
			return nil
		},
	}
	cmd.Flags().StringVar(&keyType, "type", "rsa", "key type: rsa or ec")
	cmd.Flags().StringVar(&keyID, "kid", "", "key id (default random uuid)")
	cmd.Flags().IntVar(&bits, "bits", 2048, "RSA key size")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the private key to a file")
	return cmd
}
