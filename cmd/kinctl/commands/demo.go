package commands

import (
	"fmt"

	"github.com/jrsteele09/go-kin-bridge/bridge"
	"github.com/jrsteele09/go-kin-bridge/claims"
	"github.com/jrsteele09/go-kin-bridge/events"
	"github.com/jrsteele09/go-kin-bridge/internal/utils"
	"github.com/jrsteele09/go-kin-bridge/native/nativefake"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// demoCmd drives the bridge against the in-memory ledger so a signing setup can be tried end to
// end without a device.
func demoCmd() *cobra.Command {
	var (
		flags  signFlags
		userID string
		peerID string
		amount float64
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run start, earn, spend and pay-to-user against an in-memory ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			creds, err := flags.credentials()
			if err != nil {
				return err
			}
			creds.Debug = verbose

			ledger := nativefake.NewFakeLedger()
			ledger.AddAccount(peerID)
			hub := events.NewHub()
			remove := hub.AddListener(events.BalanceChanged, func(balance any) {
				fmt.Fprintf(out, "balance changed: %v\n", balance)
			})
			defer remove()

			module := bridge.New(ledger, bridge.WithEmitter(hub), bridge.WithLogger(log.Logger))
			if _, err := module.SetCredentials(ctx, creds); err != nil {
				return err
			}
			if _, err := module.Start(ctx, bridge.StartRequest{UserID: userID}); err != nil {
				return err
			}
			address, err := module.GetWalletAddress(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "started %s, wallet %s\n", userID, address)

			offer := claims.OfferRequest{
				OfferID:          "demo-earn",
				OfferAmount:      utils.Ptr(amount),
				OfferTitle:       "Demo earn",
				OfferDescription: "kinctl demo",
				RecipientUserID:  userID,
			}
			confirmation, err := module.Earn(ctx, offer)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "earn: %s\n", confirmation)
			ledger.SetBalance(claims.Amount(amount), true)

			offer.OfferID = "demo-spend"
			if confirmation, err = module.Spend(ctx, offer); err != nil {
				return err
			}
			fmt.Fprintf(out, "spend: %s\n", confirmation)

			confirmation, err = module.PayToUser(ctx, claims.PayToUserRequest{
				ToUserID:    peerID,
				OfferID:     "demo-p2p",
				OfferAmount: utils.Ptr(amount),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "pay to %s: %s\n", peerID, confirmation)

			_, err = module.Logout(ctx)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&userID, "user-id", "demo-user", "user to onboard")
	cmd.Flags().StringVar(&peerID, "peer-id", "demo-peer", "peer that receives the transfer")
	cmd.Flags().Float64Var(&amount, "amount", 10, "offer amount")
	return cmd
}
