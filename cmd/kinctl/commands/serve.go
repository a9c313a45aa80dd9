package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jrsteele09/go-kin-bridge/internal/config"
	"github.com/jrsteele09/go-kin-bridge/signservice"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the signing service in the foreground, configured from the environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if appID != "" {
				if err := os.Setenv("APP_ID", appID); err != nil {
					return err
				}
			}
			c := config.New()
			if addr == "" {
				addr = c.GetPort()
			}
			signer, err := signservice.NewSignerFromConfig(c)
			if err != nil {
				return err
			}

			server := &http.Server{Addr: addr, Handler: signservice.New(c, signer), ReadHeaderTimeout: c.GetSignTimeout()}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}()

			log.Info().Str("addr", addr).Str("kid", signer.KeyPair().KeyID).Msg("sign service listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from SIGNSERVICE_PORT)")
	return cmd
}
