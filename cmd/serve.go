package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/disha/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assessment over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}

		bank, err := loadBank()
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if cfg.Auth.JWTSecret == "" {
			logger.Warn("no JWT secret configured; all requests act as the default user",
				zap.String("user", cfg.Assessment.DefaultUser))
		}

		srv := server.New(server.Options{
			Bank:           bank,
			Events:         st.EventRepo(),
			Profiles:       st.ProfileRepo(),
			JWTSecret:      cfg.Auth.JWTSecret,
			JWTIssuer:      cfg.Auth.Issuer,
			DefaultUser:    cfg.Assessment.DefaultUser,
			CORSOrigins:    cfg.HTTP.CORSOrigins,
			RequestTimeout: cfg.GetRequestTimeout(),
			SessionTTL:     cfg.GetSessionTTL(),
			Logger:         logger,
		})
		defer srv.Close()

		return srv.ListenAndServe(ctx, cfg.HTTP.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides http.addr)")
}
