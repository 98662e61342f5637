package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kulugbekwork/lema/internal/billing"
	"github.com/kulugbekwork/lema/internal/logger"
	"github.com/kulugbekwork/lema/internal/server"
	"github.com/kulugbekwork/lema/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the billing webhook and checkout HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		mode, _ := cmd.Flags().GetString("log-mode")

		log, err := logger.New(mode)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer log.Sync()

		cfg := billing.ConfigFromEnv()
		if err := cfg.ValidateWebhook(); err != nil {
			return err
		}

		dsn, err := resolveDSN(cmd)
		if err != nil {
			return fmt.Errorf("resolve data source: %w", err)
		}
		st, err := store.Open(dsn, log)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		routerCfg := server.RouterConfig{
			WebhookHandler: server.NewWebhookHandler(cfg.WebhookSecret, billing.NewReconciler(st.Profiles(), log), log),
			Logger:         log,
		}

		if cfg.APIKey != "" && cfg.StoreID != "" {
			client, err := billing.NewClient(cfg.APIKey, cfg.StoreID)
			if err != nil {
				return fmt.Errorf("billing client: %w", err)
			}
			routerCfg.BillingHandler = server.NewBillingHandler(client, st.Profiles(), log)
		} else {
			log.Warn("checkout disabled: LEMA_BILLING_API_KEY or LEMA_BILLING_STORE_ID not set")
		}

		log.Info("starting server", "addr", addr)
		return server.New(addr, routerCfg).Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("log-mode", "prod", "Log mode: prod or dev")
}
