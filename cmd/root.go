package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"streamdesk-backend/config"
	"streamdesk-backend/services"
	"streamdesk-backend/storage"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "streamdesk",
	Short: "Management console for resold streaming accounts",
	Long: `Tracks streaming subscription accounts, the profiles sold from each account,
the customers holding them, and payment and expiration state.
Without a subcommand the HTTP console is served.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg.Log.ConfigureZerolog()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens the configured backend and loads the persisted state from it.
func openStore(ctx context.Context) (*services.Store, storage.KVStore, error) {
	kv, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return services.OpenStore(ctx, kv), kv, nil
}
