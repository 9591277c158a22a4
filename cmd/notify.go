package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamdesk-backend/output"
	"streamdesk-backend/services"
)

var notifyCmd = &cobra.Command{
	Use:   "notify <accountId>",
	Short: "Format the expiry alert for an account and simulate sending it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := output.FromCmd(cmd)
		if err != nil {
			return err
		}

		store, kv, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer kv.Close()

		account, ok := store.Account(args[0])
		if !ok {
			return fmt.Errorf("account %s not found", args[0])
		}

		notifier := services.NewNotifier(services.LogSender{}, nil)
		entry, err := notifier.NotifyAccount(cmd.Context(), services.NotificationTest, store.Settings(), account, store.Services())
		if err != nil {
			return err
		}
		if formatter.IsJSON() {
			return formatter.Output(entry)
		}
		fmt.Fprintf(formatter.Writer(), "Notification %s for %s:\n\n%s\n", entry.Status, account.Email, entry.Message)
		return nil
	},
}

func init() {
	output.AddFormatFlag(notifyCmd)
	rootCmd.AddCommand(notifyCmd)
}
