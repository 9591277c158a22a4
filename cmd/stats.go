package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"streamdesk-backend/output"
	"streamdesk-backend/services"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dashboard statistics",
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

		stats := services.ComputeDashboardStats(store.Accounts())
		if formatter.IsJSON() {
			return formatter.Output(stats)
		}

		w := tabwriter.NewWriter(formatter.Writer(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Accounts:\t%d\n", stats.TotalAccounts)
		fmt.Fprintf(w, "Sold profiles:\t%d\n", stats.SoldProfiles)
		fmt.Fprintf(w, "Revenue (paid):\t%s\n", stats.TotalRevenue.StringFixed(2))
		fmt.Fprintf(w, "Pending payments:\t%d\n", stats.PendingPayments)
		return w.Flush()
	},
}

func init() {
	output.AddFormatFlag(statsCmd)
	rootCmd.AddCommand(statsCmd)
}
