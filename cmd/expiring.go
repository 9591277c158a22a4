package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"streamdesk-backend/models"
	"streamdesk-backend/output"
	"streamdesk-backend/services"
)

var expiringCmd = &cobra.Command{
	Use:   "expiring",
	Short: "List accounts expiring within the next three days",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := output.FromCmd(cmd)
		if err != nil {
			return err
		}

		asOf := time.Now()
		if raw, _ := cmd.Flags().GetString("as-of"); raw != "" {
			d, err := models.ParseDate(raw)
			if err != nil {
				return err
			}
			asOf = d.Time
		}

		store, kv, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer kv.Close()

		expiring := services.ExpiringAccounts(services.SortByExpiration(store.Accounts()), asOf)
		views := services.BuildAccountViews(expiring, store.Services(), asOf)
		if formatter.IsJSON() {
			return formatter.Output(views)
		}

		if len(views) == 0 {
			fmt.Fprintln(formatter.Writer(), "No accounts expiring soon.")
			return nil
		}
		w := tabwriter.NewWriter(formatter.Writer(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSERVICE\tEMAIL\tEXPIRES\tDAYS\tPROFILES")
		for _, v := range views {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d/%d\n",
				v.ID, v.ServiceName, v.Email, v.ExpirationDate, v.DaysRemaining, len(v.Profiles), v.MaxProfiles)
		}
		return w.Flush()
	},
}

func init() {
	output.AddFormatFlag(expiringCmd)
	expiringCmd.Flags().String("as-of", "", "Evaluate as of this date (YYYY-MM-DD)")
	rootCmd.AddCommand(expiringCmd)
}
