package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cocoindex-io/examples/internal/builds"
	"github.com/cocoindex-io/examples/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent site builds",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		database, err := db.Open(cfg.DBPath())
		if err != nil {
			return err
		}
		defer database.Close()

		recent, err := builds.NewStore(database).Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(recent) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No builds recorded yet. Run `exsite build` first.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTARTED\tDURATION\tPAGES\tENTRIES\tSTATUS")
		for _, b := range recent {
			status := string(b.Status)
			if b.Error != "" {
				status += ": " + b.Error
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
				shortID(b.ID),
				b.StartedAt.Local().Format(time.DateTime),
				b.Duration().Round(time.Millisecond),
				b.Pages, b.CatalogEntries, status)
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "number of builds to show")
	rootCmd.AddCommand(historyCmd)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
