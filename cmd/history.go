package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/disha/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past assessment results",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		user := currentUser()
		if all, _ := cmd.Flags().GetBool("all"); all {
			user = ""
		}

		events := st.EventRepo()
		results, err := events.QueryResults(cmd.Context(), user, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No results yet.")
			return nil
		}

		fmt.Printf("%6s  %-16s  %-12s  %-12s  %s\n", "Seq", "Date", "User", "Stream", "Tally")
		fmt.Println(strings.Repeat("─", 90))
		for _, r := range results {
			fmt.Printf("%6d  %-16s  %-12s  %-12s  %s\n",
				r.Sequence, r.Timestamp.Local().Format("2006-01-02 15:04"), r.UserID, r.Stream, formatTally(r.Tally))
		}

		counts, err := events.StreamCounts(cmd.Context(), user)
		if err != nil {
			return err
		}
		bank, err := loadBank()
		if err != nil {
			return err
		}
		var parts []string
		for _, c := range bank.Categories() {
			parts = append(parts, fmt.Sprintf("%s %d", c, counts[string(c)]))
		}
		fmt.Printf("\n%d results shown; totals: %s\n", len(results), strings.Join(parts, ", "))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum results to show (0 = all)")
	historyCmd.Flags().Bool("all", false, "Show results for every user")
}

func formatTally(t []store.StreamScore) string {
	parts := make([]string, len(t))
	for i, s := range t {
		parts[i] = fmt.Sprintf("%s=%d", s.Stream, s.Score)
	}
	return strings.Join(parts, " ")
}
