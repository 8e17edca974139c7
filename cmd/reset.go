package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved results and profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		yes, _ := cmd.Flags().GetBool("yes")

		target := currentUser()
		label := "user " + target
		if all {
			target, label = "", "all users"
		}
		if !yes {
			return fmt.Errorf("refusing to delete data for %s without --yes", label)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Reset(cmd.Context(), target); err != nil {
			return err
		}
		logger.Info("data reset", zap.String("scope", label))
		fmt.Printf("Deleted saved data for %s.\n", label)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Delete data for every user")
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
