package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/disha/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the student profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := st.ProfileRepo().Get(cmd.Context(), currentUser())
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Printf("No profile for %s yet.\n", currentUser())
			return nil
		}

		fmt.Printf("User:          %s\n", p.UserID)
		fmt.Printf("Name:          %s\n", p.Name)
		fmt.Printf("Class:         %s\n", p.Class)
		fmt.Printf("Location:      %s\n", p.Location)
		fmt.Printf("Stream:        %s\n", p.Stream)
		fmt.Printf("Career goals:  %s\n", p.CareerGoals)
		fmt.Printf("Interests:     %s\n", strings.Join(p.Interests, ", "))
		fmt.Printf("Updated:       %s\n", p.UpdatedAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields; unset flags keep their value",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.ProfileRepo()
		p, err := repo.Get(cmd.Context(), currentUser())
		if err != nil {
			return err
		}
		if p == nil {
			p = &store.Profile{UserID: currentUser()}
		}

		flags := cmd.Flags()
		for name, dst := range map[string]*string{
			"name":     &p.Name,
			"class":    &p.Class,
			"location": &p.Location,
			"goals":    &p.CareerGoals,
		} {
			if flags.Changed(name) {
				*dst, _ = flags.GetString(name)
			}
		}
		if flags.Changed("interests") {
			p.Interests, _ = flags.GetStringSlice("interests")
		}

		if err := repo.Upsert(cmd.Context(), *p); err != nil {
			return err
		}
		fmt.Printf("Profile for %s saved.\n", p.UserID)
		return nil
	},
}

func init() {
	profileSetCmd.Flags().String("name", "", "Full name")
	profileSetCmd.Flags().String("class", "", "Class or grade, e.g. 10th")
	profileSetCmd.Flags().String("location", "", "City, state")
	profileSetCmd.Flags().String("goals", "", "Career goals")
	profileSetCmd.Flags().StringSlice("interests", nil, "Comma separated interests")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
