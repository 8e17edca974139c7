package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var streamsCmd = &cobra.Command{
	Use:   "streams",
	Short: "List the streams an assessment can recommend",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank()
		if err != nil {
			return err
		}
		infos := bank.Infos()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		}

		for i, info := range infos {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s (%s)\n", info.Title, info.Category)
			fmt.Println(strings.Repeat("─", 60))
			fmt.Println(info.Description)
			if len(info.Subjects) > 0 {
				fmt.Printf("Subjects: %s\n", strings.Join(info.Subjects, ", "))
			}
			if len(info.Careers) > 0 {
				fmt.Printf("Careers:  %s\n", strings.Join(info.Careers, ", "))
			}
		}
		return nil
	},
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the assessment questions in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank()
		if err != nil {
			return err
		}

		fmt.Printf("%3s  %-12s  %s\n", "#", "Stream", "Question")
		fmt.Println(strings.Repeat("─", 90))
		for i, q := range bank.Questions() {
			fmt.Printf("%3d  %-12s  %s\n", i+1, q.Category, q.Text)
		}
		fmt.Printf("\n%d questions\n", bank.Count())
		return nil
	},
}

func init() {
	streamsCmd.Flags().Bool("json", false, "Print as JSON")
}
