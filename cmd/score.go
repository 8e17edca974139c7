package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/disha/internal/aptitude"
)

var scoreCmd = &cobra.Command{
	Use:   "score <r1> <r2> ...",
	Short: "Score a full set of responses and print the recommendation",
	Long: `Score one response (1-5) per question, in bank order, and print the
recommended stream with the per-stream tally.`,
	Example: "  disha score 5 1 1 1 5 1 1 1 5 1",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank()
		if err != nil {
			return err
		}
		responses, err := parseResponses(args)
		if err != nil {
			return err
		}
		res, err := aptitude.Recommend(bank, responses)
		if err != nil {
			return fmt.Errorf("score: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printResult(res)
		return nil
	},
}

func init() {
	scoreCmd.Flags().Bool("json", false, "Print the result as JSON")
}

// parseResponses converts arguments to scores. Anything that is not an
// integer is an invalid score.
func parseResponses(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("response %d is %q: %w", i+1, a, aptitude.ErrInvalidScore)
		}
		out[i] = n
	}
	return out, nil
}

func printResult(res aptitude.Result) {
	fmt.Printf("Recommended: %s (%s)\n\n", res.Info.Title, res.Category)
	if res.Info.Description != "" {
		fmt.Println(res.Info.Description)
		fmt.Println()
	}

	top := res.Tally.Max()
	for _, cs := range res.Tally {
		marker := " "
		if cs.Category == res.Category {
			marker = "*"
		}
		fmt.Printf("%s %-12s %3d  %s\n", marker, cs.Category, cs.Score, bar(cs.Score, top, 20))
	}

	if len(res.Info.Subjects) > 0 {
		fmt.Printf("\nSubjects: %s\n", strings.Join(res.Info.Subjects, ", "))
	}
	if len(res.Info.Careers) > 0 {
		fmt.Printf("Careers:  %s\n", strings.Join(res.Info.Careers, ", "))
	}
}

func bar(score, top, width int) string {
	if top <= 0 {
		return ""
	}
	return strings.Repeat("█", score*width/top)
}
