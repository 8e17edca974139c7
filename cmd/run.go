package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/disha/internal/app"
	"github.com/abhisek/disha/internal/screen"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the aptitude assessment",
	Annotations: map[string]string{
		annotationTUI: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

// runApp opens the store, builds the screen environment, and launches the
// TUI. Without a database the assessment still works but nothing is saved.
func runApp(cmd *cobra.Command, startQuiz bool) error {
	bank, err := loadBank()
	if err != nil {
		return err
	}

	env := &screen.Env{
		Bank:   bank,
		UserID: currentUser(),
		Logger: logger,
	}

	st, err := openStore(cmd)
	if err != nil {
		logger.Warn("store unavailable", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Database not available:", err)
		fmt.Fprintln(os.Stderr, "Results will not be saved.")
	} else {
		defer st.Close()
		env.Events = st.EventRepo()
		env.Profiles = st.ProfileRepo()
	}

	skip, _ := cmd.Flags().GetBool("skip-welcome")
	return app.Run(app.Options{
		Env:         env,
		SkipWelcome: skip,
		StartQuiz:   startQuiz,
	})
}
