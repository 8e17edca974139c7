package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/config"
	"github.com/abhisek/disha/internal/store"
)

// annotationTUI marks commands that draw on the terminal; they must not
// log to it.
const annotationTUI = "tui"

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "disha",
	Short: "Stream guidance aptitude assessment",
	Long:  "Disha: a ten-question aptitude assessment that recommends a stream: science, arts, commerce or vocational.",
	Annotations: map[string]string{
		annotationTUI: "true",
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/disha/config.yaml)")
	pf.String("db", "", "Database path or DSN (overrides DISHA_DB env var)")
	pf.String("db-driver", "", "Database driver: sqlite or postgres")
	pf.String("user", "", "User id results are recorded under")
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().Bool("skip-welcome", false, "Start on the home screen")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(streamsCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("db"); v != "" {
		c.Database.DSN = v
	}
	if v, _ := cmd.Flags().GetString("db-driver"); v != "" {
		c.Database.Driver = v
	}
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		c.Assessment.DefaultUser = v
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	verbose, _ := cmd.Flags().GetBool("verbose")
	l, err := cfg.Log.NewLogger(verbose, cmd.Annotations[annotationTUI] == "true")
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l
	return nil
}

// openStore opens the configured database. An empty SQLite DSN resolves
// to the default data path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	driver, err := store.ParseDriver(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.Database.DSN
	if driver == store.DriverSQLite {
		if dsn == "" {
			if dsn, err = store.DefaultDBPath(); err != nil {
				return nil, fmt.Errorf("resolve DB path: %w", err)
			}
		} else if err := store.EnsureDir(dsn); err != nil {
			return nil, fmt.Errorf("create DB dir: %w", err)
		}
	}

	st, err := store.Open(cmd.Context(), driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("driver", string(driver)), zap.String("dialect", st.Dialect()))
	return st, nil
}

// loadBank returns the configured question bank, or the default one.
func loadBank() (*aptitude.Bank, error) {
	if cfg.Assessment.BankFile == "" {
		return aptitude.DefaultBank(), nil
	}
	b, err := aptitude.LoadBankFile(cfg.Assessment.BankFile)
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	return b, nil
}

// currentUser returns the user id commands act for.
func currentUser() string {
	return cfg.Assessment.DefaultUser
}
