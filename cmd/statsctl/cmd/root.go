// Package cmd implements statsctl, the operator CLI of the stats store.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/g5stats/stats-api/internal/config"
	"github.com/g5stats/stats-api/internal/logic"
	"github.com/g5stats/stats-api/internal/models"
	"github.com/g5stats/stats-api/internal/store"
)

var (
	cfg    *config.Config
	db     *store.DB
	logger *zap.Logger

	verbose bool
)

// operator is the principal CLI writes run as. Shell access to the database
// host already implies full rights.
var operator = &models.Principal{SuperAdmin: true}

var rootCmd = &cobra.Command{
	Use:           "statsctl",
	Short:         "Operate the G5 stats store",
	Long:          "Inspect and maintain player stats and season ranks directly against the database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(ranksCmd)
	rootCmd.AddCommand(tokenCmd)
}

// connect loads the configuration and opens the store. Commands that touch
// the database call it from PreRunE.
func connect(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(); err != nil {
		return err
	}

	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger = zap.NewNop()
	}
	if err != nil {
		return err
	}

	db, err = store.Open(cmd.Context(), store.Config{
		Driver: cfg.DatabaseDriver,
		URL:    cfg.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	return nil
}

func disconnect(cmd *cobra.Command, args []string) error {
	if db != nil {
		return db.Close()
	}
	return nil
}

func playerStats() logic.PlayerStatsService { return logic.NewPlayerStatsService(db) }

func ranks() logic.RankService { return logic.NewRankService(db) }
