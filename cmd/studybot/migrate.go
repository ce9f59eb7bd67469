package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/internal/repository"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

			repo, err := repository.Open(cfg.Database.DSN, log)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.Migrate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date: %s\n", cfg.Database.DSN)
			return nil
		},
	}
}
