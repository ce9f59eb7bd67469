package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "studybot",
		Short:         "Lecture transcription and study assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Configuration file path")

	rootCmd.AddCommand(newServeCommand(&configPath))
	rootCmd.AddCommand(newProcessCommand(&configPath))
	rootCmd.AddCommand(newMigrateCommand(&configPath))

	return rootCmd
}
