package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aajetechnology/StudyBot/internal/pipeline"
)

func newProcessCommand(configPath *string) *cobra.Command {
	var (
		email  string
		title  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "process <audio-file>",
		Short: "Run one recording through the pipeline and print its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := loadApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			path := args[0]
			if !pipeline.IsAudio(path) {
				return fmt.Errorf("%s is not a supported audio file", path)
			}
			user, err := a.repo.GetUserByEmail(ctx, email)
			if err != nil {
				return fmt.Errorf("look up %s: %w", email, err)
			}

			job := &pipeline.Job{
				ID:         uuid.NewString(),
				UserID:     user.ID,
				SourcePath: path,
				Title:      title,
				Format:     format,
			}

			out := cmd.OutOrStdout()
			for ev := range a.pipeline.Run(ctx, job) {
				if ev.Msg == pipeline.Sentinel {
					continue
				}
				if ev.Class == pipeline.ClassChunk {
					fmt.Fprint(out, ev.Msg)
					continue
				}
				fmt.Fprintln(out, ev.Msg)
			}

			if err := ctx.Err(); err != nil {
				return err
			}
			if job.Status != pipeline.StatusSuccess {
				if job.Err != nil {
					return fmt.Errorf("processing %s failed: %w", filepath.Base(path), job.Err)
				}
				return fmt.Errorf("processing %s failed", filepath.Base(path))
			}
			fmt.Fprintf(out, "\nLecture %d: %s\n", job.LectureID, job.ExportPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "user", "", "Email of the account that owns the lecture")
	cmd.Flags().StringVar(&title, "title", "", "Lecture title (defaults to the file name)")
	cmd.Flags().StringVar(&format, "format", "pdf", "Export format: pdf or docx")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
