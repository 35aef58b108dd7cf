package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/amankumarsingh77/yt-transcriber/internal/metrics"
	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	"github.com/amankumarsingh77/yt-transcriber/internal/server"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript/repository"
	"github.com/amankumarsingh77/yt-transcriber/internal/worker"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newTranscribeCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "transcribe <video-url>",
		Short: "Transcribe one video in process and print the transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeoutCause(ctx, a.cfg.Worker.JobTimeout(), worker.ErrJobTimeout)
			defer cancel()

			repo := &progressPrinter{Repository: repository.NewMemoryRepo(), out: cmd.ErrOrStderr()}
			pipeline := server.NewPipeline(a.cfg, repo, nil, metrics.New(), a.logger)

			job, err := repo.Create(ctx)
			if err != nil {
				return err
			}
			pipeline.Run(ctx, job.ID, args[0])

			job, err = repo.Get(context.WithoutCancel(ctx), job.ID)
			if err != nil {
				return err
			}
			return printJob(cmd.OutOrStdout(), job, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the whole job record as JSON")
	return cmd
}

func printJob(w io.Writer, job *models.Job, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(job); err != nil {
			return err
		}
	}
	if job.Status != models.JobStatusCompleted {
		return errors.New(job.Error)
	}
	if !asJSON {
		_, err := fmt.Fprintln(w, job.Result.Transcript)
		return err
	}
	return nil
}

// progressPrinter echoes every job transition to out.
type progressPrinter struct {
	transcript.Repository
	out io.Writer
}

func (p *progressPrinter) Update(ctx context.Context, jobID string, update models.JobUpdate) error {
	if err := p.Repository.Update(ctx, jobID, update); err != nil {
		return err
	}
	job, err := p.Repository.Get(ctx, jobID)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "[%3d%%] %-11s %s\n", job.Progress, job.Status, job.Message)
	return nil
}
