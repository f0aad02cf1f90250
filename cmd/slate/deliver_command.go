package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"slate/internal/workflow"
)

func newDeliverCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deliver",
		Short: "Validate and hard link every ready shot into the delivery folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.newManager()
			if err != nil {
				return err
			}
			defer mgr.Close()

			infos, err := mgr.Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintln(out, "No shots are ready for delivery")
				return nil
			}
			fmt.Fprintf(out, "Delivering %d shots\n", len(infos))

			events, err := mgr.Export(cmd.Context())
			if err != nil {
				if errors.Is(err, workflow.ErrExportInProgress) {
					return errors.New("another export run is already in progress")
				}
				return err
			}

			summary := consumeExportEvents(out, events)
			if summary == nil {
				return errors.New("export run ended without a summary")
			}
			fmt.Fprintf(out, "Delivered %d of %d shots in %s\n",
				summary.Delivered, summary.Total, summary.Duration.Round(time.Millisecond))
			if summary.Failed > 0 {
				return fmt.Errorf("%d shots failed to deliver", summary.Failed)
			}
			return nil
		},
	}
}

// consumeExportEvents renders run progress as it streams in and returns the
// final summary.
func consumeExportEvents(out io.Writer, events <-chan workflow.Event) *workflow.Summary {
	colorize := shouldColorize(out)
	interactive := isTerminal(out)

	var bar *progressbar.ProgressBar
	finishBar := func() {
		if bar != nil {
			_ = bar.Finish()
			bar = nil
		}
	}

	var summary *workflow.Summary
	for event := range events {
		switch event.Kind {
		case workflow.EventShotStarted:
			if interactive && !event.Shot.MissingFrameRange() {
				bar = progressbar.NewOptions(event.Shot.FrameCount(),
					progressbar.OptionSetWriter(out),
					progressbar.OptionSetDescription(event.Shot.Label()),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}
		case workflow.EventFrameLinked:
			if bar != nil {
				_ = bar.Add(1)
			}
		case workflow.EventValidationFailed:
			finishBar()
			fmt.Fprintln(out, renderStatusLine(event.Shot.Label(), statusError, event.Message, colorize))
		case workflow.EventShotDelivered:
			finishBar()
			fmt.Fprintln(out, renderStatusLine(event.Shot.Label(), statusOK, event.Message, colorize))
		case workflow.EventShotFailed:
			finishBar()
			fmt.Fprintln(out, renderStatusLine(event.Shot.Label(), statusError, event.Message, colorize))
		case workflow.EventRunCompleted:
			finishBar()
			summary = event.Summary
		}
	}
	return summary
}
