package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slate/internal/sequence"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check shot sequences on disk without delivering",
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
			sortShots(infos)

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			validator := sequence.NewValidator(logger)
			colorize := shouldColorize(out)

			failed := 0
			for i := range infos {
				info := &infos[i]
				if err := validator.Validate(info); err != nil {
					failed++
					fmt.Fprintln(out, renderStatusLine(info.Label(), statusError, err.Error(), colorize))
					continue
				}
				fmt.Fprintln(out, renderStatusLine(info.Label(), statusOK, fmt.Sprintf("%d frames", info.FrameCount()), colorize))
			}

			if failed > 0 {
				fmt.Fprintf(out, "%d of %d shots failed validation\n", failed, len(infos))
			} else {
				fmt.Fprintf(out, "All %d shots validated\n", len(infos))
			}
			return nil
		},
	}
}
