package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"slate/internal/pathtpl"
)

func newOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the delivery folder in the system file browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			tpl := pathtpl.New("delivery_folder", cfg.Templates.DeliveryFolder)
			folder, err := tpl.Render(map[string]string{"root": cfg.Paths.DeliveryRoot})
			if err != nil {
				return err
			}
			if _, err := os.Stat(folder); err != nil {
				return fmt.Errorf("delivery folder %s is not accessible: %w", folder, err)
			}

			opener := exec.CommandContext(cmd.Context(), openCommandName(), folder)
			if err := opener.Start(); err != nil {
				return fmt.Errorf("open %s: %w", folder, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", folder)
			return nil
		},
	}
}

func openCommandName() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}
