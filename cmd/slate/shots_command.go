package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"slate/internal/shots"
)

func newShotsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shots",
		Short: "List shots ready for delivery",
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

			rows := make([][]string, 0, len(infos))
			for i := range infos {
				info := &infos[i]
				rows = append(rows, []string{
					info.Sequence,
					info.Shot,
					fmt.Sprintf("v%03d", info.VersionNumber),
					frameRangeLabel(info),
					strconv.Itoa(frameCountLabel(info)),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Sequence", "Shot", "Version", "Range", "Frames"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			fmt.Fprintf(out, "%d shots ready for delivery\n", len(infos))
			return nil
		},
	}
}

// sortShots orders by sequence then shot code with numeric collation, so
// "0100" sorts after "0020" the way artists expect.
func sortShots(infos []shots.DeliveryInfo) {
	collator := collate.New(language.Und, collate.Numeric)
	sort.SliceStable(infos, func(i, j int) bool {
		if cmp := collator.CompareString(infos[i].Sequence, infos[j].Sequence); cmp != 0 {
			return cmp < 0
		}
		return collator.CompareString(infos[i].Shot, infos[j].Shot) < 0
	})
}

func frameRangeLabel(info *shots.DeliveryInfo) string {
	if info.MissingFrameRange() {
		return "?"
	}
	return fmt.Sprintf("%d-%d", info.FirstFrame, info.LastFrame)
}

func frameCountLabel(info *shots.DeliveryInfo) int {
	if info.MissingFrameRange() {
		return 0
	}
	return info.FrameCount()
}
