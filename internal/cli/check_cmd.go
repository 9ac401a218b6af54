package cli

import (
	"fmt"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	var f planFlags
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a date range and show which paces it allows",
		Long:  "Validate a date range and show which paces it allows. Nothing is sent to the backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, requested, err := f.tracker()
			if err != nil {
				return err
			}
			defer tr.Close()

			out := cmd.OutOrStdout()
			snap := tr.Snapshot()
			if !snap.Ready {
				fmt.Fprintln(out, formatter.FormatSnapshot(snap))
				return nil
			}

			fmt.Fprintln(out, formatter.FormatBanner(snap.Banner))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatPaceTable(snap.Pace))
			if note := paceAdjusted(requested, snap); note != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, note)
			}
			fmt.Fprintln(out, formatter.Dim("Completed modules: "+snap.SelectedLabel()))
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}
