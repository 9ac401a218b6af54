package cli

import (
	"fmt"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/render"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/alexanderramin/studyplan/internal/timeline"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		f           planFlags
		exportDir   string
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a study plan and optionally save it as a spreadsheet",
		Example: `  studyplan generate --start 2025-06-01 --end 2025-06-30 --pace relaxed
  studyplan generate --start 2025-06-01 --end 2025-06-20 --completed "Python - Module 01" --export .
  studyplan generate --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			var (
				tr        *timeline.Tracker
				requested domain.Pace
				err       error
			)
			if interactive {
				tr, requested, err = runWizard(ctx, app, &f, errOut)
			} else {
				tr, requested, err = f.tracker()
			}
			if err != nil {
				return err
			}
			defer tr.Close()

			snap := tr.Snapshot()
			if note := paceAdjusted(requested, snap); note != "" {
				fmt.Fprintln(errOut, note)
			}
			if snap.Ready {
				fmt.Fprintln(errOut, formatter.FormatBanner(snap.Banner))
			}

			plans := app.Plans(render.SurfaceFunc(func(it render.Itinerary) {
				fmt.Fprint(out, formatter.FormatItinerary(it))
			}))

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(errOut, "Generating plan...")
			}
			_, err = plans.Generate(ctx, service.GenerateInput{
				Range:     snap.Range,
				Pace:      tr.Active(),
				Completed: tr.Modules().IDs(),
			})
			stop()
			if err != nil {
				return asNotice(err)
			}

			if exportDir == "" {
				return nil
			}
			art, err := plans.Download(ctx)
			if err != nil {
				return asNotice(err)
			}
			if art == nil {
				return nil
			}
			path, err := art.Save(exportDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.StyleGreen.Render("Saved "+path))
			return nil
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().StringVar(&exportDir, "export", "", "download the plan as a spreadsheet into this directory")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "fill in dates, modules and pace with a form")
	return cmd
}
