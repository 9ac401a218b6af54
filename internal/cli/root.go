package cli

import (
	"github.com/alexanderramin/studyplan/internal/planclient"
	"github.com/alexanderramin/studyplan/internal/render"
	"github.com/alexanderramin/studyplan/internal/server"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/alexanderramin/studyplan/internal/session"
	"github.com/spf13/cobra"
)

// App holds the collaborators CLI commands run against.
type App struct {
	Client   planclient.Client
	Session  *session.Session
	Observer service.UseCaseObserver

	// ServerConfig seeds the serve command; flags override it.
	ServerConfig server.Config

	// ExportDir is where the TUI saves downloaded plans.
	ExportDir string

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
}

// Plans builds an orchestrator whose rendered itineraries go to surface.
// Every orchestrator shares the App's session, so a download always sees
// the last plan generated by any of them.
func (a *App) Plans(surface render.Surface) service.PlanService {
	if a.Session == nil {
		a.Session = session.New()
	}
	return service.NewPlanService(a.Client, render.NewRenderer(a.Session, surface), a.Session, a.Observer)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "studyplan" command. With no
// subcommand it opens the planner on a terminal and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studyplan",
		Short:         "Plan a study schedule between two dates",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runPlanner(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newCheckCmd(app),
		newGenerateCmd(app),
		newModulesCmd(app),
		newTUICmd(app),
		newServeCmd(app),
	)
	return root
}
