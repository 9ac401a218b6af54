package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/spf13/cobra"
)

func newModulesCmd(app *App) *cobra.Command {
	var (
		filter    string
		completed []string
	)
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the catalog's modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := app.Plans(nil).Modules(cmd.Context())
			if err != nil {
				return asNotice(err)
			}
			ids = filterModules(ids, filter)
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No modules match."))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatModules(ids, domain.NewCompletedModuleSet(completed...)))
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only show modules containing this text (case-insensitive)")
	cmd.Flags().StringArrayVar(&completed, "completed", nil, "mark a module as completed (repeatable)")
	return cmd
}

// filterModules keeps ids containing q, ignoring case. Order is preserved.
func filterModules(ids []string, q string) []string {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return ids
	}
	var out []string
	for _, id := range ids {
		if strings.Contains(strings.ToLower(id), q) {
			out = append(out, id)
		}
	}
	return out
}
