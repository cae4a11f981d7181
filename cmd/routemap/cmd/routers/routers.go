// Package routers provides the command that lists registered routers.
package routers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/routemap/internal/appcontext"
	"github.com/agentstation/routemap/internal/cmd/emoji"
	"github.com/agentstation/routemap/internal/cmd/output"
	"github.com/agentstation/routemap/internal/cmd/table"
	"github.com/agentstation/routemap/pkg/router"
)

// NewCommand creates the routers command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "routers",
		GroupID: "info",
		Short:   "List the routers registered in this binary",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			format = output.DetectFormat(string(format))

			summaries, err := Summaries()
			if err != nil {
				return err
			}
			if len(summaries) == 0 && format.IsTable() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s no routers registered\n", emoji.Warning)
				return nil
			}
			return output.FormatRouters(cmd.OutOrStdout(), summaries, format)
		},
	}
}

// Summaries describes every registered router in name order.
func Summaries() ([]table.RouterSummary, error) {
	names := router.Names()
	summaries := make([]table.RouterSummary, 0, len(names))
	for _, name := range names {
		g, err := router.Lookup(name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, table.RouterSummary{
			Name:      name,
			Endpoints: g.Count(),
			Groups:    countGroups(g),
		})
	}
	return summaries, nil
}

func countGroups(g *router.Group) int {
	n := 0
	for _, e := range g.Groups() {
		n++
		n += countGroups(e.Node.(*router.Group))
	}
	return n
}
