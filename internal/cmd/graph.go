package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitbro/gitbro/internal/pkg/graph"
)

// NewGraphCmd creates the graph command.
func NewGraphCmd() *cobra.Command {
	var (
		port  int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "View commit history in the browser",
		Long: `Serve an interactive commit graph on the loopback interface.
The page is self-contained; stop the server with Ctrl+C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			if err := a.requireRepo(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()

			collector := graph.NewCollector(a.runner)
			commits, err := collector.Commits(ctx, limit)
			if err != nil {
				return err
			}
			branches, err := collector.Branches(ctx)
			if err != nil {
				return err
			}

			page, err := graph.RenderPage(commits, branches)
			if err != nil {
				return err
			}

			server := graph.NewServer(page, port)
			fmt.Printf("Git graph running at %s\n", server.URL())
			fmt.Println("Press Ctrl+C to stop")
			return server.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", graph.DefaultPort, "Port to listen on")
	cmd.Flags().IntVarP(&limit, "limit", "n", graph.DefaultCommitLimit, "Number of commits to include")

	return cmd
}
