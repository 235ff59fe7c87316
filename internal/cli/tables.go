package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vuegraph/vuegraph/pkg/pipeline"
	"github.com/vuegraph/vuegraph/pkg/render"
)

// tableOpts holds shared flags for the nodes and links commands.
type tableOpts struct {
	noCache  bool
	refresh  bool
	maxLabel int
}

// nodesCommand creates the nodes command.
func (c *CLI) nodesCommand() *cobra.Command {
	opts := tableOpts{}

	cmd := &cobra.Command{
		Use:   "nodes <file.vue>",
		Short: "Print the extracted nodes as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.tableExtract(cmd, args[0], &opts)
			if err != nil {
				return err
			}
			fmt.Println(render.NodeTable(result.Graph))
			printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.CacheInfo.Hit)
			return nil
		},
	}
	addTableFlags(cmd, &opts)
	return cmd
}

// linksCommand creates the links command.
func (c *CLI) linksCommand() *cobra.Command {
	opts := tableOpts{}

	cmd := &cobra.Command{
		Use:   "links <file.vue>",
		Short: "Print the extracted links as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.tableExtract(cmd, args[0], &opts)
			if err != nil {
				return err
			}
			fmt.Println(render.LinkTable(result.Graph, opts.maxLabel))
			printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.CacheInfo.Hit)
			reportUnresolved(result.Unresolved)
			return nil
		},
	}
	addTableFlags(cmd, &opts)
	return cmd
}

func addTableFlags(cmd *cobra.Command, opts *tableOpts) {
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache lookup")
	cmd.Flags().IntVar(&opts.maxLabel, "max-label", 40, "truncate labels beyond this width")
}

func (c *CLI) tableExtract(cmd *cobra.Command, input string, opts *tableOpts) (*pipeline.Result, error) {
	runner := c.newRunner(cmd.Context(), opts.noCache)
	defer runner.Close()
	return c.execute(cmd, runner, pipeline.Options{Input: input, Refresh: opts.refresh})
}
