package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vuegraph/vuegraph/pkg/pipeline"
	neo4jstore "github.com/vuegraph/vuegraph/pkg/store/neo4j"
)

// loadOpts holds the command-line flags for the load command.
type loadOpts struct {
	strict  bool
	verify  bool
	noCache bool
	refresh bool
}

// loadCommand creates the load command for merging graphs into Neo4j.
func (c *CLI) loadCommand() *cobra.Command {
	opts := loadOpts{verify: true}

	cmd := &cobra.Command{
		Use:   "load <file.vue>",
		Short: "Extract a VUE document and merge its graph into Neo4j",
		Long: `Load extracts the graph and merges it into the configured Neo4j
database. Nodes become :VueNode vertices merged on their document id, and
links become relationships typed after their label. Links with another link
on either endpoint cannot be expressed as relationships and are skipped with
a warning.

Connection settings come from the config file and VUEGRAPH_NEO4J_*
environment variables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLoad(cmd, args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat unresolved references as errors")
	cmd.Flags().BoolVar(&opts.verify, "verify", opts.verify, "verify database counts after the merge")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache lookup")

	return cmd
}

func (c *CLI) runLoad(cmd *cobra.Command, input string, opts *loadOpts) error {
	ctx := cmd.Context()

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	result, err := c.execute(cmd, runner, pipeline.Options{
		Input:   input,
		Strict:  opts.strict,
		Refresh: opts.refresh,
	})
	if err != nil {
		return err
	}
	reportUnresolved(result.Unresolved)

	store, err := neo4jstore.New(ctx, c.Config.Neo4j)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	spin := newSpinnerWithContext(ctx, "Merging into "+c.Config.Neo4j.URI)
	spin.Start()
	stats, err := store.MergeGraph(ctx, result.Graph, input)
	spin.Stop()
	if err != nil {
		return err
	}

	printSuccess("Loaded %d nodes and %d relationships", stats.Nodes, stats.Relationships)
	printKeyValue("run id", stats.RunID)
	if len(stats.SkippedLinks) > 0 {
		parts := make([]string, len(stats.SkippedLinks))
		for i, id := range stats.SkippedLinks {
			parts[i] = fmt.Sprintf("%d", id)
		}
		printWarning("Skipped links with link endpoints: %s", strings.Join(parts, ", "))
	}

	if opts.verify {
		if err := store.VerifyRun(ctx, stats); err != nil {
			return err
		}
		printDetail("Counts verified against run id")
	}
	return nil
}
