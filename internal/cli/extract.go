package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vuegraph/vuegraph/pkg/graph"
	"github.com/vuegraph/vuegraph/pkg/pipeline"
)

// extractOpts holds the command-line flags for the extract command.
type extractOpts struct {
	output  string // output file path (stdout if empty)
	strict  bool   // fail on unresolved link references
	refresh bool   // bypass cache lookup
	noCache bool   // disable the cache entirely
}

// extractCommand creates the extract command.
func (c *CLI) extractCommand() *cobra.Command {
	opts := extractOpts{}

	cmd := &cobra.Command{
		Use:   "extract <file.vue>",
		Short: "Extract the node/link graph from a VUE document",
		Long: `Extract parses a VUE mind-map document, classifies its elements into
nodes and links, resolves link endpoints (including forward references and
links pointing at other links), and writes the resulting graph as JSON.

Examples:
  vuegraph extract map.vue                 # graph JSON to stdout
  vuegraph extract map.vue -o graph.json   # graph JSON to file
  vuegraph extract map.vue --strict        # fail if any reference is dangling`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExtract(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat unresolved references as errors")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache lookup")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runExtract(cmd *cobra.Command, input string, opts *extractOpts) error {
	runner := c.newRunner(cmd.Context(), opts.noCache)
	defer runner.Close()

	result, err := c.execute(cmd, runner, pipeline.Options{
		Input:   input,
		Strict:  opts.strict,
		Refresh: opts.refresh,
	})
	if err != nil {
		return err
	}

	if err := writeGraph(result.Graph, opts.output); err != nil {
		return err
	}

	printSuccess("Extracted %s", input)
	printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.CacheInfo.Hit)
	reportUnresolved(result.Unresolved)
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}

// execute runs the pipeline behind a spinner.
func (c *CLI) execute(cmd *cobra.Command, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spin := newSpinnerWithContext(cmd.Context(), "Extracting graph")
	spin.Start()
	result, err := runner.Execute(cmd.Context(), opts)
	spin.Stop()
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Extracted %d nodes and %d links in %d passes",
		result.Stats.NodeCount, result.Stats.LinkCount, result.Stats.Passes))
	return result, nil
}

// reportUnresolved warns about link ids left unresolved at the fixed point.
func reportUnresolved(ids []int) {
	if len(ids) == 0 {
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	printWarning("Unresolved link references: %s", strings.Join(parts, ", "))
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout when empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeGraph serializes g as JSON to path, or stdout if path is empty.
func writeGraph(g *graph.Graph, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return graph.Write(g, out)
}
