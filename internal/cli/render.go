package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vuegraph/vuegraph/pkg/errors"
	"github.com/vuegraph/vuegraph/pkg/pipeline"
	"github.com/vuegraph/vuegraph/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path (stdout if empty)
	format  string // "dot" or "svg"
	noCache bool
	refresh bool
}

// renderCommand creates the render command for visualizing extracted graphs.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "render <file.vue>",
		Short: "Render a VUE document's graph as DOT or SVG",
		Long: `Render extracts the graph and emits a Graphviz visualization.

Links referenced by other links are drawn as diamond pseudo-nodes so the
referencing edge has an attachment point.

Examples:
  vuegraph render map.vue                      # DOT to stdout
  vuegraph render map.vue -f svg -o map.svg    # SVG to file`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatDOT && opts.format != formatSVG {
				return errors.New(errors.ErrCodeInvalidFormat,
					"invalid format %q (must be dot or svg)", opts.format)
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache lookup")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	runner := c.newRunner(cmd.Context(), opts.noCache)
	defer runner.Close()

	result, err := c.execute(cmd, runner, pipeline.Options{Input: input, Refresh: opts.refresh})
	if err != nil {
		return err
	}

	dot := render.ToDOT(result.Graph)
	data := []byte(dot)
	if opts.format == formatSVG {
		data, err = render.RenderSVG(cmd.Context(), dot)
		if err != nil {
			return err
		}
	}

	if opts.output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printSuccess("Rendered %s", input)
	printFile(opts.output)
	return nil
}
