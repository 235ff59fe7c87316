package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vuegraph/vuegraph/pkg/pipeline"
	mongostore "github.com/vuegraph/vuegraph/pkg/store/mongo"
)

// archiveCommand creates the archive command group for MongoDB runs.
func (c *CLI) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Store and retrieve extraction runs in MongoDB",
	}

	cmd.AddCommand(c.archiveSaveCommand())
	cmd.AddCommand(c.archiveListCommand())
	cmd.AddCommand(c.archiveGetCommand())

	return cmd
}

// archiveSaveCommand creates the "archive save" subcommand.
func (c *CLI) archiveSaveCommand() *cobra.Command {
	var strict, noCache, refresh bool

	cmd := &cobra.Command{
		Use:   "save <file.vue>",
		Short: "Extract a document and archive the full result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			result, err := c.execute(cmd, runner, pipeline.Options{
				Input:   args[0],
				Strict:  strict,
				Refresh: refresh,
			})
			if err != nil {
				return err
			}

			archive, err := mongostore.New(ctx, c.Config.Mongo)
			if err != nil {
				return err
			}
			defer archive.Close(ctx)

			runID, err := archive.Save(ctx, args[0], result.Graph, result.Unresolved)
			if err != nil {
				return err
			}

			printSuccess("Archived %s", args[0])
			printKeyValue("run id", runID)
			printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.CacheInfo.Hit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat unresolved references as errors")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache lookup")
	return cmd
}

// archiveListCommand creates the "archive list" subcommand.
func (c *CLI) archiveListCommand() *cobra.Command {
	var limit int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			archive, err := mongostore.New(ctx, c.Config.Mongo)
			if err != nil {
				return err
			}
			defer archive.Close(ctx)

			runs, err := archive.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo("No archived runs")
				return nil
			}
			for _, run := range runs {
				fmt.Println(StyleHighlight.Render(run.RunID))
				printDetail("%s · %d nodes · %d links · %s",
					run.Source, run.NodeCount, run.LinkCount,
					run.ExtractedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&limit, "limit", 20, "maximum runs to list")
	return cmd
}

// archiveGetCommand creates the "archive get" subcommand.
func (c *CLI) archiveGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <run-id>",
		Short: "Write an archived run's graph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			archive, err := mongostore.New(ctx, c.Config.Mongo)
			if err != nil {
				return err
			}
			defer archive.Close(ctx)

			run, g, err := archive.Load(ctx, args[0])
			if err != nil {
				return err
			}
			if err := writeGraph(g, output); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Restored run from %s", run.Source)
				printFile(output)
			}
			reportUnresolved(run.Unresolved)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
