package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/vuegraph/vuegraph/pkg/cache"
	"github.com/vuegraph/vuegraph/pkg/httpapi"
	"github.com/vuegraph/vuegraph/pkg/pipeline"
)

// serveCommand creates the serve command for the extraction HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the extraction HTTP API",
		Long: `Serve starts an HTTP server exposing extraction over POST /v1/extract
and rendering over POST /v1/render. The request body is the raw VUE
document; the response is the extracted graph as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	// Server-side requests share one cache namespace, isolated from CLI runs.
	keyer := cache.NewScopedKeyer(nil, "serve:")
	runner := pipeline.NewRunner(c.newCache(ctx, noCache), keyer, c.Logger)
	defer runner.Close()

	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewServer(runner, c.Logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		c.Logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
