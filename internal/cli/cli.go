// Package cli implements the vuegraph command-line interface.
//
// This package provides commands for extracting graphs from VUE mind maps,
// inspecting and rendering them, and loading them into graph stores. The CLI
// is built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - extract: Extract the node/link graph from a VUE document
//   - nodes, links: Print extracted elements as tables
//   - render: Generate DOT or SVG visualizations
//   - load: Merge a graph into Neo4j
//   - archive: Store and retrieve extraction runs in MongoDB
//   - serve: Run the extraction HTTP API
//   - cache: Manage the extraction cache
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vuegraph/vuegraph/pkg/buildinfo"
	"github.com/vuegraph/vuegraph/pkg/cache"
	"github.com/vuegraph/vuegraph/pkg/config"
	"github.com/vuegraph/vuegraph/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "vuegraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and loaded config.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
	if path, err := config.Path(); err == nil {
		if cfg, err := config.Load(path); err == nil {
			c.Config = cfg
		} else {
			c.Logger.Warn("ignoring config file", "path", path, "err", err)
		}
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "vuegraph",
		Short:        "Vuegraph extracts typed graphs from VUE mind maps",
		Long:         `Vuegraph is a CLI tool for turning VUE mind-map documents into directed, typed graphs, inspecting them, and loading them into graph databases.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.extractCommand())
	root.AddCommand(c.nodesCommand())
	root.AddCommand(c.linksCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.loadCommand())
	root.AddCommand(c.archiveCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(ctx, noCache), nil, c.Logger)
}

func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache()
	}
	if c.Config.Cache.Backend == "redis" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr: c.Config.Cache.RedisAddr,
			DB:   c.Config.Cache.RedisDB,
		})
		if err == nil {
			return rc
		}
		c.Logger.Warn("redis cache unavailable, falling back to file cache", "err", err)
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using the XDG standard.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
