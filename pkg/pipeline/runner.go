package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vuegraph/vuegraph/pkg/cache"
	"github.com/vuegraph/vuegraph/pkg/errors"
	"github.com/vuegraph/vuegraph/pkg/extract"
	"github.com/vuegraph/vuegraph/pkg/graph"
	"github.com/vuegraph/vuegraph/pkg/observability"
	"github.com/vuegraph/vuegraph/pkg/vue"
)

// Runner executes the extraction pipeline with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the default key layout, and a nil logger uses the package default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// cachedRun is the cache envelope for one extraction result.
type cachedRun struct {
	Graph      json.RawMessage `json:"graph"`
	Unresolved []int           `json:"unresolved,omitempty"`
	Passes     int             `json:"passes"`
}

// Execute runs the read → extract pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	source := opts.sourceLabel()

	readStart := time.Now()
	data := opts.Source
	if opts.Input != "" {
		var err error
		data, err = os.ReadFile(opts.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document not found")
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "unable to read document")
		}
	}

	result := &Result{GraphHash: cache.Hash(data)}
	result.Stats.ReadTime = time.Since(readStart)

	cacheKey := r.Keyer.GraphKey(result.GraphHash, opts.Strict)
	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, cacheKey); ok {
			observability.Cache().OnCacheHit(ctx, "graph")
			result.Graph = cached.graph
			result.Unresolved = cached.run.Unresolved
			result.Stats.Passes = cached.run.Passes
			result.Stats.NodeCount = cached.graph.NodeCount()
			result.Stats.LinkCount = cached.graph.LinkCount()
			result.CacheInfo.Hit = true
			opts.Logger.Debug("extraction cache hit", "source", source, "hash", result.GraphHash)
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	extractStart := time.Now()
	observability.Extract().OnExtractStart(ctx, source)

	run, err := r.extract(data, opts)
	duration := time.Since(extractStart)
	if err != nil {
		observability.Extract().OnExtractComplete(ctx, source, 0, 0, duration, err)
		return nil, err
	}
	result.Graph = run.Graph
	result.Unresolved = run.Unresolved
	result.Stats.Passes = run.Passes()
	result.Stats.ExtractTime = duration
	result.Stats.NodeCount = run.Graph.NodeCount()
	result.Stats.LinkCount = run.Graph.LinkCount()

	observability.Extract().OnExtractComplete(ctx, source,
		result.Stats.NodeCount, result.Stats.LinkCount, duration, nil)
	if len(result.Unresolved) > 0 {
		observability.Extract().OnUnresolved(ctx, source, result.Unresolved)
	}

	opts.Logger.Info("extracted graph",
		"source", source,
		"nodes", result.Stats.NodeCount,
		"links", result.Stats.LinkCount,
		"unresolved", len(result.Unresolved),
		"duration", duration)

	r.store(ctx, cacheKey, result)
	return result, nil
}

// extract parses the document and runs extraction, enforcing strictness.
func (r *Runner) extract(data []byte, opts Options) (*extract.Result, error) {
	root, err := vue.ReadDocument(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	run, err := extract.Extract(root)
	if err != nil {
		return nil, err
	}
	if opts.Strict && len(run.Unresolved) > 0 {
		ids := make([]string, len(run.Unresolved))
		for i, id := range run.Unresolved {
			ids[i] = strconv.Itoa(id)
		}
		return nil, errors.New(errors.ErrCodeUnresolvedLinks,
			"unresolved link references: %s", strings.Join(ids, ", "))
	}
	return run, nil
}

type lookupResult struct {
	run   cachedRun
	graph *graph.Graph
}

func (r *Runner) lookup(ctx context.Context, key string) (*lookupResult, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var run cachedRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, false
	}
	g, err := graph.Read(bytes.NewReader(run.Graph))
	if err != nil {
		// A corrupt entry is dropped rather than surfaced.
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	return &lookupResult{run: run, graph: g}, true
}

func (r *Runner) store(ctx context.Context, key string, result *Result) {
	graphData, err := graph.Marshal(result.Graph)
	if err != nil {
		return
	}
	data, err := json.Marshal(cachedRun{
		Graph:      graphData,
		Unresolved: result.Unresolved,
		Passes:     result.Stats.Passes,
	})
	if err != nil {
		return
	}
	if r.Cache.Set(ctx, key, data, cache.TTLGraph) == nil {
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
