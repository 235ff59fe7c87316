// Package pipeline provides the core extraction pipeline for vuegraph.
//
// It implements the read → extract flow shared by the CLI, the HTTP API, and
// the store loaders. Centralizing this logic keeps caching and strictness
// behavior consistent across all entry points.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Input: "map.vue"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Graph.NodeCount())
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vuegraph/vuegraph/pkg/errors"
	"github.com/vuegraph/vuegraph/pkg/graph"
)

// Options configures a pipeline run. The struct supports JSON serialization
// for API requests.
type Options struct {
	// Input is the path to the source document. Exactly one of Input and
	// Source must be set.
	Input string `json:"input,omitempty"`

	// Source holds raw document bytes, for callers that already have the
	// document in memory (the HTTP API).
	Source []byte `json:"-"`

	// SourceName labels in-memory sources in logs and store records.
	SourceName string `json:"source_name,omitempty"`

	// Strict makes unresolved link references a fatal error instead of a
	// reported leftover.
	Strict bool `json:"strict,omitempty"`

	// Refresh bypasses the cache lookup but still stores the fresh result.
	Refresh bool `json:"refresh,omitempty"`

	// Logger is the run's logger. Not serialized.
	Logger *log.Logger `json:"-"`
}

// Result holds the outputs of a pipeline run.
type Result struct {
	// Graph is the extracted graph.
	Graph *graph.Graph

	// Unresolved lists link ids whose endpoints never resolved.
	Unresolved []int

	// GraphHash is the content hash of the source document.
	GraphHash string

	// Stats holds timing and size information.
	Stats Stats

	// CacheInfo reports whether the result came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	LinkCount   int
	Passes      int
	ReadTime    time.Duration
	ExtractTime time.Duration
}

// CacheInfo tracks cache usage for a run.
type CacheInfo struct {
	Hit bool // Whether the extraction came from cache
}

// Validate checks required fields and applies defaults. It is idempotent.
func (o *Options) Validate() error {
	if o.Input == "" && o.Source == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input path or source bytes required")
	}
	if o.Input != "" && o.Source != nil {
		return errors.New(errors.ErrCodeInvalidInput, "input path and source bytes are mutually exclusive")
	}
	if o.Input != "" {
		if err := errors.ValidateDocumentPath(o.Input); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// sourceLabel names the run's input in logs and hook calls.
func (o *Options) sourceLabel() string {
	if o.Input != "" {
		return o.Input
	}
	if o.SourceName != "" {
		return o.SourceName
	}
	return "<memory>"
}
