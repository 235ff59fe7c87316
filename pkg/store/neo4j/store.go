// Package neo4j loads extracted graphs into a Neo4j database. Each load run
// is tagged with a generated run id so successive loads of the same map can
// be told apart and verified independently.
package neo4j

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/vuegraph/vuegraph/pkg/config"
	"github.com/vuegraph/vuegraph/pkg/errors"
	"github.com/vuegraph/vuegraph/pkg/graph"
	"github.com/vuegraph/vuegraph/pkg/observability"
)

// Store wraps a Neo4j driver for graph loads.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
}

// MergeStats summarizes a completed load run.
type MergeStats struct {
	RunID         string
	Nodes         int
	Relationships int
	// SkippedLinks lists link ids whose endpoints are both links; these
	// cannot be expressed as graph database relationships.
	SkippedLinks []int
}

// New connects to Neo4j and verifies connectivity before returning.
func New(ctx context.Context, cfg config.Neo4jConfig) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "unable to create neo4j driver")
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "unable to reach neo4j")
	}
	return &Store{driver: driver, database: cfg.Database}, nil
}

// Close releases the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// MergeGraph loads all nodes and compatible links of g into the database,
// tagged with source and a fresh run id. Links whose endpoints are both
// links are skipped and reported in the returned stats.
func (s *Store) MergeGraph(ctx context.Context, g *graph.Graph, source string) (*MergeStats, error) {
	runID := uuid.NewString()
	started := time.Now()
	loadedAt := started.UTC().Format(time.RFC3339)
	observability.Store().OnMergeStart(ctx, source, g.NodeCount(), g.LinkCount())

	stats := &MergeStats{RunID: runID}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	for _, n := range g.Nodes() {
		params, err := nodeParams(n, source, runID, loadedAt)
		if err != nil {
			return nil, err
		}
		if _, err := session.Run(ctx, nodeMergeQuery, params); err != nil {
			wrapped := errors.Wrap(errors.ErrCodeStore, err, "unable to merge node")
			observability.Store().OnMergeComplete(ctx, source, time.Since(started), wrapped)
			return nil, wrapped
		}
		stats.Nodes++
	}

	links, skipped := g.CompatibleLinks()
	stats.SkippedLinks = skipped
	for _, l := range links {
		query := relationshipMergeQuery(l)
		if _, err := session.Run(ctx, query, relationshipParams(l, source, runID, loadedAt)); err != nil {
			wrapped := errors.Wrap(errors.ErrCodeStore, err, "unable to merge relationship")
			observability.Store().OnMergeComplete(ctx, source, time.Since(started), wrapped)
			return nil, wrapped
		}
		stats.Relationships++
	}

	observability.Store().OnMergeComplete(ctx, source, time.Since(started), nil)
	return stats, nil
}

// VerifyRun recounts the nodes and relationships tagged with runID and
// compares them against the expected stats.
func (s *Store) VerifyRun(ctx context.Context, stats *MergeStats) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	params := map[string]any{"runID": stats.RunID}
	nodes, err := countQuery(ctx, session, verifyNodesQuery, params)
	if err != nil {
		return err
	}
	rels, err := countQuery(ctx, session, verifyRelationshipsQuery, params)
	if err != nil {
		return err
	}

	ok := nodes == stats.Nodes && rels == stats.Relationships
	observability.Store().OnVerify(ctx, stats.RunID, ok)
	if !ok {
		return errors.New(errors.ErrCodeStoreMismatch, "database counts do not match load run")
	}
	return nil
}

func countQuery(ctx context.Context, session neo4j.SessionWithContext, query string, params map[string]any) (int, error) {
	result, err := session.Run(ctx, query, params)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeStore, err, "verification query failed")
	}
	record, err := result.Single(ctx)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeStore, err, "verification query returned no rows")
	}
	count, _ := record.Get("count")
	n, ok := count.(int64)
	if !ok {
		return 0, errors.New(errors.ErrCodeStore, "verification query returned unexpected type")
	}
	return int(n), nil
}

// nodeParams flattens a node into Cypher parameters. Structured resource and
// metadata values are stored as JSON strings since Neo4j properties cannot
// hold nested maps.
func nodeParams(n *graph.Node, source, runID, loadedAt string) (map[string]any, error) {
	params := map[string]any{
		"vueID":    n.ID,
		"label":    n.DisplayLabel(),
		"layer":    n.Layer,
		"source":   source,
		"runID":    runID,
		"loadedAt": loadedAt,
		"parent":   nil,
		"resource": nil,
		"keywords": nil,
	}
	if n.Parent != nil {
		params["parent"] = *n.Parent
	}
	if n.Resource != nil {
		data, err := json.Marshal(n.Resource)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "unable to serialize resource")
		}
		params["resource"] = string(data)
	}
	if n.Metadata != nil && len(n.Metadata.Keywords) > 0 {
		params["keywords"] = n.Metadata.Keywords
	}
	return params, nil
}

func relationshipParams(l *graph.Link, source, runID, loadedAt string) map[string]any {
	return map[string]any{
		"startID":  l.Start.ID,
		"endID":    l.End.ID,
		"vueID":    l.ID,
		"label":    l.DisplayLabel(),
		"linkType": l.Type,
		"directed": l.Directed == graph.Directed,
		"source":   source,
		"runID":    runID,
		"loadedAt": loadedAt,
	}
}
