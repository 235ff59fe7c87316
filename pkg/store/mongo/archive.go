// Package mongo archives extraction runs in MongoDB. Unlike the graph
// database load, an archive run keeps the full extraction result, including
// links the graph store has to skip, so past runs can be replayed or diffed.
package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vuegraph/vuegraph/pkg/config"
	"github.com/vuegraph/vuegraph/pkg/errors"
	"github.com/vuegraph/vuegraph/pkg/graph"
)

const runsCollection = "runs"

// Run is one archived extraction, stored as a single document.
type Run struct {
	RunID       string        `bson:"run_id"`
	Source      string        `bson:"source"`
	ExtractedAt time.Time     `bson:"extracted_at"`
	Nodes       []*graph.Node `bson:"nodes"`
	Links       []*graph.Link `bson:"links"`
	Unresolved  []int         `bson:"unresolved,omitempty"`
}

// Archive stores and retrieves extraction runs.
type Archive struct {
	client *mongo.Client
	runs   *mongo.Collection
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, cfg config.MongoConfig) (*Archive, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "unable to connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "unable to reach mongodb")
	}
	return &Archive{
		client: client,
		runs:   client.Database(cfg.Database).Collection(runsCollection),
	}, nil
}

// Close disconnects from MongoDB.
func (a *Archive) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

// Save archives one extraction result and returns the generated run id.
func (a *Archive) Save(ctx context.Context, source string, g *graph.Graph, unresolved []int) (string, error) {
	run := Run{
		RunID:       uuid.NewString(),
		Source:      source,
		ExtractedAt: time.Now().UTC(),
		Nodes:       g.Nodes(),
		Links:       g.Links(),
		Unresolved:  unresolved,
	}
	if _, err := a.runs.InsertOne(ctx, run); err != nil {
		return "", errors.Wrap(errors.ErrCodeStore, err, "unable to archive run")
	}
	return run.RunID, nil
}

// Load retrieves an archived run by id and rebuilds its graph.
func (a *Archive) Load(ctx context.Context, runID string) (*Run, *graph.Graph, error) {
	var run Run
	err := a.runs.FindOne(ctx, bson.M{"run_id": runID}).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil, errors.New(errors.ErrCodeRunNotFound, "no archived run with id %s", runID)
	}
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeStore, err, "unable to load run")
	}

	g, err := rebuildGraph(run.Nodes, run.Links)
	if err != nil {
		return nil, nil, err
	}
	return &run, g, nil
}

// rebuildGraph reassembles an archived node and link set into a Graph. Id
// collisions mean the archived document was tampered with or corrupted.
func rebuildGraph(nodes []*graph.Node, links []*graph.Link) (*graph.Graph, error) {
	g := graph.New()
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, l := range links {
		if err := g.AddLink(l); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// RunSummary is the listing view of an archived run.
type RunSummary struct {
	RunID       string    `bson:"run_id"`
	Source      string    `bson:"source"`
	ExtractedAt time.Time `bson:"extracted_at"`
	NodeCount   int       `bson:"node_count"`
	LinkCount   int       `bson:"link_count"`
}

// List returns summaries of archived runs, newest first.
func (a *Archive) List(ctx context.Context, limit int64) ([]RunSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "extracted_at", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.D{
			{Key: "run_id", Value: 1},
			{Key: "source", Value: 1},
			{Key: "extracted_at", Value: 1},
			{Key: "node_count", Value: bson.D{{Key: "$size", Value: "$nodes"}}},
			{Key: "link_count", Value: bson.D{{Key: "$size", Value: "$links"}}},
		}}},
	}

	cursor, err := a.runs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "unable to list runs")
	}
	defer cursor.Close(ctx)

	var out []RunSummary
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "unable to decode run summaries")
	}
	return out, nil
}
