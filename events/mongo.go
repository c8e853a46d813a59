package events

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

// MongoConfig configures the Mongo-backed sink.
type MongoConfig struct {
	URI        string        `yaml:"uri" json:"uri"`
	Database   string        `yaml:"database" json:"database"`
	Collection string        `yaml:"collection" json:"collection"`
	Timeout    time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// MongoSink persists events to a MongoDB collection. Each insert runs in
// its own goroutine under the sink's deadline, detached from the request
// context, so a slow analytics backend cannot stall or cancel a retrieval.
type MongoSink struct {
	collection *mongo.Collection
	timeout    time.Duration
	logger     *zap.Logger
}

// NewMongoSink creates a Mongo-backed sink from an existing client.
func NewMongoSink(client *mongo.Client, cfg MongoConfig, logger *zap.Logger) *MongoSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Database == "" {
		cfg.Database = "ragflow"
	}
	if cfg.Collection == "" {
		cfg.Collection = "events"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &MongoSink{
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		timeout:    cfg.Timeout,
		logger:     logger.With(zap.String("component", "mongo_event_sink")),
	}
}

func (s *MongoSink) Capture(_ context.Context, e Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if _, err := s.collection.InsertOne(ctx, e); err != nil {
			// Analytics loss is tolerable; the retrieval path never sees this.
			s.logger.Warn("event insert failed",
				zap.String("event", e.Name),
				zap.Error(err))
		}
	}()
}
