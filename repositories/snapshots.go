package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"unitu-block/models"
)

type SnapshotRepository struct {
	col *mongo.Collection
}

func NewSnapshotRepository(db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{col: db.Collection("feed_snapshots")}
}

// Insert stores one fetch snapshot.
func (r *SnapshotRepository) Insert(ctx context.Context, s models.FeedSnapshot) (*mongo.InsertOneResult, error) {
	if s.FetchedAt.IsZero() {
		s.FetchedAt = time.Now()
	}
	return r.col.InsertOne(ctx, s)
}

type ListSnapshotsOptions struct {
	Page       int
	PageSize   int
	InstanceID string
}

// List returns snapshots newest first with simple pagination.
func (r *SnapshotRepository) List(ctx context.Context, in ListSnapshotsOptions) ([]models.FeedSnapshot, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filter := bson.M{}
	if in.InstanceID != "" {
		filter["instance_id"] = in.InstanceID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "fetched_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.FeedSnapshot
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
