package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"unitu-block/models"
)

type ImpressionRepository struct {
	col *mongo.Collection
}

func NewImpressionRepository(db *mongo.Database) *ImpressionRepository {
	return &ImpressionRepository{col: db.Collection("block_impressions")}
}

// IncrementDaily bumps the counter for (instance, day of renderedAt).
// Upserts so the first impression of a day creates the document.
func (r *ImpressionRepository) IncrementDaily(ctx context.Context, instanceID string, renderedAt time.Time) error {
	day := renderedAt.UTC().Format("2006-01-02")
	filter := bson.M{"instance_id": instanceID, "day": day}
	update := bson.M{
		"$inc": bson.M{"count": 1},
		"$set": bson.M{"updated_at": time.Now()},
		"$setOnInsert": bson.M{
			"instance_id": instanceID,
			"day":         day,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByInstance returns the daily counters for one instance, newest
// day first, capped at limit.
func (r *ImpressionRepository) FindByInstance(ctx context.Context, instanceID string, limit int) ([]models.BlockImpression, error) {
	if limit < 1 || limit > 366 {
		limit = 30
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "day", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"instance_id": instanceID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BlockImpression
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
