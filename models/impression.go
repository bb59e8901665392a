package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlockImpression is the per-instance, per-day render counter kept up
// to date by the analytics consumer.
// Collection: block_impressions, unique on (instance_id, day)
type BlockImpression struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InstanceID string             `bson:"instance_id" json:"instance_id"`
	Day        string             `bson:"day" json:"day"` // "2006-01-02", UTC
	Count      int64              `bson:"count" json:"count"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
