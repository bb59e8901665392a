package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedSnapshot records one successful upstream fetch.
// Collection: feed_snapshots
// Observational only: the formatter never reads these back.
type FeedSnapshot struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InstanceID       string             `bson:"instance_id" json:"instance_id"`
	UniversityDomain string             `bson:"university_domain" json:"university_domain"`
	PostCount        int                `bson:"post_count" json:"post_count"`
	FetchDurationMs  int64              `bson:"fetch_duration_ms" json:"fetch_duration_ms"`
	TitleSample      []string           `bson:"title_sample" json:"title_sample"`
	FetchedAt        time.Time          `bson:"fetched_at" json:"fetched_at"`
}
