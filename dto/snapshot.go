package dto

import (
	"time"

	"unitu-block/models"
)

// SnapshotDTO exposes a fetch snapshot to API consumers.
// ID is a hex string to keep transport simple.
type SnapshotDTO struct {
	ID               string    `json:"id"`
	InstanceID       string    `json:"instance_id"`
	UniversityDomain string    `json:"university_domain"`
	PostCount        int       `json:"post_count"`
	FetchDurationMs  int64     `json:"fetch_duration_ms"`
	TitleSample      []string  `json:"title_sample"`
	FetchedAt        time.Time `json:"fetched_at"`
}

// NewSnapshotDTO constructs SnapshotDTO from models.FeedSnapshot
func NewSnapshotDTO(s models.FeedSnapshot) SnapshotDTO {
	return SnapshotDTO{
		ID:               s.ID.Hex(),
		InstanceID:       s.InstanceID,
		UniversityDomain: s.UniversityDomain,
		PostCount:        s.PostCount,
		FetchDurationMs:  s.FetchDurationMs,
		TitleSample:      s.TitleSample,
		FetchedAt:        s.FetchedAt,
	}
}
