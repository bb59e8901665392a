package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"unitu-block/block"
	"unitu-block/config"
	"unitu-block/dto"
	"unitu-block/eventbus"
	"unitu-block/events"
	"unitu-block/feed"
	"unitu-block/feeder"
	"unitu-block/logger"
	"unitu-block/models"
	"unitu-block/repositories"
	"unitu-block/unitu"
)

const snapshotTitleSample = 3

// BlockService assembles block content for HTTP consumers.
//
// Snapshots and impression events are best-effort side effects: their
// failures are logged and never change what the caller receives.
type BlockService struct {
	client    block.FeedFetcher
	renderer  block.BodyRenderer
	defaults  config.BlockDefaults
	snapshots *repositories.SnapshotRepository // optional
	bus       eventbus.EventBus                // optional
}

func NewBlockService(client block.FeedFetcher, renderer block.BodyRenderer, defaults config.BlockDefaults, snapshots *repositories.SnapshotRepository, bus eventbus.EventBus) *BlockService {
	return &BlockService{
		client:    client,
		renderer:  renderer,
		defaults:  defaults,
		snapshots: snapshots,
		bus:       bus,
	}
}

// instrumentedFetcher wraps the Unitu client to time the upstream call,
// record a snapshot and keep the response for the impression event.
type instrumentedFetcher struct {
	svc  *BlockService
	inst config.BlockInstance
	resp *unitu.FeedResponse
}

func (f *instrumentedFetcher) FetchNotifications(ctx context.Context) *unitu.FeedResponse {
	start := time.Now()
	resp := f.svc.client.FetchNotifications(ctx)
	f.resp = resp
	f.svc.recordSnapshot(ctx, f.inst, resp, time.Since(start))
	return resp
}

// Content runs one full render context for the given instance.
// Returns (nil, nil) when there is nothing to show.
func (s *BlockService) Content(ctx context.Context, inst config.BlockInstance) (*dto.BlockContentDTO, error) {
	fetcher := &instrumentedFetcher{svc: s, inst: inst}

	blk := block.NewNewsfeedBlock(fetcher, s.renderer, feeder.FetchAnnouncements, s.defaults)
	blk.Init()
	blk.Specialization(block.InstanceConfig{
		Title:            inst.Title,
		AnnouncementsRSS: inst.AnnouncementsRSS,
	})

	content, err := blk.GetContent(ctx)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	s.publishImpression(ctx, inst, fetcher.resp)

	d := dto.NewBlockContentDTO(content)
	return &d, nil
}

// Payload returns the raw render payload for hosts that template
// client-side. Returns (nil, nil) when there is nothing to show.
// A non-nil payload counts as a render and publishes an impression,
// same as Content.
func (s *BlockService) Payload(ctx context.Context, inst config.BlockInstance) (*feed.RenderPayload, error) {
	fetcher := &instrumentedFetcher{svc: s, inst: inst}
	formatter := feed.NewFormatter(s.defaults.MaxWords, s.defaults.DepartmentsLimit)
	payload := formatter.Format(fetcher.FetchNotifications(ctx))
	if payload != nil {
		s.publishImpression(ctx, inst, fetcher.resp)
	}
	return payload, nil
}

func (s *BlockService) recordSnapshot(ctx context.Context, inst config.BlockInstance, resp *unitu.FeedResponse, dur time.Duration) {
	if s.snapshots == nil || resp.IsEmpty() || resp.Error != "" {
		return
	}

	sample := make([]string, 0, snapshotTitleSample)
	for _, p := range resp.Posts {
		if len(sample) == snapshotTitleSample {
			break
		}
		title, _ := feed.WordTruncate(p.Title, 10)
		sample = append(sample, title)
	}

	snap := models.FeedSnapshot{
		InstanceID:       inst.ID,
		UniversityDomain: resp.UniversityDomain,
		PostCount:        len(resp.Posts),
		FetchDurationMs:  dur.Milliseconds(),
		TitleSample:      sample,
		FetchedAt:        time.Now(),
	}
	if _, err := s.snapshots.Insert(ctx, snap); err != nil {
		logger.Log.Errorf("failed to store feed snapshot for %s: %v", inst.ID, err)
	}
}

func (s *BlockService) publishImpression(ctx context.Context, inst config.BlockInstance, resp *unitu.FeedResponse) {
	if s.bus == nil {
		return
	}

	payload := events.BlockImpressionEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.NewString(),
			Type:      events.BlockImpressionRecorded,
			Timestamp: time.Now(),
			Source:    "server",
			Version:   "1",
		},
		InstanceID: inst.ID,
		RenderedAt: time.Now(),
	}
	if resp != nil {
		payload.UniversityDomain = resp.UniversityDomain
		payload.PostCount = len(resp.Posts)
	}

	evt, err := eventbus.NewJSONEvent(payload.ID, payload, 0)
	if err != nil {
		logger.Log.Errorf("failed to build impression event for %s: %v", inst.ID, err)
		return
	}

	if err := s.bus.Publish(ctx, eventbus.TopicBlockImpressions.Base(), evt); err != nil {
		logger.Log.Errorf("failed to publish impression event for %s: %v", inst.ID, err)
	}
}
