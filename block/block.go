package block

import (
	"context"

	"unitu-block/config"
	"unitu-block/feed"
	"unitu-block/feeder"
	"unitu-block/logger"
	"unitu-block/unitu"
)

// Block is the contract a host page framework drives. It is a plain
// interface so a block is composed from its collaborators instead of
// subclassing anything host-provided.
//
// Lifecycle: the host calls Init once after construction,
// Specialization when instance settings exist, then GetContent one or
// more times within the same render context.
type Block interface {
	Init()
	ApplicableFormats() map[string]bool
	HasConfig() bool
	InstanceAllowMultiple() bool
	Specialization(cfg InstanceConfig)
	GetContent(ctx context.Context) (*Content, error)
}

// InstanceConfig is the per-instance configuration handed to
// Specialization. It is an explicit input, never mutated in place.
type InstanceConfig struct {
	Title            string
	AnnouncementsRSS string
}

// Content is what the host places on the page. A nil *Content means
// the block has nothing to show and the host should skip it.
type Content struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Footer string `json:"footer"` // trusted raw markup
}

// FeedFetcher obtains the upstream notification feed.
type FeedFetcher interface {
	FetchNotifications(ctx context.Context) *unitu.FeedResponse
}

// BodyRenderer renders the payload into block body markup.
type BodyRenderer interface {
	RenderBlock(payload *feed.RenderPayload, announcements []feeder.AnnouncementItem) (string, error)
}

// AnnouncementsFetcher loads the optional announcements feed.
// Declared as a function type so tests can stub it out.
type AnnouncementsFetcher func(rssURL string, limit int) ([]feeder.AnnouncementItem, error)

const announcementsLimit = 5

// NewsfeedBlock renders the Unitu notification feed.
//
// One NewsfeedBlock serves one render context: GetContent computes its
// result at most once and hands back the same *Content afterwards.
type NewsfeedBlock struct {
	fetcher       FeedFetcher
	renderer      BodyRenderer
	announcements AnnouncementsFetcher
	defaults      config.BlockDefaults

	title            string
	announcementsRSS string

	computed bool
	content  *Content
}

func NewNewsfeedBlock(fetcher FeedFetcher, renderer BodyRenderer, announcements AnnouncementsFetcher, defaults config.BlockDefaults) *NewsfeedBlock {
	return &NewsfeedBlock{
		fetcher:       fetcher,
		renderer:      renderer,
		announcements: announcements,
		defaults:      defaults,
	}
}

func (b *NewsfeedBlock) Init() {
	b.title = b.defaults.Title
}

// ApplicableFormats allows the block on every page format.
func (b *NewsfeedBlock) ApplicableFormats() map[string]bool {
	return map[string]bool{"all": true}
}

func (b *NewsfeedBlock) HasConfig() bool { return true }

func (b *NewsfeedBlock) InstanceAllowMultiple() bool { return false }

// Specialization applies the per-instance settings. An empty title
// keeps the default.
func (b *NewsfeedBlock) Specialization(cfg InstanceConfig) {
	if cfg.Title != "" {
		b.title = cfg.Title
	}
	b.announcementsRSS = cfg.AnnouncementsRSS
}

// GetContent builds the block content: fetch, format, render.
// Upstream errors never escape to the host; the worst case is an empty
// block body. A nil result (with nil error) means nothing to render.
func (b *NewsfeedBlock) GetContent(ctx context.Context) (*Content, error) {
	if b.computed {
		return b.content, nil
	}

	formatter := feed.NewFormatter(b.defaults.MaxWords, b.defaults.DepartmentsLimit)
	payload := formatter.Format(b.fetcher.FetchNotifications(ctx))
	if payload == nil {
		b.computed = true
		b.content = nil
		return nil, nil
	}

	body, err := b.renderer.RenderBlock(payload, b.fetchAnnouncements())
	if err != nil {
		// Not memoized: a later call in the same render context must
		// see the failure again, not a silent "nothing to show".
		return nil, err
	}

	b.computed = true
	b.content = &Content{
		Title:  b.title,
		Body:   body,
		Footer: payload.Footer,
	}
	return b.content, nil
}

// fetchAnnouncements loads the optional RSS items. Failures only cost
// the announcements section, never the block.
func (b *NewsfeedBlock) fetchAnnouncements() []feeder.AnnouncementItem {
	if b.announcementsRSS == "" || b.announcements == nil {
		return nil
	}
	items, err := b.announcements(b.announcementsRSS, announcementsLimit)
	if err != nil {
		logger.Log.Warnf("announcements fetch failed for %s: %v", b.announcementsRSS, err)
		return nil
	}
	for i := range items {
		summary, _ := feed.WordTruncate(items[i].Summary, b.defaults.MaxWords)
		items[i].Summary = summary
	}
	return items
}
