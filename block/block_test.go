package block_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"unitu-block/block"
	"unitu-block/config"
	"unitu-block/feed"
	"unitu-block/feeder"
	"unitu-block/unitu"
)

type stubFetcher struct {
	resp  *unitu.FeedResponse
	calls int
}

func (s *stubFetcher) FetchNotifications(ctx context.Context) *unitu.FeedResponse {
	s.calls++
	return s.resp
}

type stubRenderer struct {
	body          string
	err           error
	gotPayload    *feed.RenderPayload
	announcements []feeder.AnnouncementItem
}

func (s *stubRenderer) RenderBlock(payload *feed.RenderPayload, announcements []feeder.AnnouncementItem) (string, error) {
	s.gotPayload = payload
	s.announcements = announcements
	return s.body, s.err
}

var testDefaults = config.BlockDefaults{
	Title:            "Unitu Notifications",
	MaxWords:         50,
	DepartmentsLimit: 80,
}

func feedWithOnePost() *unitu.FeedResponse {
	return &unitu.FeedResponse{
		UniversityDomain: "uni.example.ac.uk",
		Posts:            []unitu.PostRecord{{Title: "Hello"}},
	}
}

func TestGetContentRendersFeed(t *testing.T) {
	fetcher := &stubFetcher{resp: feedWithOnePost()}
	renderer := &stubRenderer{body: "<ul>rendered</ul>"}

	b := block.NewNewsfeedBlock(fetcher, renderer, nil, testDefaults)
	b.Init()

	content, err := b.GetContent(context.Background())
	assert.NoError(t, err)
	if content == nil {
		t.Fatal("expected content for a non-empty feed")
	}
	assert.Equal(t, "Unitu Notifications", content.Title)
	assert.Equal(t, "<ul>rendered</ul>", content.Body)
	assert.Contains(t, content.Footer, "uni.example.ac.uk")
	assert.Len(t, renderer.gotPayload.Posts, 1)
}

func TestGetContentNilForEmptyFeed(t *testing.T) {
	fetcher := &stubFetcher{resp: &unitu.FeedResponse{}}
	b := block.NewNewsfeedBlock(fetcher, &stubRenderer{}, nil, testDefaults)
	b.Init()

	content, err := b.GetContent(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, content)
}

func TestGetContentSoftFailsOnUpstreamError(t *testing.T) {
	fetcher := &stubFetcher{resp: &unitu.FeedResponse{Error: "boom"}}
	renderer := &stubRenderer{body: ""}
	b := block.NewNewsfeedBlock(fetcher, renderer, nil, testDefaults)
	b.Init()

	content, err := b.GetContent(context.Background())
	assert.NoError(t, err)
	if content == nil {
		t.Fatal("an upstream error must still yield an empty block")
	}
	assert.Empty(t, content.Footer)
	assert.Empty(t, renderer.gotPayload.Posts)
}

func TestGetContentMemoizesWithinRenderContext(t *testing.T) {
	fetcher := &stubFetcher{resp: feedWithOnePost()}
	b := block.NewNewsfeedBlock(fetcher, &stubRenderer{body: "x"}, nil, testDefaults)
	b.Init()

	first, err := b.GetContent(context.Background())
	assert.NoError(t, err)
	second, err := b.GetContent(context.Background())
	assert.NoError(t, err)

	if first != second {
		t.Fatal("expected the identical cached content on repeat calls")
	}
	assert.Equal(t, 1, fetcher.calls, "the feed must be fetched once per render context")
}

func TestGetContentMemoizesNothingToShow(t *testing.T) {
	fetcher := &stubFetcher{resp: &unitu.FeedResponse{}}
	b := block.NewNewsfeedBlock(fetcher, &stubRenderer{}, nil, testDefaults)
	b.Init()

	content, err := b.GetContent(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, content)

	content, err = b.GetContent(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, content)
	assert.Equal(t, 1, fetcher.calls)
}

func TestGetContentRendererFailure(t *testing.T) {
	fetcher := &stubFetcher{resp: feedWithOnePost()}
	b := block.NewNewsfeedBlock(fetcher, &stubRenderer{err: errors.New("template broken")}, nil, testDefaults)
	b.Init()

	content, err := b.GetContent(context.Background())
	assert.Error(t, err)
	assert.Nil(t, content)
}

func TestGetContentRendererFailureNotMemoized(t *testing.T) {
	fetcher := &stubFetcher{resp: feedWithOnePost()}
	renderer := &stubRenderer{err: errors.New("template broken")}
	b := block.NewNewsfeedBlock(fetcher, renderer, nil, testDefaults)
	b.Init()

	_, err := b.GetContent(context.Background())
	assert.Error(t, err)

	// The failure must stay visible on repeat calls, never turn into a
	// cached "nothing to show".
	content, err := b.GetContent(context.Background())
	assert.Error(t, err)
	assert.Nil(t, content)

	// Once the renderer recovers, the block renders normally.
	renderer.err = nil
	renderer.body = "<div>ok</div>"
	content, err = b.GetContent(context.Background())
	assert.NoError(t, err)
	if content == nil {
		t.Fatal("expected content after the renderer recovered")
	}
	assert.Equal(t, "<div>ok</div>", content.Body)
}

func TestSpecializationOverridesTitle(t *testing.T) {
	b := block.NewNewsfeedBlock(&stubFetcher{resp: feedWithOnePost()}, &stubRenderer{body: "x"}, nil, testDefaults)
	b.Init()
	b.Specialization(block.InstanceConfig{Title: "Student Voice"})

	content, err := b.GetContent(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Student Voice", content.Title)
}

func TestSpecializationEmptyTitleKeepsDefault(t *testing.T) {
	b := block.NewNewsfeedBlock(&stubFetcher{resp: feedWithOnePost()}, &stubRenderer{body: "x"}, nil, testDefaults)
	b.Init()
	b.Specialization(block.InstanceConfig{})

	content, err := b.GetContent(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Unitu Notifications", content.Title)
}

func TestAnnouncementsAreTruncatedAndPassedToRenderer(t *testing.T) {
	longSummary := ""
	for i := 0; i < 60; i++ {
		if i > 0 {
			longSummary += " "
		}
		longSummary += "w"
	}

	fetchAnnouncements := func(rssURL string, limit int) ([]feeder.AnnouncementItem, error) {
		assert.Equal(t, "https://news.example/rss", rssURL)
		assert.Equal(t, 5, limit)
		return []feeder.AnnouncementItem{{Title: "Open day", Summary: longSummary}}, nil
	}

	renderer := &stubRenderer{body: "x"}
	b := block.NewNewsfeedBlock(&stubFetcher{resp: feedWithOnePost()}, renderer, fetchAnnouncements, testDefaults)
	b.Init()
	b.Specialization(block.InstanceConfig{AnnouncementsRSS: "https://news.example/rss"})

	_, err := b.GetContent(context.Background())
	assert.NoError(t, err)
	assert.Len(t, renderer.announcements, 1)

	truncated, _ := feed.WordTruncate(longSummary, testDefaults.MaxWords)
	assert.Equal(t, truncated, renderer.announcements[0].Summary)
}

func TestAnnouncementsFailureOnlyCostsSection(t *testing.T) {
	fetchAnnouncements := func(rssURL string, limit int) ([]feeder.AnnouncementItem, error) {
		return nil, errors.New("rss unreachable")
	}

	renderer := &stubRenderer{body: "x"}
	b := block.NewNewsfeedBlock(&stubFetcher{resp: feedWithOnePost()}, renderer, fetchAnnouncements, testDefaults)
	b.Init()
	b.Specialization(block.InstanceConfig{AnnouncementsRSS: "https://news.example/rss"})

	content, err := b.GetContent(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, content)
	assert.Empty(t, renderer.announcements)
}

func TestBlockContractFlags(t *testing.T) {
	b := block.NewNewsfeedBlock(&stubFetcher{}, &stubRenderer{}, nil, testDefaults)
	assert.True(t, b.ApplicableFormats()["all"])
	assert.True(t, b.HasConfig())
	assert.False(t, b.InstanceAllowMultiple())
}
