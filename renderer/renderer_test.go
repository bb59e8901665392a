package renderer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"unitu-block/feed"
	"unitu-block/feeder"
	"unitu-block/renderer"
)

func TestRenderBlock(t *testing.T) {
	payload := &feed.RenderPayload{
		Posts: []feed.ViewPost{
			{
				UserImage:    "https://cdn.example/a.png",
				UserName:     "Alex Doe",
				UserRole:     "Student",
				Date:         "2 days ago",
				Title:        "Broken projector",
				Content:      "The projector flickers",
				ReadMoreLink: true,
				Likes:        4,
				URL:          "https://uni.example/posts/1",
				Departments:  "Engineering | Estates",
			},
		},
	}

	out, err := renderer.New().RenderBlock(payload, nil)
	assert.NoError(t, err)
	assert.Contains(t, out, "Alex Doe")
	assert.Contains(t, out, "Broken projector")
	assert.Contains(t, out, "Read more")
	assert.Contains(t, out, "Engineering | Estates")
	assert.NotContains(t, out, "Announcements")
}

func TestRenderBlockEscapesPostContent(t *testing.T) {
	payload := &feed.RenderPayload{
		Posts: []feed.ViewPost{{Title: `<script>alert("x")</script>`}},
	}

	out, err := renderer.New().RenderBlock(payload, nil)
	assert.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestRenderBlockNilPayload(t *testing.T) {
	out, err := renderer.New().RenderBlock(nil, nil)
	assert.NoError(t, err)
	assert.Contains(t, out, "unitu-newsfeed")
	assert.NotContains(t, out, "unitu-post-title")
}

func TestRenderBlockWithAnnouncements(t *testing.T) {
	announcements := []feeder.AnnouncementItem{
		{
			Title:       "Open day",
			Link:        "https://news.example/open-day",
			PublishedAt: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			Summary:     "Campus tours all afternoon",
		},
	}

	out, err := renderer.New().RenderBlock(&feed.RenderPayload{}, announcements)
	assert.NoError(t, err)
	assert.Contains(t, out, "Announcements")
	assert.Contains(t, out, "Open day")
	assert.Contains(t, out, "14 Mar 2026")
}
