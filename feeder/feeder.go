package feeder

import (
	"time"

	"github.com/mmcdole/gofeed"

	"unitu-block/parser"
)

// AnnouncementItem is one university announcement pulled from an RSS
// feed, reduced to plain text for rendering beneath the notifications.
type AnnouncementItem struct {
	Title       string
	Link        string
	PublishedAt time.Time
	Summary     string
}

// FetchAnnouncements fetches the announcements RSS feed.
// If limit is greater than 0, it returns only the first limit items.
func FetchAnnouncements(rssURL string, limit int) ([]AnnouncementItem, error) {
	fp := gofeed.NewParser()

	feed, err := fp.ParseURL(rssURL)
	if err != nil {
		return nil, err
	}

	var items []AnnouncementItem
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		items = append(items, AnnouncementItem{
			Title:       item.Title,
			Link:        item.Link,
			PublishedAt: published,
			Summary:     itemSummary(item),
		})
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return items, nil
}

// itemSummary turns the item markup into plain text. Full content gets
// the readability pass; the short description only needs the tag
// stripper.
func itemSummary(item *gofeed.Item) string {
	if item.Content != "" {
		if text := parser.ExtractTextWithReadability(item.Content); text != "" {
			return text
		}
	}
	return parser.ExtractText(item.Description)
}
