package feed_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"unitu-block/feed"
	"unitu-block/unitu"
)

func TestWordTruncate(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		maxWords  int
		want      string
		truncated bool
	}{
		{"under limit", "one two three", 5, "one two three", false},
		{"at limit", "one two three", 3, "one two three", false},
		{"over limit", "one two three four", 3, "one two three", true},
		{"empty string is one word", "", 1, "", false},
		{"single word", "word", 1, "word", false},
		{"consecutive spaces count as words", "a  b", 2, "a ", true},
		{"leading space counts", " a b", 2, " a", true},
		{"no trimming", "a b ", 3, "a b ", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, truncated := feed.WordTruncate(tc.text, tc.maxWords)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.truncated, truncated)
		})
	}
}

func TestDepartmentsLine(t *testing.T) {
	assert.Equal(t, "", feed.DepartmentsLine(nil, 80))
	assert.Equal(t, "", feed.DepartmentsLine([]string{}, 80))
	assert.Equal(t, "Maths", feed.DepartmentsLine([]string{"Maths"}, 80))
	assert.Equal(t, "Maths | Physics", feed.DepartmentsLine([]string{"Maths", "Physics"}, 80))
}

func TestDepartmentsLineClipsAtLimit(t *testing.T) {
	long := strings.Repeat("x", 100)
	got := feed.DepartmentsLine([]string{long}, 80)

	// 80 kept runes plus the two-character ellipsis
	assert.Equal(t, 82, len([]rune(got)))
	assert.Equal(t, strings.Repeat("x", 80)+"..", got)

	// exactly at the limit: no ellipsis
	exact := strings.Repeat("y", 80)
	assert.Equal(t, exact, feed.DepartmentsLine([]string{exact}, 80))
}

func TestDepartmentsLineClipsRunesNotBytes(t *testing.T) {
	// multi-byte department names must not be cut mid-rune
	long := strings.Repeat("학", 90)
	got := feed.DepartmentsLine([]string{long}, 80)
	assert.Equal(t, strings.Repeat("학", 80)+"..", got)
}

func TestFormatReshapesPosts(t *testing.T) {
	resp := &unitu.FeedResponse{
		UniversityDomain: "uni.example.ac.uk",
		Posts: []unitu.PostRecord{
			{
				Avatar:          "https://cdn.example/avatar.png",
				FullName:        "Alex Doe",
				UniversityTitle: "Student",
				DateSince:       "2 days ago",
				Title:           "Broken projector in LT1",
				Description:     "The projector flickers during lectures",
				Likes:           4,
				URL:             "https://uni.example.ac.uk/posts/1",
				Departments:     []string{"Engineering", "Estates"},
			},
		},
	}

	payload := feed.NewFormatter(0, 0).Format(resp)
	if payload == nil {
		t.Fatal("expected a payload for a non-empty response")
	}
	assert.Len(t, payload.Posts, 1)

	post := payload.Posts[0]
	assert.Equal(t, "Alex Doe", post.UserName)
	assert.Equal(t, "Student", post.UserRole)
	assert.Equal(t, "2 days ago", post.Date)
	assert.Equal(t, "The projector flickers during lectures", post.Content)
	assert.Equal(t, post.FullContent, post.Content)
	assert.False(t, post.ReadMoreLink)
	assert.Equal(t, 4, post.Likes)
	assert.Equal(t, "Engineering | Estates", post.Departments)

	assert.Contains(t, payload.Footer, "Powered by")
	assert.Contains(t, payload.Footer, `href="https://uni.example.ac.uk"`)
	assert.Contains(t, payload.Footer, "Visit Unitu")
}

func TestFormatTruncatesLongDescriptions(t *testing.T) {
	words := make([]string, 60)
	for i := range words {
		words[i] = "w"
	}
	resp := &unitu.FeedResponse{
		UniversityDomain: "uni.example.ac.uk",
		Posts:            []unitu.PostRecord{{Description: strings.Join(words, " ")}},
	}

	payload := feed.NewFormatter(50, 80).Format(resp)
	if payload == nil {
		t.Fatal("expected a payload")
	}
	post := payload.Posts[0]
	assert.True(t, post.ReadMoreLink)
	assert.Equal(t, 50, len(strings.Split(post.Content, " ")))
	assert.Equal(t, strings.Join(words, " "), post.FullContent)
}

func TestFormatPreservesPostOrder(t *testing.T) {
	resp := &unitu.FeedResponse{
		UniversityDomain: "uni.example.ac.uk",
		Posts: []unitu.PostRecord{
			{Title: "first"},
			{Title: "second"},
			{Title: "third"},
		},
	}

	payload := feed.NewFormatter(0, 0).Format(resp)
	if payload == nil {
		t.Fatal("expected a payload")
	}
	titles := make([]string, 0, len(payload.Posts))
	for _, p := range payload.Posts {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"first", "second", "third"}, titles)
}

func TestFormatNoContentForEmptyResponse(t *testing.T) {
	assert.Nil(t, feed.NewFormatter(0, 0).Format(nil))
	assert.Nil(t, feed.NewFormatter(0, 0).Format(&unitu.FeedResponse{}))
}

func TestFormatDomainWithoutPostsIsStillAPayload(t *testing.T) {
	// A response carrying a university domain is not empty, even with
	// zero posts: the footer still renders.
	payload := feed.NewFormatter(0, 0).Format(&unitu.FeedResponse{
		UniversityDomain: "uni.example.ac.uk",
		Posts:            []unitu.PostRecord{},
	})
	if payload == nil {
		t.Fatal("expected a payload for a domain-bearing response")
	}
	assert.Empty(t, payload.Posts)
	assert.Contains(t, payload.Footer, "uni.example.ac.uk")
}

func TestFormatUpstreamErrorYieldsEmptyPayload(t *testing.T) {
	resp := &unitu.FeedResponse{
		Error: "quota exhausted",
		Posts: []unitu.PostRecord{{Title: "ignored"}},
	}

	payload := feed.NewFormatter(0, 0).Format(resp)
	if payload == nil {
		t.Fatal("an upstream error must yield an empty payload, not nil")
	}
	assert.Empty(t, payload.Posts)
	assert.NotNil(t, payload.Posts)
	assert.Empty(t, payload.Footer)
}

func TestFormatMemoizesResult(t *testing.T) {
	f := feed.NewFormatter(0, 0)
	resp := &unitu.FeedResponse{
		UniversityDomain: "uni.example.ac.uk",
		Posts:            []unitu.PostRecord{{Title: "once"}},
	}

	first := f.Format(resp)
	// a different response must not recompute the cached result
	second := f.Format(&unitu.FeedResponse{Error: "boom"})
	if first != second {
		t.Fatal("expected the identical cached payload on repeat calls")
	}
}

func TestFormatMemoizesNoContent(t *testing.T) {
	f := feed.NewFormatter(0, 0)
	assert.Nil(t, f.Format(&unitu.FeedResponse{}))

	// later calls stay nil even for a response with posts
	assert.Nil(t, f.Format(&unitu.FeedResponse{
		UniversityDomain: "uni.example.ac.uk",
		Posts:            []unitu.PostRecord{{Title: "late"}},
	}))
}
