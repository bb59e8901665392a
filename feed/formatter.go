package feed

import (
	"fmt"
	"strings"

	"unitu-block/unitu"
)

const (
	// DefaultMaxWords is the word budget for a post body before the
	// "read more" link takes over.
	DefaultMaxWords = 50

	// DefaultDepartmentsLimit caps the joined departments line.
	DefaultDepartmentsLimit = 80

	departmentsSeparator = " | "
	departmentsEllipsis  = ".."

	logoURL         = "https://unitu.co.uk/img/unitu-logo-small.png"
	footerLinkLabel = "Visit Unitu"
)

// ViewPost is the render-ready version of one notification.
type ViewPost struct {
	UserImage    string `json:"user_image"`
	UserName     string `json:"user_name"`
	UserRole     string `json:"user_role"`
	Date         string `json:"date"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	FullContent  string `json:"full_content"`
	ReadMoreLink bool   `json:"read_more_link"`
	Likes        int    `json:"likes"`
	URL          string `json:"url"`
	Departments  string `json:"departments"`
}

// RenderPayload is what the template layer consumes: the posts in
// upstream order plus the powered-by footer markup.
type RenderPayload struct {
	Posts  []ViewPost `json:"posts"`
	Footer string     `json:"footer"`
}

type renderState int

const (
	stateNotComputed renderState = iota
	stateNoContent
	stateReady
)

// Formatter converts one Unitu feed response into a render payload.
//
// A Formatter belongs to a single render context. The first Format
// call computes the result; later calls return the same value without
// touching the response again. The cache slot is tri-state
// (not computed / no content / ready) rather than a nullable field, so
// a memoized "nothing to show" is distinguishable from "not yet
// computed".
type Formatter struct {
	maxWords         int
	departmentsLimit int

	state  renderState
	cached *RenderPayload
}

// NewFormatter builds a formatter for one render context. Zero or
// negative limits select the defaults.
func NewFormatter(maxWords, departmentsLimit int) *Formatter {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	if departmentsLimit <= 0 {
		departmentsLimit = DefaultDepartmentsLimit
	}
	return &Formatter{maxWords: maxWords, departmentsLimit: departmentsLimit}
}

// Format reshapes the feed response.
//
// Return values:
//   - nil: nothing to render (absent or empty upstream response);
//   - non-nil with zero posts and empty footer: the upstream reported
//     an error, render an empty but valid block;
//   - non-nil otherwise: posts in upstream order plus the footer.
//
// The second and later calls on the same Formatter return the cached
// result unchanged, including the nil case.
func (f *Formatter) Format(resp *unitu.FeedResponse) *RenderPayload {
	switch f.state {
	case stateNoContent:
		return nil
	case stateReady:
		return f.cached
	}

	if resp.IsEmpty() {
		f.state = stateNoContent
		return nil
	}

	if resp.Error != "" {
		// Soft failure: an empty payload, never an error to the host.
		f.cached = &RenderPayload{Posts: []ViewPost{}}
		f.state = stateReady
		return f.cached
	}

	posts := make([]ViewPost, 0, len(resp.Posts))
	for _, p := range resp.Posts {
		content, truncated := WordTruncate(p.Description, f.maxWords)
		posts = append(posts, ViewPost{
			UserImage:    p.Avatar,
			UserName:     p.FullName,
			UserRole:     p.UniversityTitle,
			Date:         p.DateSince,
			Title:        p.Title,
			Content:      content,
			FullContent:  p.Description,
			ReadMoreLink: truncated,
			Likes:        p.Likes,
			URL:          p.URL,
			Departments:  DepartmentsLine(p.Departments, f.departmentsLimit),
		})
	}

	f.cached = &RenderPayload{
		Posts:  posts,
		Footer: poweredBy(resp.UniversityDomain),
	}
	f.state = stateReady
	return f.cached
}

// WordTruncate splits text on single space characters and keeps at
// most maxWords of them. The split is literal: consecutive spaces
// produce empty tokens and count as words, and no trimming happens.
// The empty string is a single empty word and comes back unchanged.
// The second return value reports whether anything was cut.
func WordTruncate(text string, maxWords int) (string, bool) {
	words := strings.Split(text, " ")
	if len(words) <= maxWords {
		return text, false
	}
	return strings.Join(words[:maxWords], " "), true
}

// DepartmentsLine joins the department names with " | " and clips the
// result to limit runes plus a two-character ellipsis when it is
// longer. A nil or empty list yields the empty string.
func DepartmentsLine(departments []string, limit int) string {
	joined := strings.Join(departments, departmentsSeparator)
	rs := []rune(joined)
	if len(rs) <= limit {
		return joined
	}
	return string(rs[:limit]) + departmentsEllipsis
}

func poweredBy(domain string) string {
	return fmt.Sprintf(
		`<div class="unitu-powered-by">Powered by <img src=%q alt="Unitu" /> <a href="https://%s" target="_blank">%s</a></div>`,
		logoURL, domain, footerLinkLabel,
	)
}
