package renderer

import (
	"bytes"
	"embed"
	"html/template"

	"unitu-block/feed"
	"unitu-block/feeder"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var blockTmpl = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Renderer produces block body markup from a render payload.
// Post content is plain text and goes through the template engine's
// escaping; the footer is the only trusted raw markup and is handled
// by the caller, not here.
type Renderer struct{}

func New() *Renderer { return &Renderer{} }

type blockData struct {
	Posts         []feed.ViewPost
	Announcements []feeder.AnnouncementItem
}

// RenderBlock renders the posts and optional announcements into the
// block body. A nil payload renders an empty post list.
func (r *Renderer) RenderBlock(payload *feed.RenderPayload, announcements []feeder.AnnouncementItem) (string, error) {
	data := blockData{Announcements: announcements}
	if payload != nil {
		data.Posts = payload.Posts
	}

	var buf bytes.Buffer
	if err := blockTmpl.ExecuteTemplate(&buf, "block.tmpl", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
