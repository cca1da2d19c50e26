package domain

import (
	"io"
	"time"
)

// Fixed configuration constants, not runtime-configurable.
const (
	PostTextLimit    = 200 // max characters in a post body
	CommentTextLimit = 400 // max characters in a comment
	PostsPerPage     = 10  // listing page size
	TitleChars       = 30  // detail page title truncation
	ShownChars       = 15  // String() truncation
)

type Post struct {
	Id        int64
	Text      string
	PubDate   time.Time // server-assigned at creation, immutable
	Author    User      // set at creation, never reassigned
	Group     *Group    // optional; cleared if the group is deleted
	ImagePath string    // media-relative path, empty if no image
}

func (p *Post) String() string {
	return truncateRunes(p.Text, ShownChars)
}

// Title returns the truncated text used as the detail page title.
func (p *Post) Title() string {
	return truncateRunes(p.Text, TitleChars)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// to iterate thru layers: handler -> service -> storage
type PostDraft struct {
	Text    string
	GroupId *int64
	Image   *PendingImage
}

// PendingImage is a validated uploaded image waiting to be stored.
type PendingImage struct {
	Data io.Reader
	Ext  string // normalized extension including the dot, e.g. ".jpg"
}
