package archive

import "time"

// Recording is an audio entry in the cultural repository. The identifier is
// assigned by the document store; a value set before creation is discarded on
// write and replaced by the store's own.
type Recording struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	Performer   string `json:"performer"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Origin      string `json:"origin"`
	AudioURL    string `json:"audioUrl,omitempty"`
	CreatedAt   int64  `json:"createdAt,omitempty"`
}

// Story is a narrative article in the community collection. Identity follows
// the same store-assigned rule as Recording.
type Story struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Date      string `json:"date"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Image     string `json:"image"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// storyDateFormat renders dates the way the archive displays them, e.g. "Mar 07, 2026".
const storyDateFormat = "Jan 02, 2006"

// StoryDate formats a creation time for display on a story.
func StoryDate(t time.Time) string {
	return t.Format(storyDateFormat)
}
