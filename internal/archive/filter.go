package archive

import (
	"strings"

	"golang.org/x/text/cases"
)

var fold = cases.Fold()

// matches reports whether any field contains the folded query as a substring.
func matches(query string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(fold.String(field), query) {
			return true
		}
	}
	return false
}

// FilterRecordings narrows a fetched recording list by a case-insensitive
// substring query over title, performer, and genre. An empty query returns
// the input unchanged. Filtering always happens client-side over the full
// fetched set; the store offers no query capability.
func FilterRecordings(recordings []Recording, query string) []Recording {
	query = fold.String(strings.TrimSpace(query))
	if query == "" {
		return recordings
	}
	filtered := make([]Recording, 0, len(recordings))
	for _, recording := range recordings {
		if matches(query, recording.Title, recording.Performer, recording.Genre) {
			filtered = append(filtered, recording)
		}
	}
	return filtered
}

// FilterStories narrows a fetched story list by a case-insensitive substring
// query over title, author, and excerpt.
func FilterStories(stories []Story, query string) []Story {
	query = fold.String(strings.TrimSpace(query))
	if query == "" {
		return stories
	}
	filtered := make([]Story, 0, len(stories))
	for _, story := range stories {
		if matches(query, story.Title, story.Author, story.Excerpt) {
			filtered = append(filtered, story)
		}
	}
	return filtered
}
