package main

import (
	"encoding/json"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"lepa/internal/api"
	"lepa/internal/archive"
)

// Width caps keep long titles and free-text fields from blowing a listing
// past a terminal line; go-pretty wraps the cell instead.
const (
	titleWidthMax   = 40
	excerptWidthMax = 48
)

// writeJSON encodes v as indented JSON to the command's stdout for the
// --json listing mode.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newArchiveTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

func renderRecordingsTable(recordings []archive.Recording) string {
	tw := newArchiveTable()
	tw.AppendHeader(table.Row{"ID", "Title", "Performer", "Genre", "Duration", "Origin"})
	for _, recording := range recordings {
		tw.AppendRow(table.Row{
			recording.ID,
			recording.Title,
			recording.Performer,
			recording.Genre,
			recording.Duration,
			recording.Origin,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: titleWidthMax},
		{Number: 3, WidthMax: titleWidthMax},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func renderStoriesTable(stories []archive.Story) string {
	tw := newArchiveTable()
	tw.AppendHeader(table.Row{"ID", "Title", "Author", "Date", "Excerpt"})
	for _, story := range stories {
		tw.AppendRow(table.Row{
			story.ID,
			story.Title,
			story.Author,
			story.Date,
			story.Excerpt,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: titleWidthMax},
		{Number: 5, WidthMax: excerptWidthMax},
	})
	return tw.Render()
}

func renderStatusTable(status api.StatusResponse) string {
	tw := newArchiveTable()
	tw.AppendHeader(table.Row{"Field", "Value"})
	tw.AppendRows([]table.Row{
		{"Running", yesNo(status.Running)},
		{"PID", strconv.Itoa(status.PID)},
		{"Role", status.Role},
		{"Recordings", strconv.Itoa(status.Recordings)},
		{"Stories", strconv.Itoa(status.Stories)},
		{"Database", status.DBPath},
		{"Blob root", status.BlobRoot},
	})
	return tw.Render()
}
