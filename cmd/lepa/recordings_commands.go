package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lepa/internal/archive"
	"lepa/internal/blobs"
)

func newRecordingsCommand(ctx *commandContext) *cobra.Command {
	recordingsCmd := &cobra.Command{
		Use:     "recordings",
		Aliases: []string{"rec"},
		Short:   "Browse and manage recordings",
	}

	recordingsCmd.AddCommand(newRecordingsListCommand(ctx))
	recordingsCmd.AddCommand(newRecordingsAddCommand(ctx))
	recordingsCmd.AddCommand(newRecordingsRemoveCommand(ctx))

	return recordingsCmd
}

func newRecordingsListCommand(ctx *commandContext) *cobra.Command {
	var searchFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings",
		RunE: func(cmd *cobra.Command, args []string) error {
			recordings, err := ctx.client().Recordings()
			if err != nil {
				return err
			}
			recordings = archive.FilterRecordings(recordings, searchFlag)

			if jsonFlag {
				return writeJSON(cmd, recordings)
			}

			out := cmd.OutOrStdout()
			if len(recordings) == 0 {
				fmt.Fprintln(out, "No recordings found")
				return nil
			}

			fmt.Fprintln(out, renderRecordingsTable(recordings))
			return nil
		},
	}

	cmd.Flags().StringVarP(&searchFlag, "search", "s", "", "Filter by title, performer, or genre")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newRecordingsAddCommand(ctx *commandContext) *cobra.Command {
	var recording archive.Recording
	var audioPath string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recording, optionally uploading its audio file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(recording.Title) == "" {
				return errors.New("--title is required")
			}

			client := ctx.client()
			if path := strings.TrimSpace(audioPath); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read audio file: %w", err)
				}
				url, err := client.Upload(blobs.FolderMusic, filepath.Base(path), data)
				if err != nil {
					return err
				}
				recording.AudioURL = url
			}

			id, err := client.CreateRecording(recording)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recording added (%s)\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&recording.Title, "title", "", "Recording title")
	cmd.Flags().StringVar(&recording.Genre, "genre", "", "Genre")
	cmd.Flags().StringVar(&recording.Performer, "performer", "", "Performer")
	cmd.Flags().StringVar(&recording.Description, "description", "", "Description")
	cmd.Flags().StringVar(&recording.Duration, "duration", "", "Duration, e.g. 4:12")
	cmd.Flags().StringVar(&recording.Origin, "origin", "", "Place of origin")
	cmd.Flags().StringVar(&audioPath, "audio", "", "Path to an audio file to upload")
	return cmd
}

func newRecordingsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a recording and its stored audio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client().DeleteRecording(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Recording removed")
			return nil
		},
	}
}
