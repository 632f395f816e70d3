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

func newStoriesCommand(ctx *commandContext) *cobra.Command {
	storiesCmd := &cobra.Command{
		Use:   "stories",
		Short: "Browse and manage stories",
	}

	storiesCmd.AddCommand(newStoriesListCommand(ctx))
	storiesCmd.AddCommand(newStoriesAddCommand(ctx))
	storiesCmd.AddCommand(newStoriesRemoveCommand(ctx))

	return storiesCmd
}

func newStoriesListCommand(ctx *commandContext) *cobra.Command {
	var searchFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stories",
		RunE: func(cmd *cobra.Command, args []string) error {
			stories, err := ctx.client().Stories()
			if err != nil {
				return err
			}
			stories = archive.FilterStories(stories, searchFlag)

			if jsonFlag {
				return writeJSON(cmd, stories)
			}

			out := cmd.OutOrStdout()
			if len(stories) == 0 {
				fmt.Fprintln(out, "No stories found")
				return nil
			}

			fmt.Fprintln(out, renderStoriesTable(stories))
			return nil
		},
	}

	cmd.Flags().StringVarP(&searchFlag, "search", "s", "", "Filter by title, author, or excerpt")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newStoriesAddCommand(ctx *commandContext) *cobra.Command {
	var story archive.Story
	var imagePath string
	var contentPath string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish a story, optionally uploading its cover image",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(story.Title) == "" {
				return errors.New("--title is required")
			}
			if path := strings.TrimSpace(contentPath); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read content file: %w", err)
				}
				story.Content = string(data)
			}

			client := ctx.client()
			if path := strings.TrimSpace(imagePath); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read image file: %w", err)
				}
				url, err := client.Upload(blobs.FolderImages, filepath.Base(path), data)
				if err != nil {
					return err
				}
				story.Image = url
			}

			id, err := client.CreateStory(story)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Story published (%s)\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&story.Title, "title", "", "Story title")
	cmd.Flags().StringVar(&story.Author, "author", "", "Author name")
	cmd.Flags().StringVar(&story.Date, "date", "", "Display date, e.g. Apr 25, 2026")
	cmd.Flags().StringVar(&story.Excerpt, "excerpt", "", "Short excerpt shown in listings")
	cmd.Flags().StringVar(&story.Content, "content", "", "Story body text")
	cmd.Flags().StringVar(&contentPath, "content-file", "", "Read the story body from a file")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a cover image to upload")
	return cmd
}

func newStoriesRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a story and its stored cover image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client().DeleteStory(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Story removed")
			return nil
		},
	}
}
