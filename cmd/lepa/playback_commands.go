package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lepa/internal/api"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "play <id>",
		Short: "Select a recording for playback",
		Long: "Select a recording for the single playback slot. Playing a second\n" +
			"recording replaces the first; replaying the current one toggles pause.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := ctx.client().Play(args[0])
			if err != nil {
				return err
			}
			printPlayback(cmd.OutOrStdout(), slot)
			return nil
		},
	}
}

func newPauseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause or resume the current recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := ctx.client().TogglePlayback()
			if err != nil {
				return err
			}
			printPlayback(cmd.OutOrStdout(), slot)
			return nil
		},
	}
}

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop playback and clear the slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.client().StopPlayback(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Playback stopped")
			return nil
		},
	}
}

func printPlayback(out io.Writer, slot api.PlaybackResponse) {
	if slot.Current == nil {
		fmt.Fprintln(out, "Nothing selected")
		return
	}
	state := "paused"
	if slot.Playing {
		state = "playing"
	}
	fmt.Fprintf(out, "%s - %s (%s)\n", slot.Current.Title, slot.Current.Performer, state)
}
