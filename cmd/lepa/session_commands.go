package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var keyFlag string

	cmd := &cobra.Command{
		Use:   "login [key]",
		Short: "Unlock the archive with an access key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(keyFlag)
			if len(args) == 1 {
				key = strings.TrimSpace(args[0])
			}
			if key == "" {
				return errors.New("an access key is required")
			}

			session, err := ctx.client().Authorize(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Access granted (%s)\n", session.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&keyFlag, "key", "k", "", "Access key")
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client().Deauthorize(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session cleared")
			return nil
		},
	}
}

func newSessionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the current session role",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.client().Session()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Role: %s\n", session.Role)
			return nil
		},
	}
}
