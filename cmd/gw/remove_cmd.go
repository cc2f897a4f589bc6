package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/protocol"
)

// newRemoveWorktreesCmd is the helper the shell wrapper calls for deferred
// removals after it has changed directory.
func newRemoveWorktreesCmd() *cobra.Command {
	var payload string

	cmd := &cobra.Command{
		Use:    "remove-worktrees [path...]",
		Short:  "Remove worktrees by path (used by the shell wrapper)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paths := args
			if payload != "" {
				p, err := protocol.Parse([]string{payload})
				if err != nil {
					return fmt.Errorf("invalid payload: %w", err)
				}
				paths = append(paths, p.Removals()...)
			}
			if len(paths) == 0 {
				return nil
			}

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			return removeAll(ctx, s, paths)
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "", "A DELETE_AFTER_CD or CLEAN_WORKTREES line")
	return cmd
}
