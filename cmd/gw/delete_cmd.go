package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/log"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete [branch]",
		Aliases: []string{"rm", "d"},
		Short:   "Delete a worktree",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Delete the worktree of [branch], or the current worktree when omitted.

The branch must match a worktree directory exactly; no substring matching.
The main worktree can never be deleted. delete_scripts from .gwconfig run
first inside the worktree and the first failing script aborts the delete.

git refuses to remove worktrees with modified or untracked files; gw never
forces removal. Deleting the current worktree switches to main first, which
needs the shell wrapper.`,
		Example: `  gw delete feature/login
  gw rm                   # delete the current worktree`,
		ValidArgsFunction: completeWorktrees,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			var branch string
			if len(args) == 1 {
				branch = args[0]
			}

			res, err := s.mgr.Delete(ctx, branch)
			if err != nil {
				return err
			}
			if !res.Deferred {
				log.FromContext(ctx).Printf("Deleted worktree %s\n", res.Path)
			}
			return emit(ctx, s, res.Payload())
		},
	}
	return cmd
}
