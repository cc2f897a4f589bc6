package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/log"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clean",
		Short:   "Remove worktrees whose branches match their upstream",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Fetch, then remove every worktree whose branch has neither unpushed nor
unpulled commits relative to its upstream.

The main worktree, detached worktrees and branches without an upstream are
skipped. delete_scripts run for each selected worktree; a failing script
keeps only that worktree. git refuses to remove worktrees with modified or
untracked files and the remaining worktrees are still removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.mgr.Clean(ctx)
			if err != nil {
				return err
			}

			for _, k := range res.Kept {
				l.Debug("kept", "branch", k.Worktree.Branch, "ahead", k.Status.Ahead, "behind", k.Status.Behind)
			}
			if res.NothingToClean() {
				l.Printf("Nothing to clean\n")
				return nil
			}
			l.Printf("Cleaning %d worktree(s)\n", len(res.Safe))
			return emit(ctx, s, res.Payload())
		},
	}
	return cmd
}
