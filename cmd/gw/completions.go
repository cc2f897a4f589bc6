package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/git"
)

// openForCompletion opens the repository of the working directory, or nil.
func openForCompletion(cmd *cobra.Command) (context.Context, *git.Repo) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	repo, err := git.Open(ctx, config.WorkDirFromContext(ctx), settingsFrom(ctx).MainWorktree)
	if err != nil {
		return ctx, nil
	}
	return ctx, repo
}

// completeTargets completes worktree and branch names for switch.
func completeTargets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx, repo := openForCompletion(cmd)
	if repo == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	if worktrees, err := repo.ListWorktrees(ctx); err == nil {
		for _, wt := range worktrees {
			names = append(names, wt.Branch)
		}
	}
	if branches, err := repo.ListBranches(ctx); err == nil {
		for _, b := range branches {
			names = append(names, b.Name)
		}
	}
	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeWorktrees completes branches that have a deletable worktree.
func completeWorktrees(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx, repo := openForCompletion(cmd)
	if repo == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	worktrees, err := repo.ListWorktrees(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, wt := range worktrees {
		if wt.Dir != repo.MainName {
			names = append(names, wt.Branch)
		}
	}
	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// filterPrefix returns the unique non-empty names starting with prefix.
func filterPrefix(names []string, prefix string) []string {
	seen := make(map[string]bool)
	var matches []string
	for _, n := range names {
		if n == "" || seen[n] || !strings.HasPrefix(n, prefix) {
			continue
		}
		seen[n] = true
		matches = append(matches, n)
	}
	return matches
}
