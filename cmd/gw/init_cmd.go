package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/output"
	"github.com/raphi011/gw/internal/protocol"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "init <shell>",
		Short:     "Output shell wrapper function",
		GroupID:   GroupConfig,
		ValidArgs: protocol.Shells,
		Args:      cobra.ExactArgs(1),
		Long: `Output the shell wrapper function that lets gw change directories.

gw runs as a child process and cannot change your shell's directory. It
prints the target path instead, plus DELETE_AFTER_CD or CLEAN_WORKTREES lines
for worktrees to remove once you have left them. The wrapper changes
directory and then calls 'gw remove-worktrees' for those.`,
		Example: `  eval "$(gw init bash)"           # add to ~/.bashrc
  eval "$(gw init zsh)"            # add to ~/.zshrc
  gw init fish | source            # add to ~/.config/fish/config.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := protocol.ShellInit(args[0])
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Print(script)
			return nil
		},
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.FromContext(cmd.Context()).Println(versionString())
			return nil
		},
	}
}
