package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/output"
	"github.com/raphi011/gw/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List worktrees",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List worktrees in the order git reports them, with the current worktree
marked and ahead/behind counts against each branch's upstream.`,
		Example: `  gw list
  gw list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := s.mgr.List(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				out.Println(string(data))
				return nil
			}

			// Downsamples or strips colors to what the destination supports.
			w := colorprofile.NewWriter(out.Writer(), os.Environ())
			_, err = fmt.Fprint(w, static.RenderWorktrees(entries, stdoutIsTerminal()))
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
