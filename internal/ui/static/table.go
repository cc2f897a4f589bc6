// Package static renders non-interactive terminal output such as the
// worktree table of gw list.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/gw/internal/lifecycle"
	"github.com/raphi011/gw/internal/ui/styles"
)

// WorktreeHeaders are the columns of WorktreeRow.
var WorktreeHeaders = []string{"", "BRANCH", "UPSTREAM", "PATH"}

// RenderTable creates a borderless table with aligned columns.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// WorktreeRow formats one worktree for WorktreeHeaders. hyperlinks wraps
// the path in an OSC 8 link.
func WorktreeRow(e lifecycle.Entry, hyperlinks bool) []string {
	marker := ""
	if e.IsCurrent {
		marker = styles.AccentStyle.Render(styles.CurrentMarker)
	}

	branch := e.Branch
	switch {
	case e.Detached():
		branch = styles.MutedStyle.Render("(detached " + shortHash(e.Head) + ")")
	case e.Main:
		branch = styles.Bold.Render(branch)
	}

	upstream := styles.FormatUpstream("", 0, 0)
	if e.Upstream != nil {
		upstream = styles.FormatUpstream(e.Upstream.Upstream, e.Upstream.Ahead, e.Upstream.Behind)
	}

	path := e.Path
	if hyperlinks {
		path = styles.FormatPath(path)
	}
	return []string{marker, branch, upstream, path}
}

// RenderWorktrees renders entries as a table.
func RenderWorktrees(entries []lifecycle.Entry, hyperlinks bool) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = WorktreeRow(e, hyperlinks)
	}
	return RenderTable(WorktreeHeaders, rows)
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
