package styles

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Symbols used in worktree listings.
const (
	CurrentMarker = "*"
	AheadSymbol   = "↑"
	BehindSymbol  = "↓"
	SyncedSymbol  = "✓"
)

// FormatUpstream renders ahead/behind counts, e.g. "↑2 ↓1" or "✓" when in
// sync. An empty upstream renders as "-".
func FormatUpstream(upstream string, ahead, behind int) string {
	if upstream == "" {
		return MutedStyle.Render("-")
	}
	if ahead == 0 && behind == 0 {
		return SuccessStyle.Render(SyncedSymbol)
	}
	var parts []string
	if ahead > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%s%d", AheadSymbol, ahead)))
	}
	if behind > 0 {
		parts = append(parts, PrimaryStyle.Render(fmt.Sprintf("%s%d", BehindSymbol, behind)))
	}
	return strings.Join(parts, " ")
}

// FormatPath renders path with an OSC 8 file:// hyperlink.
func FormatPath(path string) string {
	u := url.URL{Scheme: "file", Path: path}
	return ansi.SetHyperlink(u.String()) + path + ansi.ResetHyperlink()
}
