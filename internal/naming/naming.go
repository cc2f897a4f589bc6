// Package naming maps branch names to worktree directory names and back.
//
// A branch such as "feature/login" lives in the sibling directory
// "feature__login". Decoding is only the inverse of encoding for branch
// names that do not already contain the marker.
package naming

import (
	"strings"

	"github.com/raphi011/gw/internal/errs"
)

// Marker replaces every "/" in a branch name.
const Marker = "__"

// Encode returns the directory name for branch.
func Encode(branch string) string {
	return strings.ReplaceAll(branch, "/", Marker)
}

// Decode returns the branch name for a directory name.
func Decode(dir string) string {
	return strings.ReplaceAll(dir, Marker, "/")
}

// IsAmbiguous reports whether branch would not survive an encode/decode
// round trip.
func IsAmbiguous(branch string) bool {
	return strings.Contains(branch, Marker)
}

// ValidateBranch rejects names that cannot be stored as a single,
// unambiguous directory.
func ValidateBranch(branch string) error {
	switch {
	case strings.TrimSpace(branch) == "":
		return errs.New(errs.KindBranchNotFound, "branch name must not be empty")
	case IsAmbiguous(branch):
		return errs.New(errs.KindAmbiguousBranchName,
			"branch name %q contains %q, which gw uses in place of '/' in directory names", branch, Marker)
	case strings.HasPrefix(branch, "/") || strings.HasSuffix(branch, "/"):
		return errs.New(errs.KindAmbiguousBranchName, "branch name %q must not start or end with '/'", branch)
	case branch == "." || branch == "..":
		return errs.New(errs.KindAmbiguousBranchName, "branch name %q is not a valid directory name", branch)
	}
	return nil
}
