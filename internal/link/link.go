// Package link shares files from the main worktree with new worktrees
// through relative symlinks.
package link

import (
	"fmt"
	"os"
	"path/filepath"
)

// Status is the outcome for one configured path.
type Status int

const (
	Linked Status = iota
	AlreadyLinked
	MissingSource
	DestinationExists
	Failed
)

func (s Status) String() string {
	switch s {
	case Linked:
		return "linked"
	case AlreadyLinked:
		return "already linked"
	case MissingSource:
		return "missing in main worktree"
	case DestinationExists:
		return "destination exists"
	default:
		return "failed"
	}
}

// Result reports what happened to one path.
type Result struct {
	Path   string
	Target string // symlink target, relative to the link's directory
	Status Status
	Err    error
}

// OK reports whether the path ends up linked.
func (r Result) OK() bool {
	return r.Status == Linked || r.Status == AlreadyLinked
}

// Apply links each relative path from mainDir into newDir. For a top-level
// entry in sibling worktrees the link target is "../main/<path>". Problems
// are reported per path and never stop the remaining paths.
func Apply(mainDir, newDir string, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		results = append(results, applyOne(mainDir, newDir, p))
	}
	return results
}

func applyOne(mainDir, newDir, rel string) Result {
	res := Result{Path: rel}
	src := filepath.Join(mainDir, rel)
	dst := filepath.Join(newDir, rel)

	if _, err := os.Lstat(src); err != nil {
		res.Status = MissingSource
		if !os.IsNotExist(err) {
			res.Status, res.Err = Failed, err
		}
		return res
	}

	target, err := filepath.Rel(filepath.Dir(dst), src)
	if err != nil {
		res.Status, res.Err = Failed, fmt.Errorf("compute relative target: %w", err)
		return res
	}
	res.Target = target

	if info, err := os.Lstat(dst); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			if existing, readErr := os.Readlink(dst); readErr == nil && existing == target {
				res.Status = AlreadyLinked
				return res
			}
		}
		// Checked-in files and foreign links are left untouched.
		res.Status = DestinationExists
		return res
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		res.Status, res.Err = Failed, fmt.Errorf("create parent directory: %w", err)
		return res
	}
	if err := os.Symlink(target, dst); err != nil {
		res.Status, res.Err = Failed, err
		return res
	}
	res.Status = Linked
	return res
}
