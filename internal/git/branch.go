package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/raphi011/gw/internal/errs"
)

// Origin says where a branch was found.
type Origin int

const (
	Local Origin = iota
	Remote
)

func (o Origin) String() string {
	if o == Remote {
		return "remote"
	}
	return "local"
}

// Branch is a branch known to the repository.
type Branch struct {
	Name   string
	Origin Origin
	// Remote is the remote name for Remote branches.
	Remote string
}

// ListBranches returns local branches followed by remote branches that have
// no local counterpart. Remote names are stripped and remote HEAD refs skipped.
func (r *Repo) ListBranches(ctx context.Context) ([]Branch, error) {
	out, err := outputGit(ctx, r.MainPath(), "for-each-ref", "--format=%(refname)", "refs/heads", "refs/remotes")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errs.Wrap(errs.KindNotInRepository, err, "failed to list branches")
	}
	return parseBranchRefs(out), nil
}

func parseBranchRefs(out []byte) []Branch {
	var local, remote []Branch
	seen := make(map[string]bool)

	for _, line := range strings.Split(string(out), "\n") {
		ref := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(ref, "refs/heads/"):
			name := strings.TrimPrefix(ref, "refs/heads/")
			if !seen[name] {
				seen[name] = true
				local = append(local, Branch{Name: name, Origin: Local})
			}
		case strings.HasPrefix(ref, "refs/remotes/"):
			remoteName, name, ok := strings.Cut(strings.TrimPrefix(ref, "refs/remotes/"), "/")
			if !ok || name == "" || name == "HEAD" {
				continue
			}
			remote = append(remote, Branch{Name: name, Origin: Remote, Remote: remoteName})
		}
	}

	for _, b := range remote {
		if seen[b.Name] {
			continue
		}
		seen[b.Name] = true
		local = append(local, b)
	}
	return local
}

// AheadBehind compares a worktree's HEAD with its upstream.
type AheadBehind struct {
	Upstream string `json:"upstream"`
	Ahead    int    `json:"ahead"`
	Behind   int    `json:"behind"`
}

// InSync reports whether neither side has commits the other lacks.
func (a AheadBehind) InSync() bool {
	return a.Ahead == 0 && a.Behind == 0
}

// UpstreamStatus returns ahead/behind counts for the worktree at path, or nil
// when no upstream is configured or the upstream ref no longer exists.
func (r *Repo) UpstreamStatus(ctx context.Context, path string) (*AheadBehind, error) {
	out, err := outputGit(ctx, path, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	upstream := strings.TrimSpace(string(out))

	out, err = outputGit(ctx, path, "rev-list", "--left-right", "--count", "HEAD...@{upstream}")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("compare %s with %s: %w", path, upstream, err)
	}

	ab, err := parseAheadBehind(out)
	if err != nil {
		return nil, err
	}
	ab.Upstream = upstream
	return ab, nil
}

// parseAheadBehind parses "<ahead>\t<behind>" from rev-list --left-right --count.
func parseAheadBehind(out []byte) (*AheadBehind, error) {
	fields := strings.Fields(string(out))
	if len(fields) != 2 {
		return nil, fmt.Errorf("unexpected rev-list output %q", strings.TrimSpace(string(out)))
	}
	ahead, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("parse ahead count: %w", err)
	}
	behind, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("parse behind count: %w", err)
	}
	return &AheadBehind{Ahead: ahead, Behind: behind}, nil
}
