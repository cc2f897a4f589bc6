// Package protocol encodes the instructions gw leaves for its shell wrapper.
//
// gw runs as a child process and cannot change the caller's directory. It
// prints its intent on stdout instead, one instruction per line:
//
//	/src/project/main                      switch to this directory
//	DELETE_AFTER_CD:/src/project/feat      then remove this worktree
//	CLEAN_WORKTREES:/src/project/a|/src/project/b
//	                                       then remove each, tolerating failures
//
// Within CLEAN_WORKTREES a literal '|' or '\' in a path is escaped with '\'.
package protocol

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DeleteAfterCDPrefix  = "DELETE_AFTER_CD:"
	CleanWorktreesPrefix = "CLEAN_WORKTREES:"
	// Separator joins paths in a CLEAN_WORKTREES line.
	Separator = "|"
)

// Payload is everything the wrapper has to act on.
type Payload struct {
	// SwitchTo is the directory to change into first; empty for none.
	SwitchTo string
	// DeleteAfterCD is a worktree to remove after switching.
	DeleteAfterCD string
	// Clean lists worktrees to remove independently after switching.
	Clean []string
}

// IsEmpty reports whether the wrapper has nothing to do.
func (p Payload) IsEmpty() bool {
	return p.SwitchTo == "" && p.DeleteAfterCD == "" && len(p.Clean) == 0
}

// Removals returns every path queued for removal.
func (p Payload) Removals() []string {
	var out []string
	if p.DeleteAfterCD != "" {
		out = append(out, p.DeleteAfterCD)
	}
	return append(out, p.Clean...)
}

// Lines renders the payload. Paths must be absolute and single-line.
func (p Payload) Lines() ([]string, error) {
	if p.DeleteAfterCD != "" && len(p.Clean) > 0 {
		return nil, errors.New("payload cannot both delete and clean")
	}
	for _, path := range append([]string{p.SwitchTo, p.DeleteAfterCD}, p.Clean...) {
		if path == "" {
			continue
		}
		if err := checkPath(path); err != nil {
			return nil, err
		}
	}

	var lines []string
	if p.SwitchTo != "" {
		lines = append(lines, p.SwitchTo)
	}
	if p.DeleteAfterCD != "" {
		lines = append(lines, DeleteAfterCDPrefix+p.DeleteAfterCD)
	}
	if len(p.Clean) > 0 {
		escaped := make([]string, len(p.Clean))
		for i, path := range p.Clean {
			escaped[i] = escape(path)
		}
		lines = append(lines, CleanWorktreesPrefix+strings.Join(escaped, Separator))
	}
	return lines, nil
}

// Parse reads payload lines as printed by Lines. Blank lines are ignored.
func Parse(lines []string) (Payload, error) {
	var p Payload
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		switch {
		case line == "":
		case strings.HasPrefix(line, DeleteAfterCDPrefix):
			p.DeleteAfterCD = strings.TrimPrefix(line, DeleteAfterCDPrefix)
		case strings.HasPrefix(line, CleanWorktreesPrefix):
			paths, err := splitEscaped(strings.TrimPrefix(line, CleanWorktreesPrefix))
			if err != nil {
				return Payload{}, err
			}
			p.Clean = append(p.Clean, paths...)
		case filepath.IsAbs(line):
			p.SwitchTo = line
		default:
			return Payload{}, fmt.Errorf("unexpected payload line %q", line)
		}
	}
	return p, nil
}

func checkPath(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("payload path %q is not absolute", path)
	}
	if strings.ContainsAny(path, "\r\n") {
		return fmt.Errorf("payload path %q contains a line break", path)
	}
	return nil
}

func escape(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	return strings.ReplaceAll(path, Separator, `\`+Separator)
}

func splitEscaped(s string) ([]string, error) {
	var (
		out []string
		cur strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 >= len(s) {
				return nil, errors.New("dangling escape in CLEAN_WORKTREES line")
			}
			i++
			cur.WriteByte(s[i])
		case Separator[0]:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if s != "" {
		out = append(out, cur.String())
	}
	filtered := out[:0]
	for _, p := range out {
		if p != "" {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}
