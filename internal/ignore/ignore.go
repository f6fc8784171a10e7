// Package ignore implements the shouldIgnore(relpath) -> bool predicate
// that spec §1 treats as an external collaborator to the core (only its
// interface matters to the workflow and status components). This is a
// concrete implementation so the module runs standalone: a gitignore-style
// pattern file, `.artignore`, at the repository root.
//
// Checker keeps no global, process-wide state. Repo.IgnoreChecker builds a
// new Checker, rereading `.artignore`, each time it is called; a Checker is
// not cached on the Repo handle.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Checker decides whether a working-tree-relative path should be ignored.
type Checker struct {
	patterns []pattern
}

type pattern struct {
	raw      string
	negated  bool
	dirOnly  bool
	hasSlash bool
}

// New builds a Checker for the repository rooted at root. It always
// ignores the metadata directory (metaDirName) and reads `.artignore` at
// the repository root if present. A missing ignore file is not an error.
func New(root, metaDirName string) *Checker {
	c := &Checker{}
	c.patterns = append(c.patterns, pattern{raw: metaDirName, dirOnly: true})

	f, err := os.Open(filepath.Join(root, ".artignore"))
	if err == nil {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if p, ok := parseLine(scanner.Text()); ok {
				c.patterns = append(c.patterns, p)
			}
		}
	}
	return c
}

func parseLine(line string) (pattern, bool) {
	line = strings.TrimRight(line, " \t")
	if line == "" || strings.HasPrefix(line, "#") {
		return pattern{}, false
	}

	p := pattern{}
	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	p.hasSlash = strings.Contains(line, "/")
	p.raw = line
	return p, true
}

// IsIgnored reports whether relPath (slash-separated, relative to the
// repository root) matches the ignore rules. Last matching pattern wins,
// so a later `!pattern` can un-ignore an earlier match.
func (c *Checker) IsIgnored(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	base := filepath.Base(relPath)

	ignored := false
	for _, p := range c.patterns {
		target := base
		if p.hasSlash {
			target = relPath
		}

		matched := false
		if p.dirOnly {
			matched = relPath == p.raw || strings.HasPrefix(relPath, p.raw+"/")
		} else if ok, _ := filepath.Match(p.raw, target); ok {
			matched = true
		}

		if matched {
			ignored = !p.negated
		}
	}
	return ignored
}
