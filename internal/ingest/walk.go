// Package ingest builds the Project Index from Rust source roots.
//
// Ingestion walks each root depth-first with lexicographically sorted
// directory entries and follows symlinks, so the last-write-wins outcome of
// declaration name collisions is deterministic rather than
// filesystem-dependent. Files that cannot be read are skipped silently; a
// root with zero parseable files yields an empty index, not an error.
package ingest

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sirupsen/logrus"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/rustscope/rustscope/internal/model"
)

const sourceExt = ".rs"

// Options control a single ingestion run.
type Options struct {
	// Blacklist excludes any walked path containing one of these substrings.
	Blacklist []string

	// UseGitignore additionally honors each root's .gitignore file.
	UseGitignore bool

	// Log receives debug output for skipped paths. Nil disables logging.
	Log *logrus.Logger
}

// Load walks the given roots, parses every Rust source file, and returns
// the populated index.
func Load(roots []string, opts Options) (*model.Index, error) {
	l := &loader{
		index:       model.NewIndex(),
		parser:      newParser(),
		opts:        opts,
		visitedDirs: make(map[string]struct{}),
	}

	for _, root := range roots {
		var gi *ignore.GitIgnore
		if opts.UseGitignore {
			gi = loadGitignore(root)
		}

		info, err := os.Stat(root)
		if err != nil {
			l.debug("skipping unreadable root", logrus.Fields{"root": root, "error": err})
			continue
		}
		if !info.IsDir() {
			if filepath.Ext(root) == sourceExt && !l.blacklisted(root) {
				l.parseFile(root)
			}
			continue
		}
		l.walkDir(root, root, gi)
	}

	return l.index, nil
}

type loader struct {
	index       *model.Index
	parser      *sitter.Parser
	opts        Options
	visitedDirs map[string]struct{} // canonical paths, guards symlink cycles
}

func newParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	return p
}

func (l *loader) walkDir(dir, root string, gi *ignore.GitIgnore) {
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		if _, seen := l.visitedDirs[real]; seen {
			return
		}
		l.visitedDirs[real] = struct{}{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		l.debug("skipping unreadable directory", logrus.Fields{"dir": dir, "error": err})
		return
	}

	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if l.blacklisted(path) {
			continue
		}
		if gi != nil {
			if rel, err := filepath.Rel(root, path); err == nil && gi.MatchesPath(rel) {
				continue
			}
		}

		if e.Type()&os.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				continue
			}
			if target.IsDir() {
				l.walkDir(path, root, gi)
			} else if filepath.Ext(path) == sourceExt {
				l.parseFile(path)
			}
			continue
		}

		if e.IsDir() {
			l.walkDir(path, root, gi)
			continue
		}
		if filepath.Ext(path) == sourceExt {
			l.parseFile(path)
		}
	}
}

func (l *loader) blacklisted(path string) bool {
	for _, sub := range l.opts.Blacklist {
		if sub != "" && strings.Contains(path, sub) {
			return true
		}
	}
	return false
}

func (l *loader) debug(msg string, fields logrus.Fields) {
	if l.opts.Log != nil {
		l.opts.Log.WithFields(fields).Debug(msg)
	}
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
