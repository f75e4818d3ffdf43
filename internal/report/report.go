// Package report builds the text reports served by the CLI and the agent.
//
// Every call to Generate performs a complete, independent ingestion of the
// requested roots. Nothing is cached between calls, so concurrent callers
// never share mutable state.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rustscope/rustscope/internal/ingest"
	"github.com/rustscope/rustscope/internal/model"
)

// Generator produces reports over freshly ingested source roots.
type Generator struct {
	// Log receives progress and skip diagnostics. Nil disables logging.
	Log *logrus.Logger

	// UseGitignore makes ingestion honor each root's .gitignore.
	UseGitignore bool
}

// New returns a Generator logging to log.
func New(log *logrus.Logger) *Generator {
	return &Generator{Log: log}
}

// Generate ingests roots and renders the report selected by mode. Paths
// containing any blacklist substring are excluded from the walk.
func (g *Generator) Generate(roots []string, mode model.Mode, blacklist []string) (string, error) {
	ix, err := ingest.Load(roots, ingest.Options{
		Blacklist:    blacklist,
		UseGitignore: g.UseGitignore,
		Log:          g.Log,
	})
	if err != nil {
		return "", fmt.Errorf("ingesting %v: %w", roots, err)
	}

	if g.Log != nil {
		g.Log.WithFields(logrus.Fields{
			"roots":     roots,
			"functions": len(ix.Functions),
			"types":     len(ix.Types),
		}).Debug("index built")
	}

	switch m := mode.(type) {
	case model.ListAll:
		return listAll(ix, m.Visibility)
	case model.CallGraph:
		if m.Root == "" {
			return callGraphAll(ix, m.Visibility)
		}
		return callGraphRoot(ix, m.Root, m.Visibility)
	case model.SourceOf:
		return sourceOf(ix, m.Function)
	default:
		return "", fmt.Errorf("unsupported mode %T", mode)
	}
}

func fileHeader(b *strings.Builder, file string) {
	fmt.Fprintf(b, "=== %s ===\n", file)
}

// groupTypes buckets the indexed declarations by file, filtered by
// visibility and optionally restricted to a reachable-name set. Buckets are
// sorted by declaration name.
func groupTypes(ix *model.Index, vis model.VisibilityFilter, reachable map[string]struct{}) map[string][]model.TypeDecl {
	out := make(map[string][]model.TypeDecl)
	for name, entry := range ix.Types {
		if reachable != nil {
			if _, ok := reachable[name]; !ok {
				continue
			}
		}
		if !vis.Includes(entry.Decl.IsPublic()) {
			continue
		}
		out[entry.File] = append(out[entry.File], entry.Decl)
	}
	for _, decls := range out {
		sort.Slice(decls, func(i, j int) bool { return decls[i].DeclName() < decls[j].DeclName() })
	}
	return out
}

// groupFunctions buckets functions by originating file, filtered by
// visibility, each bucket sorted by qualified name.
func groupFunctions(funcs map[string]*model.Function, vis model.VisibilityFilter) (map[string][]*model.Function, error) {
	out := make(map[string][]*model.Function)
	for qn, f := range funcs {
		if !vis.Includes(f.Public) {
			continue
		}
		file, err := model.FileForQualified(qn)
		if err != nil {
			return nil, err
		}
		out[file] = append(out[file], f)
	}
	for _, fns := range out {
		sort.Slice(fns, func(i, j int) bool { return fns[i].QualifiedName < fns[j].QualifiedName })
	}
	return out, nil
}

// sortedFiles returns the union of the maps' keys in lexicographic order.
func sortedFiles[T any, U any](a map[string]T, b map[string]U) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	files := make([]string, 0, len(seen))
	for k := range seen {
		files = append(files, k)
	}
	sort.Strings(files)
	return files
}
