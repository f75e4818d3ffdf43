package report

import (
	"sort"
	"strings"

	"github.com/rustscope/rustscope/internal/model"
	"github.com/rustscope/rustscope/internal/render"
	"github.com/rustscope/rustscope/internal/trace"
)

// callGraphRoot renders the single tree reachable from root. The type
// sections are restricted to types referenced by visited signatures and
// honor the visibility filter; the tree itself shows every visited
// function, since reachability, not visibility, defines the graph.
func callGraphRoot(ix *model.Index, root string, vis model.VisibilityFilter) (string, error) {
	res, err := trace.Trace(root, ix.Functions)
	if err != nil {
		return "", err
	}

	types := groupTypes(ix, vis, res.Types)

	var b strings.Builder
	files := make([]string, 0, len(types))
	for file := range types {
		files = append(files, file)
	}
	sort.Strings(files)
	for _, file := range files {
		fileHeader(&b, file)
		for _, decl := range types[file] {
			b.WriteString(render.Decl(decl))
			b.WriteString("\n")
		}
	}

	fileHeader(&b, res.Root.File)
	render.Tree(&b, res.Root, res.Visited)
	return b.String(), nil
}

// callGraphAll renders every filtered function as an independent tree,
// grouped by file after the type sections. Call sites still resolve
// against the full index, so a private callee appears inside trees even
// when it gets no tree of its own. A file header is printed at most once.
func callGraphAll(ix *model.Index, vis model.VisibilityFilter) (string, error) {
	types := groupTypes(ix, vis, nil)
	funcs, err := groupFunctions(ix.Functions, vis)
	if err != nil {
		return "", err
	}
	files := sortedFiles(types, funcs)

	var b strings.Builder
	printed := make(map[string]bool)
	for _, file := range files {
		if len(types[file]) == 0 {
			continue
		}
		fileHeader(&b, file)
		printed[file] = true
		for _, decl := range types[file] {
			b.WriteString(render.Decl(decl))
			b.WriteString("\n")
		}
	}

	for _, file := range files {
		if len(funcs[file]) == 0 {
			continue
		}
		if !printed[file] {
			fileHeader(&b, file)
			printed[file] = true
		}
		for _, fn := range funcs[file] {
			render.Tree(&b, fn, ix.Functions)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
