package report

import (
	"strings"

	"github.com/rustscope/rustscope/internal/model"
	"github.com/rustscope/rustscope/internal/render"
)

// listAll emits every declaration and function signature grouped by file:
// a file header, the file's type declarations, then its function
// signatures sorted by qualified name.
func listAll(ix *model.Index, vis model.VisibilityFilter) (string, error) {
	types := groupTypes(ix, vis, nil)
	funcs, err := groupFunctions(ix.Functions, vis)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, file := range sortedFiles(types, funcs) {
		fileHeader(&b, file)
		for _, decl := range types[file] {
			b.WriteString(render.Decl(decl))
			b.WriteString("\n")
		}
		for _, fn := range funcs[file] {
			b.WriteString(fn.SignatureLine())
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
