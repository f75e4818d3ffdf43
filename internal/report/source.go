package report

import (
	"fmt"
	"strings"

	"github.com/rustscope/rustscope/internal/model"
	"github.com/rustscope/rustscope/internal/render"
	"github.com/rustscope/rustscope/internal/trace"
)

// sourceOf emits one function's reconstructed signature and literal body,
// headed by its originating file.
func sourceOf(ix *model.Index, name string) (string, error) {
	fn, ok := trace.Resolve(name, ix.Functions)
	if !ok {
		return "", fmt.Errorf("function %q: %w", name, model.ErrNotFound)
	}

	var b strings.Builder
	fileHeader(&b, fn.File)
	b.WriteString(render.FunctionSource(fn))
	return b.String(), nil
}
