package render

import (
	"fmt"
	"strings"

	"github.com/rustscope/rustscope/internal/model"
)

// FunctionSource renders a function with its body as literal source text.
// The name is shown without its file prefix, and a unit return type is
// omitted rather than spelled out.
func FunctionSource(fn *model.Function) string {
	ret := ""
	if fn.Sig.Return != "" {
		ret = " -> " + fn.Sig.Return
	}
	head := fmt.Sprintf("%s%sfn %s(%s)%s",
		visPrefix(fn.Public),
		sigQualifiers(fn.Sig.Async, fn.Sig.Const, fn.Sig.Unsafe),
		fn.DisplayName(),
		strings.Join(fn.Sig.Params, ", "),
		ret)

	if fn.Body == nil {
		return head + " { ... }\n"
	}
	return head + " " + fn.BodyText() + "\n"
}
