package render

import (
	"fmt"
	"strings"

	"github.com/rustscope/rustscope/internal/model"
)

// Decl pretty-prints one type declaration. Unit variants and interface
// methods inherit the visibility prefix of their enclosing declaration;
// tuple fields render as a type-to-type pair.
func Decl(d model.TypeDecl) string {
	switch decl := d.(type) {
	case *model.RecordDecl:
		return recordDecl(decl)
	case *model.SumDecl:
		return sumDecl(decl)
	case *model.InterfaceDecl:
		return interfaceDecl(decl)
	case *model.AliasDecl:
		return fmt.Sprintf("%stype %s = %s;", visPrefix(decl.Public), decl.Name, decl.Target)
	default:
		panic(fmt.Sprintf("render: unknown declaration %T", d))
	}
}

func recordDecl(d *model.RecordDecl) string {
	lines := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		name := f.Type
		if f.Name != "" {
			name = visPrefix(f.Public) + f.Name
		}
		lines = append(lines, fmt.Sprintf("    %s: %s", name, f.Type))
	}
	return fmt.Sprintf("%sstruct %s {\n%s\n}", visPrefix(d.Public), d.Name, strings.Join(lines, ",\n"))
}

func sumDecl(d *model.SumDecl) string {
	lines := make([]string, 0, len(d.Variants))
	for _, v := range d.Variants {
		lines = append(lines, "    "+variant(v, d.Public))
	}
	return fmt.Sprintf("%senum %s {\n%s\n}", visPrefix(d.Public), d.Name, strings.Join(lines, ",\n"))
}

func variant(v model.Variant, parentPublic bool) string {
	switch {
	case len(v.Types) > 0:
		return fmt.Sprintf("%s(%s)", v.Name, strings.Join(v.Types, ", "))
	case len(v.Fields) > 0:
		names := make([]string, 0, len(v.Fields))
		for _, f := range v.Fields {
			names = append(names, visPrefix(f.Public)+f.Name)
		}
		inner := strings.Join(names, ", ")
		if len(v.Fields) == 1 {
			inner = fmt.Sprintf("%s: %s", names[0], v.Fields[0].Type)
		}
		return fmt.Sprintf("%s{ %s }", v.Name, inner)
	default:
		return visPrefix(parentPublic) + v.Name
	}
}

func interfaceDecl(d *model.InterfaceDecl) string {
	vis := visPrefix(d.Public)
	lines := make([]string, 0, len(d.Items))
	for _, item := range d.Items {
		switch it := item.(type) {
		case *model.MethodSig:
			ret := ""
			if it.Return != "" {
				ret = " -> " + it.Return
			}
			lines = append(lines, fmt.Sprintf("    %s%sfn %s(%s)%s;",
				vis, sigQualifiers(it.Async, it.Const, it.Unsafe), it.Name, strings.Join(it.Params, ", "), ret))
		case *model.AssocType:
			lines = append(lines, fmt.Sprintf("    type %s;", it.Name))
		case *model.AssocConst:
			lines = append(lines, fmt.Sprintf("    const %s: %s;", it.Name, it.Type))
		}
	}
	if len(lines) == 0 {
		return fmt.Sprintf("%strait %s {\n}", vis, d.Name)
	}
	return fmt.Sprintf("%strait %s {\n%s\n}", vis, d.Name, strings.Join(lines, "\n"))
}

func sigQualifiers(async, isConst, isUnsafe bool) string {
	var b strings.Builder
	if async {
		b.WriteString("async ")
	}
	if isConst {
		b.WriteString("const ")
	}
	if isUnsafe {
		b.WriteString("unsafe ")
	}
	return b.String()
}

func visPrefix(public bool) string {
	if public {
		return "pub "
	}
	return ""
}
