package ingest

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rustscope/rustscope/internal/model"
)

// recordFromItem builds a RecordDecl from a struct_item. Tuple structs
// produce positionally typed fields with empty names.
func recordFromItem(item *sitter.Node, source []byte) *model.RecordDecl {
	nameNode := item.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	decl := &model.RecordDecl{
		Name:   nameNode.Content(source),
		Public: isPublic(item, source),
	}
	if body := item.ChildByFieldName("body"); body != nil {
		switch body.Type() {
		case "field_declaration_list":
			decl.Fields = namedFields(body, source)
		case "ordered_field_declaration_list":
			decl.Fields = orderedFields(body, source)
		}
	}
	return decl
}

// sumFromItem builds a SumDecl from an enum_item.
func sumFromItem(item *sitter.Node, source []byte) *model.SumDecl {
	nameNode := item.ChildByFieldName("name")
	body := item.ChildByFieldName("body")
	if nameNode == nil || body == nil {
		return nil
	}
	decl := &model.SumDecl{
		Name:   nameNode.Content(source),
		Public: isPublic(item, source),
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		v := body.NamedChild(i)
		if v.Type() != "enum_variant" {
			continue
		}
		variantName := v.ChildByFieldName("name")
		if variantName == nil {
			continue
		}
		variant := model.Variant{Name: variantName.Content(source)}
		if vbody := v.ChildByFieldName("body"); vbody != nil {
			switch vbody.Type() {
			case "field_declaration_list":
				variant.Fields = namedFields(vbody, source)
			case "ordered_field_declaration_list":
				for _, f := range orderedFields(vbody, source) {
					variant.Types = append(variant.Types, f.Type)
				}
			}
		}
		decl.Variants = append(decl.Variants, variant)
	}
	return decl
}

// interfaceFromItem builds an InterfaceDecl from a trait_item. Both
// signatures and default method bodies contribute method items; default
// bodies themselves are not indexed as callable functions.
func interfaceFromItem(item *sitter.Node, source []byte) *model.InterfaceDecl {
	nameNode := item.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	decl := &model.InterfaceDecl{
		Name:   nameNode.Content(source),
		Public: isPublic(item, source),
	}
	body := item.ChildByFieldName("body")
	if body == nil {
		return decl
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "function_signature_item", "function_item":
			memberName := member.ChildByFieldName("name")
			if memberName == nil {
				continue
			}
			sig := signatureFrom(member, source)
			decl.Items = append(decl.Items, &model.MethodSig{
				Name:   memberName.Content(source),
				Async:  sig.Async,
				Const:  sig.Const,
				Unsafe: sig.Unsafe,
				Params: sig.Params,
				Return: sig.Return,
			})
		case "associated_type":
			if memberName := member.ChildByFieldName("name"); memberName != nil {
				decl.Items = append(decl.Items, &model.AssocType{
					Name: memberName.Content(source),
				})
			}
		case "const_item":
			memberName := member.ChildByFieldName("name")
			memberType := member.ChildByFieldName("type")
			if memberName != nil && memberType != nil {
				decl.Items = append(decl.Items, &model.AssocConst{
					Name: memberName.Content(source),
					Type: formatType(memberType, source),
				})
			}
		}
	}
	return decl
}

// aliasFromItem builds an AliasDecl from a type_item.
func aliasFromItem(item *sitter.Node, source []byte) *model.AliasDecl {
	nameNode := item.ChildByFieldName("name")
	target := item.ChildByFieldName("type")
	if nameNode == nil || target == nil {
		return nil
	}
	return &model.AliasDecl{
		Name:   nameNode.Content(source),
		Public: isPublic(item, source),
		Target: formatType(target, source),
	}
}

func namedFields(list *sitter.Node, source []byte) []model.Field {
	var fields []model.Field
	for i := 0; i < int(list.NamedChildCount()); i++ {
		f := list.NamedChild(i)
		if f.Type() != "field_declaration" {
			continue
		}
		fieldName := f.ChildByFieldName("name")
		fieldType := f.ChildByFieldName("type")
		if fieldName == nil || fieldType == nil {
			continue
		}
		fields = append(fields, model.Field{
			Name:   fieldName.Content(source),
			Type:   formatType(fieldType, source),
			Public: isPublic(f, source),
		})
	}
	return fields
}

// orderedFields reads a tuple field list. Visibility modifiers precede
// their type in the child sequence.
func orderedFields(list *sitter.Node, source []byte) []model.Field {
	var fields []model.Field
	public := false
	for i := 0; i < int(list.NamedChildCount()); i++ {
		c := list.NamedChild(i)
		switch c.Type() {
		case "attribute_item", "line_comment", "block_comment":
		case "visibility_modifier":
			public = c.Content(source) == "pub"
		default:
			fields = append(fields, model.Field{
				Type:   formatType(c, source),
				Public: public,
			})
			public = false
		}
	}
	return fields
}
