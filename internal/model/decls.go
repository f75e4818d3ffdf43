package model

// TypeDecl is the closed set of indexable type declarations. Formatters
// dispatch on the concrete type with an exhaustive switch, so adding a kind
// is a compile-time-checked exercise.
type TypeDecl interface {
	DeclName() string
	IsPublic() bool
	typeDecl()
}

// Field is a struct or variant field. Tuple fields have an empty Name.
type Field struct {
	Name   string
	Type   string
	Public bool
}

// RecordDecl is a struct declaration.
type RecordDecl struct {
	Name   string
	Public bool
	Fields []Field
}

// Variant is one case of a sum type. Exactly one of Fields and Types is set
// for struct-like and tuple variants; both are empty for unit variants.
type Variant struct {
	Name   string
	Fields []Field
	Types  []string
}

// SumDecl is an enum declaration.
type SumDecl struct {
	Name     string
	Public   bool
	Variants []Variant
}

// InterfaceItem is one member of an interface contract, in declaration order.
type InterfaceItem interface {
	interfaceItem()
}

// MethodSig is a trait method declaration (with or without a default body).
type MethodSig struct {
	Name   string
	Async  bool
	Const  bool
	Unsafe bool
	Params []string
	Return string
}

// AssocType is a trait associated type.
type AssocType struct {
	Name string
}

// AssocConst is a trait associated constant.
type AssocConst struct {
	Name string
	Type string
}

func (MethodSig) interfaceItem()  {}
func (AssocType) interfaceItem()  {}
func (AssocConst) interfaceItem() {}

// InterfaceDecl is a trait declaration.
type InterfaceDecl struct {
	Name   string
	Public bool
	Items  []InterfaceItem
}

// AliasDecl is a type alias.
type AliasDecl struct {
	Name   string
	Public bool
	Target string
}

func (d *RecordDecl) DeclName() string    { return d.Name }
func (d *SumDecl) DeclName() string       { return d.Name }
func (d *InterfaceDecl) DeclName() string { return d.Name }
func (d *AliasDecl) DeclName() string     { return d.Name }

func (d *RecordDecl) IsPublic() bool    { return d.Public }
func (d *SumDecl) IsPublic() bool       { return d.Public }
func (d *InterfaceDecl) IsPublic() bool { return d.Public }
func (d *AliasDecl) IsPublic() bool     { return d.Public }

func (*RecordDecl) typeDecl()    {}
func (*SumDecl) typeDecl()       {}
func (*InterfaceDecl) typeDecl() {}
func (*AliasDecl) typeDecl()     {}
