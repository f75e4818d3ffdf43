package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rustscope/rustscope/internal/ingest"
	"github.com/rustscope/rustscope/internal/model"
	"github.com/rustscope/rustscope/internal/trace"
)

func loadFixture(t *testing.T, source string) *model.Index {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lib.rs"), []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	ix, err := ingest.Load([]string{dir}, ingest.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ix
}

func mustResolve(t *testing.T, ix *model.Index, name string) *model.Function {
	t.Helper()
	f, ok := trace.Resolve(name, ix.Functions)
	if !ok {
		t.Fatalf("function %q not found", name)
	}
	return f
}

func TestTreeBranchMarkers(t *testing.T) {
	t.Parallel()

	ix := loadFixture(t, `
fn root() {
    first();
    second();
}
fn first() {
    nested();
}
fn second() {}
fn nested() {}
`)

	var b strings.Builder
	Tree(&b, mustResolve(t, ix, "root"), ix.Functions)
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")

	if !strings.HasSuffix(lines[0], " -> ()") || !strings.Contains(lines[0], "fn ") {
		t.Errorf("root line = %q", lines[0])
	}
	want := []string{
		"├── first",
		"│   └── nested",
		"└── second",
	}
	if len(lines) != len(want)+1 {
		t.Fatalf("output:\n%s", b.String())
	}
	for i, w := range want {
		if lines[i+1] != w {
			t.Errorf("line %d = %q, want %q", i+1, lines[i+1], w)
		}
	}
}

func TestTreeCycleMarker(t *testing.T) {
	t.Parallel()

	ix := loadFixture(t, `
fn ping() { pong(); }
fn pong() { ping(); }
`)

	var b strings.Builder
	Tree(&b, mustResolve(t, ix, "ping"), ix.Functions)

	if !strings.Contains(b.String(), "ping (already shown)") {
		t.Errorf("missing cycle marker:\n%s", b.String())
	}
}

func TestTreeUnresolvedLeafAndContext(t *testing.T) {
	t.Parallel()

	ix := loadFixture(t, `
fn root() {
    if ready {
        known();
    }
    external_thing();
}
fn known() {}
`)

	var b strings.Builder
	Tree(&b, mustResolve(t, ix, "root"), ix.Functions)
	out := b.String()

	if !strings.Contains(out, "├── known [in: if (ready)]") {
		t.Errorf("missing context annotation:\n%s", out)
	}
	if !strings.Contains(out, "└── external_thing\n") {
		t.Errorf("unresolved callee should be a bare leaf:\n%s", out)
	}
	if strings.Contains(out, "external_thing (already shown)") {
		t.Errorf("unresolved callee must not carry a cycle marker:\n%s", out)
	}
}

func TestDeclRecord(t *testing.T) {
	t.Parallel()

	got := Decl(&model.RecordDecl{
		Name:   "Point",
		Public: true,
		Fields: []model.Field{
			{Name: "x", Type: "f64", Public: true},
			{Name: "y", Type: "f64"},
		},
	})
	want := "pub struct Point {\n    pub x: f64,\n    y: f64\n}"
	if got != want {
		t.Errorf("Decl = %q, want %q", got, want)
	}
}

func TestDeclTupleRecord(t *testing.T) {
	t.Parallel()

	got := Decl(&model.RecordDecl{
		Name:   "Wrapper",
		Fields: []model.Field{{Type: "String"}},
	})
	want := "struct Wrapper {\n    String: String\n}"
	if got != want {
		t.Errorf("Decl = %q, want %q", got, want)
	}
}

func TestDeclSum(t *testing.T) {
	t.Parallel()

	got := Decl(&model.SumDecl{
		Name:   "Shape",
		Public: true,
		Variants: []model.Variant{
			{Name: "Empty"},
			{Name: "Circle", Types: []string{"f64"}},
			{Name: "Rect", Fields: []model.Field{{Name: "w", Type: "f64"}, {Name: "h", Type: "f64"}}},
			{Name: "Label", Fields: []model.Field{{Name: "text", Type: "String"}}},
		},
	})
	want := "pub enum Shape {\n" +
		"    pub Empty,\n" +
		"    Circle(f64),\n" +
		"    Rect{ w, h },\n" +
		"    Label{ text: String }\n" +
		"}"
	if got != want {
		t.Errorf("Decl = %q, want %q", got, want)
	}
}

func TestDeclInterface(t *testing.T) {
	t.Parallel()

	got := Decl(&model.InterfaceDecl{
		Name:   "Draw",
		Public: true,
		Items: []model.InterfaceItem{
			&model.MethodSig{Name: "draw", Params: []string{"self"}, Return: "String"},
			&model.AssocType{Name: "Output"},
			&model.AssocConst{Name: "SCALE", Type: "f64"},
		},
	})
	want := "pub trait Draw {\n" +
		"    pub fn draw(self) -> String;\n" +
		"    type Output;\n" +
		"    const SCALE: f64;\n" +
		"}"
	if got != want {
		t.Errorf("Decl = %q, want %q", got, want)
	}

	empty := Decl(&model.InterfaceDecl{Name: "Marker"})
	if empty != "trait Marker {\n}" {
		t.Errorf("empty trait = %q", empty)
	}
}

func TestDeclAlias(t *testing.T) {
	t.Parallel()

	got := Decl(&model.AliasDecl{Name: "Res", Public: true, Target: "Result<(), String>"})
	want := "pub type Res = Result<(), String>;"
	if got != want {
		t.Errorf("Decl = %q, want %q", got, want)
	}
}

func TestFunctionSource(t *testing.T) {
	t.Parallel()

	ix := loadFixture(t, `
pub struct Engine;
impl Engine {
    pub fn start(&self, level: u32) -> bool {
        true
    }
}
`)

	got := FunctionSource(mustResolve(t, ix, "start"))
	if !strings.HasPrefix(got, "pub fn Engine::start(self, u32) -> bool {") {
		t.Errorf("source = %q", got)
	}
	if !strings.Contains(got, "true") || !strings.HasSuffix(got, "}\n") {
		t.Errorf("source body = %q", got)
	}
}

func TestFunctionSourceUnitReturnOmitsArrow(t *testing.T) {
	t.Parallel()

	ix := loadFixture(t, `fn quiet() {}`)

	got := FunctionSource(mustResolve(t, ix, "quiet"))
	if strings.Contains(got, "->") {
		t.Errorf("unit return must omit the arrow: %q", got)
	}
	if !strings.HasPrefix(got, "fn quiet() {") {
		t.Errorf("source = %q", got)
	}
}
