package trace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rustscope/rustscope/internal/ingest"
	"github.com/rustscope/rustscope/internal/model"
)

// loadFixture parses a set of file name to source mappings from a temp dir.
func loadFixture(t *testing.T, files map[string]string) *model.Index {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	ix, err := ingest.Load([]string{dir}, ingest.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ix
}

func TestResolveExactBeatsSuffix(t *testing.T) {
	t.Parallel()

	funcs := map[string]*model.Function{
		"a.rs::run":       {QualifiedName: "a.rs::run"},
		"b.rs::a.rs::run": {QualifiedName: "b.rs::a.rs::run"},
	}
	f, ok := Resolve("a.rs::run", funcs)
	if !ok || f.QualifiedName != "a.rs::run" {
		t.Errorf("Resolve = %+v, want exact match", f)
	}
}

func TestResolveSuffixTieBreak(t *testing.T) {
	t.Parallel()

	funcs := map[string]*model.Function{
		"b.rs::run": {QualifiedName: "b.rs::run"},
		"a.rs::run": {QualifiedName: "a.rs::run"},
		"c.rs::run": {QualifiedName: "c.rs::run"},
	}
	f, ok := Resolve("run", funcs)
	if !ok {
		t.Fatal("expected a match")
	}
	if f.QualifiedName != "a.rs::run" {
		t.Errorf("Resolve = %q, want smallest qualified name a.rs::run", f.QualifiedName)
	}

	if _, ok := Resolve("missing", funcs); ok {
		t.Error("unexpected match for missing name")
	}
}

func TestTraceReachability(t *testing.T) {
	t.Parallel()

	ix := loadFixture(t, map[string]string{
		"lib.rs": `
pub fn entry() {
    middle();
}
fn middle() {
    leaf();
}
fn leaf() {}
fn unrelated() {}
`,
	})

	res, err := Trace("entry", ix.Functions)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if len(res.Visited) != 3 {
		t.Errorf("visited = %d functions, want 3", len(res.Visited))
	}
	if res.Root == nil || model.LocalName(res.Root.QualifiedName) != "entry" {
		t.Errorf("root = %+v", res.Root)
	}
	for qn := range res.Visited {
		if model.LocalName(qn) == "unrelated" {
			t.Error("unrelated function should not be visited")
		}
	}
}

func TestTraceMutualRecursionTerminates(t *testing.T) {
	t.Parallel()

	ix := loadFixture(t, map[string]string{
		"lib.rs": `
fn ping() { pong(); }
fn pong() { ping(); }
`,
	})

	res, err := Trace("ping", ix.Functions)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if len(res.Visited) != 2 {
		t.Errorf("visited = %d, want 2", len(res.Visited))
	}
}

func TestTraceCollectsSignatureTypes(t *testing.T) {
	t.Parallel()

	ix := loadFixture(t, map[string]string{
		"lib.rs": `
pub struct Config { pub level: u32 }
pub struct Output { pub text: String }

pub fn entry(cfg: &Config) -> Vec<Output> {
    helper();
    Vec::new()
}
fn helper() {}
`,
	})

	res, err := Trace("entry", ix.Functions)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	for _, want := range []string{"Config", "Output"} {
		if _, ok := res.Types[want]; !ok {
			t.Errorf("type %q not collected, have %v", want, res.Types)
		}
	}
}

func TestTracePrivateMethodsTruncateGraph(t *testing.T) {
	t.Parallel()

	ix := loadFixture(t, map[string]string{
		"lib.rs": `
pub struct Engine;

impl Engine {
    pub fn start(&self) {
        self.warm_up();
    }
    fn warm_up(&self) {
        ignite();
    }
}

fn ignite() {}
`,
	})

	res, err := Trace("start", ix.Functions)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	// warm_up is private, so it is not indexed and the chain through it
	// is invisible.
	if len(res.Visited) != 1 {
		t.Errorf("visited = %d, want only the root", len(res.Visited))
	}
}

func TestTraceUnknownRoot(t *testing.T) {
	t.Parallel()

	ix := loadFixture(t, map[string]string{"lib.rs": `fn real() {}`})

	_, err := Trace("phantom", ix.Functions)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestTraceResolvesRootBySuffix(t *testing.T) {
	t.Parallel()

	ix := loadFixture(t, map[string]string{
		"lib.rs": `
pub struct Engine;
impl Engine {
    pub fn start(&self) {}
}
`,
	})

	res, err := Trace("Engine::start", ix.Functions)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if res.Root.Receiver != "Engine" {
		t.Errorf("root = %+v", res.Root)
	}
}
