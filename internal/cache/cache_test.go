package cache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"tptpfmt/internal/format"
)

func TestKeyForDependsOnEveryInput(t *testing.T) {
	base := KeyFor("0.1.0", "abc", []byte("fof(a,axiom,p)."))
	variants := []Key{
		KeyFor("0.2.0", "abc", []byte("fof(a,axiom,p).")),
		KeyFor("0.1.0", "abd", []byte("fof(a,axiom,p).")),
		KeyFor("0.1.0", "abc", []byte("fof(a,axiom,q).")),
		// the separator keeps field boundaries apart
		KeyFor("0.1.0a", "bc", []byte("fof(a,axiom,p).")),
	}
	for i, k := range variants {
		if k == base {
			t.Errorf("variant %d collides with base key", i)
		}
	}
	if again := KeyFor("0.1.0", "abc", []byte("fof(a,axiom,p).")); again != base {
		t.Error("KeyFor is not deterministic")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	key := KeyFor("v", "fp", []byte("x"))
	rep := format.Report{Comments: 1, Statements: 3, Formatted: 2, Passthrough: 1}
	if err := c.Put(key, NewPayload("    fof(a,axiom,\n        p ).", rep, false)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Formatted != "    fof(a,axiom,\n        p )." {
		t.Errorf("Formatted = %q", got.Formatted)
	}
	if got.Report() != rep {
		t.Errorf("Report = %+v, want %+v", got.Report(), rep)
	}
}

func TestGetMisses(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	missing := KeyFor("v", "fp", []byte("missing"))
	if _, ok := c.Get(missing); ok {
		t.Error("missing entry reported as hit")
	}

	corrupt := KeyFor("v", "fp", []byte("corrupt"))
	p := c.pathFor(corrupt)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1, 0xff, 0x00}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(corrupt); ok {
		t.Error("corrupt entry reported as hit")
	}

	stale := KeyFor("v", "fp", []byte("stale"))
	data, err := msgpack.Marshal(&Payload{Schema: schemaVersion + 1, Formatted: "old"})
	if err != nil {
		t.Fatal(err)
	}
	p = c.pathFor(stale)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(stale); ok {
		t.Error("entry from another schema reported as hit")
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *DiskCache
	key := KeyFor("v", "fp", nil)
	if err := c.Put(key, &Payload{}); err != nil {
		t.Errorf("Put on nil cache: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("nil cache reported a hit")
	}
	if err := c.DropAll(); err != nil {
		t.Errorf("DropAll on nil cache: %v", err)
	}
}

func TestDropAll(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	key := KeyFor("v", "fp", []byte("x"))
	if err := c.Put(key, NewPayload("x", format.Report{}, false)); err != nil {
		t.Fatal(err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("entry survived DropAll")
	}
	// второй вызов на пустом каталоге тоже успешен
	if err := c.DropAll(); err != nil {
		t.Errorf("second DropAll: %v", err)
	}
}

func TestDefaultDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultDir("tptpfmt")
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "tptpfmt") {
		t.Errorf("DefaultDir = %q", dir)
	}
}

func TestConcurrentPutGet(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := KeyFor("v", "fp", []byte("shared"))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Put(key, NewPayload("same", format.Report{}, false))
			if p, ok := c.Get(key); ok && p.Formatted != "same" {
				t.Errorf("Formatted = %q", p.Formatted)
			}
		}()
	}
	wg.Wait()
}
