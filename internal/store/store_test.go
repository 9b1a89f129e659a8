package store

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func crawlerDir(t *testing.T, pages map[uint32]string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CrawlerMarker), nil, 0644); err != nil {
		t.Fatal(err)
	}
	for doc, url := range pages {
		path := filepath.Join(dir, strconv.FormatUint(uint64(doc), 10))
		content := url + "\n0\nsome page body\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBolt_PutResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.db")
	b, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	defer b.Close()

	if err := b.Put(1, Page{URL: "http://example.com/", Depth: 0}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := b.Put(2, Page{URL: "http://example.com/a", Depth: 1}); err != nil {
		t.Fatalf("put: %v", err)
	}

	url, ok := b.Resolve(1)
	if !ok || url != "http://example.com/" {
		t.Errorf("Resolve(1) = %q, %v", url, ok)
	}
	url, ok = b.Resolve(2)
	if !ok || url != "http://example.com/a" {
		t.Errorf("Resolve(2) = %q, %v", url, ok)
	}
}

func TestBolt_ResolveMissing(t *testing.T) {
	b, err := OpenBolt(filepath.Join(t.TempDir(), "pages.db"))
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	defer b.Close()

	if url, ok := b.Resolve(42); ok {
		t.Errorf("expected miss, got %q", url)
	}
}

func TestBolt_EmptyURLIsMiss(t *testing.T) {
	b, err := OpenBolt(filepath.Join(t.TempDir(), "pages.db"))
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	defer b.Close()

	if err := b.Put(1, Page{URL: ""}); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Resolve(1); ok {
		t.Error("expected a record with an empty URL to resolve as a miss")
	}
}

func TestDir_Resolve(t *testing.T) {
	dir := crawlerDir(t, map[uint32]string{
		1: "http://example.com/",
		2: "http://example.com/a",
	})

	d, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("open dir: %v", err)
	}
	defer d.Close()

	url, ok := d.Resolve(1)
	if !ok || url != "http://example.com/" {
		t.Errorf("Resolve(1) = %q, %v", url, ok)
	}
	if _, ok := d.Resolve(9); ok {
		t.Error("expected miss for absent page file")
	}
}

func TestOpenDir_MissingMarker(t *testing.T) {
	_, err := OpenDir(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "not a crawler directory") {
		t.Errorf("expected crawler directory error, got %v", err)
	}
}

func TestOpen_Autodetect(t *testing.T) {
	dir := crawlerDir(t, map[uint32]string{1: "http://example.com/"})

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open(dir): %v", err)
	}
	if _, ok := s.(*Dir); !ok {
		t.Errorf("Open(dir) = %T, want *Dir", s)
	}
	s.Close()

	path := filepath.Join(t.TempDir(), "pages.db")
	b, err := OpenBolt(path)
	if err != nil {
		t.Fatal(err)
	}
	b.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("Open(file): %v", err)
	}
	if _, ok := s.(*Bolt); !ok {
		t.Errorf("Open(file) = %T, want *Bolt", s)
	}
	s.Close()
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("expected error for missing path")
	}
}
