package segment

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"webseek/querier/internal/index"
)

func buildMemory(t *testing.T) *index.Memory {
	t.Helper()
	m := index.NewMemory()
	m.Add("dog", 1, 2)
	m.Add("dog", 2, 1)
	m.Add("dog", 9, 4)
	m.Add("cat", 1, 3)
	m.Add("zebra", 100, 1)
	return m
}

func writeSegment(t *testing.T, m *index.Memory) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.qix")
	if err := Write(path, m); err != nil {
		t.Fatalf("write segment: %v", err)
	}
	return path
}

func TestWriteOpenRoundTrip(t *testing.T) {
	m := buildMemory(t)
	seg, err := Open(writeSegment(t, m))
	if err != nil {
		t.Fatalf("open segment: %v", err)
	}
	defer seg.Close()

	if seg.NumTerms() != m.NumTerms() {
		t.Errorf("NumTerms = %d, want %d", seg.NumTerms(), m.NumTerms())
	}
	if seg.NumDocs() != m.NumDocs() {
		t.Errorf("NumDocs = %d, want %d", seg.NumDocs(), m.NumDocs())
	}

	for _, term := range m.Terms() {
		want, _ := m.Lookup(term)
		got, err := seg.Lookup(term)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", term, err)
		}
		if got == nil {
			t.Fatalf("Lookup(%q) returned no postings", term)
		}
		if got.Len() != want.Len() {
			t.Errorf("Lookup(%q) has %d docs, want %d", term, got.Len(), want.Len())
		}
		for doc, count := range want.Counts {
			if got.Count(doc) != count {
				t.Errorf("Lookup(%q) doc %d count = %d, want %d", term, doc, got.Count(doc), count)
			}
		}
	}
}

func TestSegment_LookupAbsentTerm(t *testing.T) {
	seg, err := Open(writeSegment(t, buildMemory(t)))
	if err != nil {
		t.Fatalf("open segment: %v", err)
	}
	defer seg.Close()

	p, err := seg.Lookup("unicorn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil postings for absent term, got %v", p)
	}
}

func TestOpen_RejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.qix")
	junk := make([]byte, 64)
	copy(junk, "NOPE")
	if err := os.WriteFile(path, junk, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	if err == nil || !strings.Contains(err.Error(), "magic") {
		t.Errorf("expected magic error, got %v", err)
	}
}

func TestOpen_RejectsCorruptTrailer(t *testing.T) {
	// valid header, but the trailer carries offsets chosen so that naive
	// offset+size arithmetic wraps around uint64
	tests := []struct {
		name         string
		offset, size uint64
	}{
		{"offset near max", ^uint64(8), 32},
		{"size near max", 8, ^uint64(16)},
		{"offset past end", 1 << 40, 16},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 64)
			copy(buf, Magic)
			binary.BigEndian.PutUint32(buf[len(Magic):], Version)
			binary.BigEndian.PutUint64(buf[len(buf)-16:], tc.offset)
			binary.BigEndian.PutUint64(buf[len(buf)-8:], tc.size)

			path := filepath.Join(t.TempDir(), "corrupt.qix")
			if err := os.WriteFile(path, buf, 0644); err != nil {
				t.Fatal(err)
			}

			_, err := Open(path)
			if err == nil || !strings.Contains(err.Error(), "corrupt segment trailer") {
				t.Errorf("expected corrupt trailer error, got %v", err)
			}
		})
	}
}

func TestOpen_RejectsCorruptFooter(t *testing.T) {
	// well-formed trailer pointing at a footer whose dictionary offset lies
	// far past the end of the file
	footer := []byte(`{"dict_offset":18446744073709551615}`)

	var buf []byte
	buf = append(buf, Magic...)
	buf = binary.BigEndian.AppendUint32(buf, Version)
	footerOffset := uint64(len(buf))
	buf = append(buf, footer...)
	buf = binary.BigEndian.AppendUint64(buf, footerOffset)
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(footer)))

	path := filepath.Join(t.TempDir(), "corrupt.qix")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	if err == nil || !strings.Contains(err.Error(), "corrupt segment footer") {
		t.Errorf("expected corrupt footer error, got %v", err)
	}
}

func TestOpen_RejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.qix")
	if err := os.WriteFile(path, []byte(Magic), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	if err == nil || !strings.Contains(err.Error(), "too small") {
		t.Errorf("expected too-small error, got %v", err)
	}
}

func TestEncodeDecodePostings(t *testing.T) {
	p := index.NewPostings()
	p.Add(1, 2)
	p.Add(7, 1)
	p.Add(500, 9)

	got, err := DecodePostings(EncodePostings(p))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Len() != 3 {
		t.Fatalf("expected 3 docs, got %d", got.Len())
	}
	for doc, count := range p.Counts {
		if got.Count(doc) != count {
			t.Errorf("doc %d count = %d, want %d", doc, got.Count(doc), count)
		}
	}
}

func TestOpenIndex_Autodetect(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "index.txt")
	if err := os.WriteFile(textPath, []byte("dog 1 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	segPath := filepath.Join(dir, "index.qix")
	if err := Write(segPath, buildMemory(t)); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{textPath, segPath} {
		idx, err := OpenIndex(path)
		if err != nil {
			t.Fatalf("OpenIndex(%s): %v", path, err)
		}
		p, err := idx.Lookup("dog")
		if err != nil {
			t.Fatalf("Lookup via %s: %v", path, err)
		}
		if p == nil || p.Count(1) != 2 {
			t.Errorf("Lookup via %s returned %v", path, p)
		}
		if c, ok := idx.(interface{ Close() error }); ok {
			c.Close()
		}
	}
}

func TestOpenIndex_DegradedTextLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.txt")
	if err := os.WriteFile(path, []byte("dog 1 2\nbroken line here extra\n"), 0644); err != nil {
		t.Fatal(err)
	}

	idx, err := OpenIndex(path)
	if err == nil {
		t.Fatal("expected a degraded-load error")
	}
	if idx == nil {
		t.Fatal("expected a usable reader despite the error")
	}
	p, lerr := idx.Lookup("dog")
	if lerr != nil || p == nil {
		t.Errorf("Lookup(dog) = %v, %v", p, lerr)
	}
}
