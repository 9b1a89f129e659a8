package segment

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/couchbase/vellum"
	"github.com/golang/snappy"

	"webseek/querier/internal/index"
)

// Write compiles an in-memory index into a segment file at path. Terms are
// written in sorted order, so the same index always produces the same bytes.
func Write(path string, m *index.Memory) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create segment: %w", err)
	}

	if err := write(f, m); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func write(f *os.File, m *index.Memory) error {
	if _, err := f.Write([]byte(Magic)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.BigEndian, Version); err != nil {
		return err
	}

	footer := Footer{
		NumTerms: uint64(m.NumTerms()),
		NumDocs:  m.NumDocs(),
	}

	terms := m.Terms()

	// Posting blocks, each snappy-compressed behind a uint32 length prefix.
	// Offsets are relative to the postings section so the FST values stay
	// small.
	postingsStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	footer.PostingsOffset = uint64(postingsStart)

	offsets := make(map[string]uint64, len(terms))
	for _, term := range terms {
		p, err := m.Lookup(term)
		if err != nil {
			return err
		}

		off, err := f.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		offsets[term] = uint64(off) - footer.PostingsOffset

		compressed := snappy.Encode(nil, EncodePostings(p))
		if err := binary.Write(f, binary.BigEndian, uint32(len(compressed))); err != nil {
			return err
		}
		if _, err := f.Write(compressed); err != nil {
			return err
		}
	}

	postingsEnd, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	footer.PostingsSize = uint64(postingsEnd) - footer.PostingsOffset

	// Term dictionary: vellum FST mapping term -> relative block offset,
	// behind a uint64 size prefix.
	footer.DictOffset = uint64(postingsEnd)

	var fstBuf bytes.Buffer
	fstBuilder, err := vellum.New(&fstBuf, nil)
	if err != nil {
		return fmt.Errorf("build term dictionary: %w", err)
	}
	for _, term := range terms {
		if err := fstBuilder.Insert([]byte(term), offsets[term]); err != nil {
			return fmt.Errorf("insert term %q: %w", term, err)
		}
	}
	if err := fstBuilder.Close(); err != nil {
		return fmt.Errorf("close term dictionary: %w", err)
	}

	if err := binary.Write(f, binary.BigEndian, uint64(fstBuf.Len())); err != nil {
		return err
	}
	if _, err := f.Write(fstBuf.Bytes()); err != nil {
		return err
	}

	dictEnd, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	footer.DictSize = uint64(dictEnd) - footer.DictOffset

	// Footer JSON, then the fixed trailer locating it.
	footerData, err := json.Marshal(footer)
	if err != nil {
		return err
	}
	footerOffset, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := f.Write(footerData); err != nil {
		return err
	}
	if err := binary.Write(f, binary.BigEndian, uint64(footerOffset)); err != nil {
		return err
	}
	return binary.Write(f, binary.BigEndian, uint64(len(footerData)))
}
