package segment

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/couchbase/vellum"
	"github.com/edsrzf/mmap-go"
	"github.com/golang/snappy"

	"webseek/querier/internal/index"
)

// Segment is an immutable, mmap'd compiled index. It implements index.Reader
// and is safe for concurrent lookups.
type Segment struct {
	path   string
	file   *os.File
	data   mmap.MMap
	footer Footer
	fst    *vellum.FST
}

// Open opens a segment file with mmap and loads its term dictionary.
func Open(path string) (*Segment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open segment %s: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	// magic + version header and the two-uint64 trailer are the bare minimum
	if stat.Size() < int64(len(Magic)+4+16) {
		file.Close()
		return nil, fmt.Errorf("segment file too small: %s", path)
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("mmap segment %s: %w", path, err)
	}

	seg, err := open(path, file, data)
	if err != nil {
		data.Unmap()
		file.Close()
		return nil, err
	}
	return seg, nil
}

func open(path string, file *os.File, data mmap.MMap) (*Segment, error) {
	if string(data[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("invalid segment magic: %s", path)
	}
	if v := binary.BigEndian.Uint32(data[len(Magic):]); v != Version {
		return nil, fmt.Errorf("unsupported segment version %d: %s", v, path)
	}

	// Every offset and size below comes from the file itself, so each bounds
	// check must hold under a hostile value; a+b comparisons would wrap.
	dataLen := uint64(len(data))

	footerOffset := binary.BigEndian.Uint64(data[len(data)-16 : len(data)-8])
	footerSize := binary.BigEndian.Uint64(data[len(data)-8:])
	if footerOffset > dataLen-16 || footerSize > dataLen-16-footerOffset {
		return nil, fmt.Errorf("corrupt segment trailer: %s", path)
	}

	var footer Footer
	if err := json.Unmarshal(data[footerOffset:footerOffset+footerSize], &footer); err != nil {
		return nil, fmt.Errorf("parse segment footer: %w", err)
	}

	if footer.DictOffset > dataLen-8 {
		return nil, fmt.Errorf("corrupt segment footer: %s", path)
	}
	fstSize := binary.BigEndian.Uint64(data[footer.DictOffset:])
	fstStart := footer.DictOffset + 8
	if fstSize > dataLen-fstStart {
		return nil, fmt.Errorf("corrupt term dictionary: %s", path)
	}

	fst, err := vellum.Load(data[fstStart : fstStart+fstSize])
	if err != nil {
		return nil, fmt.Errorf("load term dictionary: %w", err)
	}

	return &Segment{
		path:   path,
		file:   file,
		data:   data,
		footer: footer,
		fst:    fst,
	}, nil
}

// Lookup implements index.Reader: an FST get followed by decompressing and
// decoding the term's posting block. Returns (nil, nil) for an absent term.
func (s *Segment) Lookup(term string) (*index.Postings, error) {
	off, exists, err := s.fst.Get([]byte(term))
	if err != nil {
		return nil, fmt.Errorf("term dictionary lookup %q: %w", term, err)
	}
	if !exists {
		return nil, nil
	}

	dataLen := uint64(len(s.data))
	blockOff := s.footer.PostingsOffset + off
	if blockOff < s.footer.PostingsOffset || blockOff > dataLen-4 {
		return nil, fmt.Errorf("posting block for %q out of range", term)
	}
	blockStart := blockOff + 4
	blockLen := uint64(binary.BigEndian.Uint32(s.data[blockOff:]))
	if blockLen > dataLen-blockStart {
		return nil, fmt.Errorf("posting block for %q out of range", term)
	}

	raw, err := snappy.Decode(nil, s.data[blockStart:blockStart+blockLen])
	if err != nil {
		return nil, fmt.Errorf("decompress postings for %q: %w", term, err)
	}

	p, err := DecodePostings(raw)
	if err != nil {
		return nil, fmt.Errorf("decode postings for %q: %w", term, err)
	}
	return p, nil
}

// Path returns the segment file path.
func (s *Segment) Path() string { return s.path }

// NumTerms returns the number of distinct terms.
func (s *Segment) NumTerms() int { return int(s.footer.NumTerms) }

// NumDocs returns the number of distinct documents.
func (s *Segment) NumDocs() uint64 { return s.footer.NumDocs }

// Close releases the mmap and the underlying file.
func (s *Segment) Close() error {
	if s.fst != nil {
		s.fst.Close()
		s.fst = nil
	}
	if s.data != nil {
		s.data.Unmap()
		s.data = nil
	}
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		return err
	}
	return nil
}
