// Package segment implements the compiled, single-file binary index format:
// snappy-compressed posting blocks addressed by a vellum FST term dictionary,
// read through a read-only mmap.
package segment

import (
	"bytes"
	"encoding/binary"

	"webseek/querier/internal/index"
)

// Segment file format constants.
const (
	Magic   = "QIX\x00"
	Version = uint32(1)
)

// Footer describes the segment file sections. It is stored as JSON near the
// end of the file, located by the fixed-size trailer.
type Footer struct {
	NumTerms       uint64 `json:"num_terms"`
	NumDocs        uint64 `json:"num_docs"`
	PostingsOffset uint64 `json:"postings_offset"`
	PostingsSize   uint64 `json:"postings_size"`
	DictOffset     uint64 `json:"dict_offset"`
	DictSize       uint64 `json:"dict_size"`
}

// EncodePostings encodes one posting list: a uvarint document count, the
// docIDs delta-encoded in ascending order, then the per-document counts.
func EncodePostings(p *index.Postings) []byte {
	docs := p.Docs.ToArray() // ascending

	buf := make([]byte, 0, len(docs)*8)
	tmp := make([]byte, binary.MaxVarintLen64)

	n := binary.PutUvarint(tmp, uint64(len(docs)))
	buf = append(buf, tmp[:n]...)

	var prev uint32
	for _, doc := range docs {
		n = binary.PutUvarint(tmp, uint64(doc-prev))
		buf = append(buf, tmp[:n]...)
		prev = doc
	}

	for _, doc := range docs {
		n = binary.PutUvarint(tmp, uint64(p.Counts[doc]))
		buf = append(buf, tmp[:n]...)
	}

	return buf
}

// DecodePostings decodes a posting list produced by EncodePostings.
func DecodePostings(data []byte) (*index.Postings, error) {
	r := bytes.NewReader(data)

	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}

	docs := make([]uint32, count)
	var prev uint32
	for i := uint64(0); i < count; i++ {
		delta, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		docs[i] = prev + uint32(delta)
		prev = docs[i]
	}

	p := index.NewPostings()
	for i := uint64(0); i < count; i++ {
		c, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		p.Add(docs[i], int(c))
	}

	return p, nil
}
