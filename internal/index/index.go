// Package index holds the read-only inverted index the querier evaluates
// against: per-term postings mapping document IDs to occurrence counts.
package index

import (
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// Postings maps documents to the number of times one term occurs in them.
// Docs carries the same membership as Counts; the bitmap gives cheap
// contains/cardinality checks and mirrors the compiled segment encoding.
type Postings struct {
	Counts map[uint32]int
	Docs   *roaring.Bitmap
}

func NewPostings() *Postings {
	return &Postings{
		Counts: make(map[uint32]int),
		Docs:   roaring.New(),
	}
}

// Add records the occurrence count of the term in a document.
func (p *Postings) Add(doc uint32, count int) {
	p.Counts[doc] = count
	p.Docs.Add(doc)
}

// Count returns the term's count for a document, 0 if the document is absent.
func (p *Postings) Count(doc uint32) int {
	if !p.Docs.Contains(doc) {
		return 0
	}
	return p.Counts[doc]
}

// Len returns the number of documents in the posting list.
func (p *Postings) Len() int {
	return len(p.Counts)
}

// Reader is the read-only view of an inverted index. Lookup returns
// (nil, nil) for a term the index does not contain; errors are I/O-level
// failures, never "not found". Implementations must be safe for concurrent
// readers: the index is immutable once loaded.
type Reader interface {
	Lookup(term string) (*Postings, error)
}

// Memory is an inverted index held fully in memory, as produced by loading
// the indexer's text format.
type Memory struct {
	terms   map[string]*Postings
	allDocs *roaring.Bitmap
}

func NewMemory() *Memory {
	return &Memory{
		terms:   make(map[string]*Postings),
		allDocs: roaring.New(),
	}
}

// Lookup implements Reader.
func (m *Memory) Lookup(term string) (*Postings, error) {
	p, ok := m.terms[term]
	if !ok {
		return nil, nil
	}
	return p, nil
}

// Add records one (term, doc, count) posting.
func (m *Memory) Add(term string, doc uint32, count int) {
	p, ok := m.terms[term]
	if !ok {
		p = NewPostings()
		m.terms[term] = p
	}
	p.Add(doc, count)
	m.allDocs.Add(doc)
}

// NumTerms returns the number of distinct terms.
func (m *Memory) NumTerms() int {
	return len(m.terms)
}

// NumDocs returns the number of distinct documents across all postings.
func (m *Memory) NumDocs() uint64 {
	return m.allDocs.GetCardinality()
}

// Terms returns all terms in sorted order.
func (m *Memory) Terms() []string {
	terms := make([]string, 0, len(m.terms))
	for term := range m.terms {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
