// Playground for the querier: builds a small in-memory index from sample
// pages and runs example queries against it.
//
// Run with: go run ./cmd/playground
package main

import (
	"fmt"
	"strings"
	"unicode"

	"webseek/querier/internal/index"
	"webseek/querier/internal/search"
)

// memPages is a toy document store for demo output.
type memPages map[uint32]string

func (m memPages) Resolve(doc uint32) (string, bool) {
	url, ok := m[doc]
	return url, ok
}

func main() {
	pages := []struct {
		doc  uint32
		url  string
		text string
	}{
		{1, "http://example.org/go", "Go is a statically typed programming language designed at Google. Go programs compile fast."},
		{2, "http://example.org/concurrency", "Goroutines and channels make concurrent programming easy in Go."},
		{3, "http://example.org/python", "Python is a dynamically typed language popular for scripting and data science."},
		{4, "http://example.org/rust", "Rust is a systems programming language focused on safety and performance."},
		{5, "http://example.org/web", "Building web applications with Go is fast and efficient. Web servers in Go scale well."},
		{6, "http://example.org/search", "Search engines use inverted indexes to find documents quickly."},
	}

	idx := index.NewMemory()
	store := memPages{}

	fmt.Println("=== Querier Playground ===")
	fmt.Println()
	fmt.Println("Indexing sample pages...")
	for _, p := range pages {
		for word, count := range wordCounts(p.text) {
			idx.Add(word, p.doc, count)
		}
		store[p.doc] = p.url
		fmt.Printf("  doc %d: %s\n", p.doc, p.url)
	}
	fmt.Printf("\n%d terms over %d documents\n\n", idx.NumTerms(), idx.NumDocs())

	searcher := search.New(idx, store)

	queries := []string{
		// single term
		"go",
		// implicit and
		"go programming",
		// explicit and
		"go and web",
		// or across branches
		"python or rust",
		// and binds tighter than or
		"go and web or search",
		// unknown term
		"zzz",
		// term zeroed out of an and-group
		"go and zzz",
		// syntax errors
		"and go",
		"go and or rust",
	}

	for _, q := range queries {
		fmt.Printf(">> %s\n", q)
		resp, err := searcher.Run(q)
		if err != nil {
			fmt.Printf("   Error: %v\n\n", err)
			continue
		}
		if resp == nil || len(resp.Results) == 0 {
			fmt.Println("   No documents match.")
			fmt.Println()
			continue
		}
		for i, e := range resp.Results {
			fmt.Printf("   %d. doc %d (score %d) %s\n", i+1, e.Doc, e.Score, e.Location)
		}
		fmt.Println()
	}
}

// wordCounts lowercases the text and counts maximal letter runs, the same
// shape the upstream indexer produces.
func wordCounts(text string) map[string]int {
	counts := make(map[string]int)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		counts[w]++
	}
	return counts
}
