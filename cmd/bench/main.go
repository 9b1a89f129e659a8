// Benchmark harness for the querier: generates a synthetic index, compiles
// it to a segment, and times boolean queries against both representations.
//
// Run with: go run ./cmd/bench
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"webseek/querier/internal/index"
	"webseek/querier/internal/query"
	"webseek/querier/internal/search"
	"webseek/querier/internal/segment"
)

var (
	numTerms   = flag.Int("terms", 5000, "number of distinct terms")
	numDocs    = flag.Int("docs", 20000, "number of documents")
	numQueries = flag.Int("queries", 2000, "number of queries to run")
	seed       = flag.Int64("seed", 42, "random seed")
)

func main() {
	flag.Parse()

	fmt.Println("Querier Benchmark")
	fmt.Println("=================")
	fmt.Println()

	rng := rand.New(rand.NewSource(*seed))

	start := time.Now()
	mem, terms := generateIndex(rng)
	fmt.Printf("Generated index: %d terms, %d documents (%.2fs)\n",
		mem.NumTerms(), mem.NumDocs(), time.Since(start).Seconds())

	dir, err := os.MkdirTemp("", "querier-bench-*")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	segPath := filepath.Join(dir, "bench.qix")
	start = time.Now()
	if err := segment.Write(segPath, mem); err != nil {
		fmt.Printf("Error writing segment: %v\n", err)
		os.Exit(1)
	}
	info, _ := os.Stat(segPath)
	fmt.Printf("Compiled segment: %d bytes (%.2fs)\n", info.Size(), time.Since(start).Seconds())

	seg, err := segment.Open(segPath)
	if err != nil {
		fmt.Printf("Error opening segment: %v\n", err)
		os.Exit(1)
	}
	defer seg.Close()

	queries := generateQueries(rng, terms)

	fmt.Println()
	runBench("memory index ", mem, queries)
	runBench("mmap segment ", seg, queries)
}

func runBench(name string, idx index.Reader, queries [][]query.Token) {
	var hits int
	start := time.Now()
	for _, tokens := range queries {
		scores, err := search.Evaluate(idx, tokens)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		for _, s := range scores {
			if s > 0 {
				hits++
			}
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("%s: %d queries in %.3fs (%.0f qps), %d total hits\n",
		name, len(queries), elapsed.Seconds(),
		float64(len(queries))/elapsed.Seconds(), hits)
}

// generateIndex builds postings with skewed document frequencies: low term
// indexes are common words, the tail is rare.
func generateIndex(rng *rand.Rand) (*index.Memory, []string) {
	m := index.NewMemory()
	terms := make([]string, *numTerms)

	for t := 0; t < *numTerms; t++ {
		term := termName(t)
		terms[t] = term

		df := (*numDocs)/(t+2) + 1
		if df > *numDocs {
			df = *numDocs
		}
		for i := 0; i < df; i++ {
			doc := uint32(rng.Intn(*numDocs) + 1)
			m.Add(term, doc, rng.Intn(9)+1)
		}
	}
	return m, terms
}

// termName maps an integer to a lowercase alphabetic word: wa, wb, ..., wz,
// waa, ... The "w" prefix keeps generated terms clear of the reserved
// operators.
func termName(n int) string {
	var buf []byte
	for n >= 0 {
		buf = append([]byte{byte('a' + n%26)}, buf...)
		n = n/26 - 1
	}
	return "w" + string(buf)
}

// generateQueries mixes single terms, and-pairs and or-pairs.
func generateQueries(rng *rand.Rand, terms []string) [][]query.Token {
	queries := make([][]query.Token, *numQueries)
	for i := range queries {
		a := terms[rng.Intn(len(terms))]
		b := terms[rng.Intn(len(terms))]
		var line string
		switch i % 3 {
		case 0:
			line = a
		case 1:
			line = a + " and " + b
		default:
			line = a + " or " + b
		}
		tokens, err := query.Parse(line)
		if err != nil {
			panic(err) // generated queries are always well-formed
		}
		queries[i] = tokens
	}
	return queries
}
