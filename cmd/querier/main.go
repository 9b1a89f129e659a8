// querier answers boolean keyword queries against an index built by the
// upstream indexer, ranking matches by summed minimum term counts.
//
// Usage:
//
//	querier pageStore indexFile
//
// pageStore is either a crawler page directory or a Bolt page store built by
// mkindex; indexFile is a text index or a compiled segment. Queries are read
// one per line from stdin; a prompt is shown only when stdin is a terminal.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/c-bata/go-prompt"
	"github.com/mattn/go-isatty"

	"webseek/querier/internal/search"
	"webseek/querier/internal/segment"
	"webseek/querier/internal/store"
)

const separator = "-----------------------------------------------"

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s pageStore indexFile\n", os.Args[0])
		os.Exit(1)
	}
	pagePath, indexPath := os.Args[1], os.Args[2]

	// Validate both arguments before any loading begins.
	st, err := store.Open(pagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "querier: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if f, err := os.Open(indexPath); err != nil {
		fmt.Fprintf(os.Stderr, "querier: cannot read index file '%s'\n", indexPath)
		os.Exit(1)
	} else {
		f.Close()
	}

	idx, err := segment.OpenIndex(indexPath)
	if idx == nil {
		fmt.Fprintf(os.Stderr, "querier: %v\n", err)
		os.Exit(2)
	}
	if err != nil {
		// Degraded load: report once, answer queries from what did parse.
		fmt.Fprintf(os.Stderr, "querier: errors encountered while loading index file: %v\n", err)
	}
	if c, ok := idx.(io.Closer); ok {
		defer c.Close()
	}

	queryLoop(search.New(idx, st))
}

// queryLoop reads queries until end of input, one fully answered before the
// next is read. Interactive sessions get a go-prompt REPL; piped input is
// consumed with a plain scanner. Output is identical either way.
func queryLoop(searcher *search.Searcher) {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		p := prompt.New(
			func(line string) { runQuery(searcher, line, os.Stdout, os.Stderr) },
			func(d prompt.Document) []prompt.Suggest { return nil },
			prompt.OptionPrefix("Query? "),
			prompt.OptionTitle("querier"),
		)
		p.Run()
		return
	}

	if err := runBatch(searcher, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "querier: %v\n", err)
	}
}

// runBatch answers one query per input line until end of input. A read
// failure is returned rather than silently ending the loop.
func runBatch(searcher *search.Searcher, r io.Reader, out, errw io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		runQuery(searcher, sc.Text(), out, errw)
	}
	fmt.Fprintln(out)
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read queries: %w", err)
	}
	return nil
}

// runQuery answers one query line, printing one output block. Syntax errors
// are diagnosed on errw and skip the query; they never stop the loop.
func runQuery(searcher *search.Searcher, line string, out, errw io.Writer) {
	resp, err := searcher.Run(line)
	if err != nil {
		fmt.Fprintf(errw, "Error: %v\n", err)
		return
	}
	if resp == nil {
		return // blank line
	}

	fmt.Fprintf(out, "Query: %s\n", resp.Query)
	if len(resp.Results) == 0 {
		fmt.Fprintln(out, "No documents match.")
	} else {
		fmt.Fprintf(out, "Matches %d documents (ranked):\n", len(resp.Results))
		for _, e := range resp.Results {
			fmt.Fprintf(out, "score %3d  doc %3d: %s\n", e.Score, e.Doc, e.Location)
		}
	}
	fmt.Fprintln(out, separator)
}
