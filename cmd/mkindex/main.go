// mkindex compiles querier inputs into their binary forms.
//
//	mkindex <textIndex> <out.qix>      compile a text index into a segment
//	mkindex -pages <crawlerDir> <out.db>  build a Bolt page store from a
//	                                      crawler page directory
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"webseek/querier/internal/index"
	"webseek/querier/internal/segment"
	"webseek/querier/internal/store"
)

var pagesMode = flag.Bool("pages", false, "treat input as a crawler page directory and build a page store")

func main() {
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	var err error
	if *pagesMode {
		err = buildPageStore(in, out)
	} else {
		err = compileIndex(in, out)
	}
	if err != nil {
		log.Fatalf("mkindex: %v", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-pages] input output\n", os.Args[0])
	flag.PrintDefaults()
}

func compileIndex(in, out string) error {
	m, err := index.LoadFile(in)
	if m == nil {
		return err
	}
	if err != nil {
		log.Printf("mkindex: %v", err)
	}

	if err := segment.Write(out, m); err != nil {
		return err
	}
	log.Printf("wrote %s: %d terms, %d documents", out, m.NumTerms(), m.NumDocs())
	return nil
}

func buildPageStore(dir, out string) error {
	if _, err := os.Stat(filepath.Join(dir, store.CrawlerMarker)); err != nil {
		return fmt.Errorf("'%s' is not a crawler directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	b, err := store.OpenBolt(out)
	if err != nil {
		return err
	}
	defer b.Close()

	count := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, err := strconv.ParseUint(e.Name(), 10, 32)
		if err != nil {
			continue // marker file and anything else non-numeric
		}

		page, err := readPage(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Printf("mkindex: skipping doc %d: %v", id, err)
			continue
		}
		if err := b.Put(uint32(id), page); err != nil {
			return err
		}
		count++
	}

	log.Printf("wrote %s: %d pages", out, count)
	return nil
}

// readPage reads a crawler page file: URL on the first line, crawl depth on
// the second. The page body that follows is not stored.
func readPage(path string) (store.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return store.Page{}, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return store.Page{}, fmt.Errorf("empty page file")
	}
	page := store.Page{URL: strings.TrimSpace(sc.Text())}
	if page.URL == "" {
		return store.Page{}, fmt.Errorf("missing URL")
	}

	if sc.Scan() {
		if depth, err := strconv.Atoi(strings.TrimSpace(sc.Text())); err == nil {
			page.Depth = depth
		}
	}
	return page, nil
}
