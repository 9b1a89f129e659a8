package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CrawlerMarker is the file the crawler drops in every page directory it
// produces. Its absence means the directory is not crawler output.
const CrawlerMarker = ".crawler"

// Dir resolves documents against a crawler page directory: files named
// 1, 2, 3, ... whose first line is the page URL.
type Dir struct {
	path string
}

// OpenDir validates and opens a crawler page directory.
func OpenDir(path string) (*Dir, error) {
	if _, err := os.Stat(filepath.Join(path, CrawlerMarker)); err != nil {
		return nil, fmt.Errorf("'%s' is not a crawler directory", path)
	}
	return &Dir{path: path}, nil
}

// Resolve implements Store by reading the first line of the page file.
func (d *Dir) Resolve(doc uint32) (string, bool) {
	f, err := os.Open(filepath.Join(d.path, strconv.FormatUint(uint64(doc), 10)))
	if err != nil {
		return "", false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return "", false
	}
	url := strings.TrimSpace(sc.Text())
	if url == "" {
		return "", false
	}
	return url, true
}

func (d *Dir) Close() error { return nil }
