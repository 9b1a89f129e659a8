// Package store resolves document IDs to their source locations. Two
// backends exist: a BoltDB page store written by mkindex, and the crawler's
// raw page directory.
package store

import (
	"fmt"
	"io"
	"os"
)

// Store resolves document IDs to display locations, typically source URLs.
// A failed resolve is never fatal; callers substitute a placeholder.
type Store interface {
	Resolve(doc uint32) (string, bool)
	io.Closer
}

// Open opens a document store at path: a directory is treated as a crawler
// page directory, a regular file as a Bolt page store.
func Open(path string) (Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open page store: %w", err)
	}
	if info.IsDir() {
		return OpenDir(path)
	}
	return OpenBolt(path)
}
