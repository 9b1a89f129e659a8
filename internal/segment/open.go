package segment

import (
	"fmt"
	"io"
	"os"

	"webseek/querier/internal/index"
)

// OpenIndex opens an index file in either supported format. Compiled
// segments are recognized by their leading magic bytes; anything else is
// parsed as the indexer's text format. A text index can never start with the
// magic, since its lines begin with a lowercase word.
//
// For the text format this inherits index.Load's degraded-load contract: the
// returned Reader may be usable even when the error is non-nil.
func OpenIndex(path string) (index.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index file: %w", err)
	}
	magic := make([]byte, len(Magic))
	n, _ := io.ReadFull(f, magic)
	f.Close()

	if n == len(Magic) && string(magic) == Magic {
		return Open(path)
	}

	m, err := index.LoadFile(path)
	if m == nil {
		return nil, err
	}
	return m, err
}
