package index

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load reads the indexer's text format: one line per term, the term followed
// by docID/count pairs, all whitespace-separated.
//
//	word docID count [docID count]...
//
// Malformed lines are skipped, not fatal: Load returns the index built from
// every line that parsed, together with a non-nil error describing how many
// lines were dropped. Callers report that error once and continue.
func Load(r io.Reader) (*Memory, error) {
	m := NewMemory()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	bad := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !loadLine(m, line) {
			bad++
		}
	}
	if err := sc.Err(); err != nil {
		return m, fmt.Errorf("read index: %w", err)
	}
	if bad > 0 {
		return m, fmt.Errorf("%d malformed index line(s) skipped", bad)
	}
	return m, nil
}

// loadLine parses one term line. The whole line is committed or dropped;
// a half-parsed line never leaks partial postings into the index.
func loadLine(m *Memory, line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 3 || len(fields)%2 == 0 {
		return false
	}

	term := strings.ToLower(fields[0])

	type posting struct {
		doc   uint32
		count int
	}
	postings := make([]posting, 0, (len(fields)-1)/2)

	for i := 1; i < len(fields); i += 2 {
		doc, err := strconv.ParseUint(fields[i], 10, 32)
		if err != nil {
			return false
		}
		count, err := strconv.Atoi(fields[i+1])
		if err != nil || count < 0 {
			return false
		}
		postings = append(postings, posting{doc: uint32(doc), count: count})
	}

	for _, p := range postings {
		m.Add(term, p.doc, p.count)
	}
	return true
}

// LoadFile opens and loads a text-format index file. See Load for the
// degraded-load contract on malformed lines.
func LoadFile(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
