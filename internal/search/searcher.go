package search

import (
	"strings"

	"webseek/querier/internal/index"
	"webseek/querier/internal/query"
)

// Searcher answers boolean keyword queries against a read-only index,
// resolving hits through a document store. It holds no per-query state and
// is safe for concurrent use.
type Searcher struct {
	idx index.Reader
	st  Resolver
}

// New creates a searcher over an index and a document store.
func New(idx index.Reader, st Resolver) *Searcher {
	return &Searcher{idx: idx, st: st}
}

// Response is the outcome of one query line.
type Response struct {
	Query   string  `json:"query"`
	Results []Entry `json:"results"`
}

// Run tokenizes, validates, evaluates and ranks one raw query line. A blank
// or all-whitespace line returns (nil, nil): a valid no-op. A rejected line
// returns a *query.SyntaxError and is never evaluated.
func (s *Searcher) Run(line string) (*Response, error) {
	tokens, err := query.Parse(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	scores, err := Evaluate(s.idx, tokens)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.Text
	}

	return &Response{
		Query:   strings.Join(texts, " "),
		Results: Rank(scores, s.st),
	}, nil
}
