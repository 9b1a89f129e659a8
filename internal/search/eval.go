// Package search evaluates validated boolean queries against an inverted
// index and ranks the results. The grammar gives "and" precedence over "or":
//
//	query    ::= andgroup ( "or" andgroup )*
//	andgroup ::= term ( ["and"] term )*
//
// An and-group is scored by per-document minimum of term counts, the or-level
// by per-document sum of group scores.
package search

import (
	"fmt"

	"webseek/querier/internal/index"
	"webseek/querier/internal/query"
)

// ScoreMap maps document IDs to match scores for one query evaluation. It is
// created at the start of an evaluation and discarded at its end; nothing is
// shared across queries.
type ScoreMap map[uint32]int

// Evaluate runs a validated token sequence against the index. An empty
// sequence evaluates to an empty ScoreMap. The index is never mutated.
func Evaluate(idx index.Reader, tokens []query.Token) (ScoreMap, error) {
	result := ScoreMap{}
	first := true

	i := 0
	for i < len(tokens) {
		group, next, err := evalAndGroup(idx, tokens, i)
		if err != nil {
			return nil, err
		}

		if first {
			result = group
			first = false
		} else {
			unionInto(result, group)
		}

		i = next
		if i < len(tokens) && tokens[i].Type == query.TokenOr {
			i++
		}
	}

	return result, nil
}

// evalAndGroup evaluates one and-group beginning at start and returns its
// score map along with the index of the first token after the group (an "or"
// or the end of the sequence). Explicit "and" tokens are skipped; two
// adjacent terms conjoin implicitly.
func evalAndGroup(idx index.Reader, tokens []query.Token, start int) (ScoreMap, int, error) {
	var acc ScoreMap

	i := start
	for i < len(tokens) && tokens[i].Type != query.TokenOr {
		if tokens[i].Type == query.TokenAnd {
			i++
			continue
		}

		p, err := idx.Lookup(tokens[i].Text)
		if err != nil {
			return nil, 0, fmt.Errorf("lookup %q: %w", tokens[i].Text, err)
		}

		switch {
		case acc == nil:
			acc = fromPostings(p)
		case p == nil:
			// Intersecting with a term the index has never seen zeroes
			// every candidate. Entries are zeroed, not removed; the ranker
			// filters non-positive scores before output.
			for doc := range acc {
				acc[doc] = 0
			}
		default:
			intersectInto(acc, p)
		}
		i++
	}

	if acc == nil {
		acc = ScoreMap{}
	}
	return acc, i, nil
}

// fromPostings seeds a fresh ScoreMap from a term's postings. A nil postings
// list (unknown term) seeds an empty map.
func fromPostings(p *index.Postings) ScoreMap {
	sm := ScoreMap{}
	if p == nil {
		return sm
	}
	for doc, count := range p.Counts {
		sm[doc] = count
	}
	return sm
}

// intersectInto lowers each candidate's score to the minimum of its current
// score and the term's count for that document. A document the term never
// mentions counts as 0, so it drops out of the match at ranking time.
func intersectInto(acc ScoreMap, p *index.Postings) {
	for doc, score := range acc {
		acc[doc] = min(score, p.Count(doc))
	}
}

// unionInto merges an and-group's scores into the running result by
// per-document addition. A document matching several or-branches accumulates
// every contribution.
func unionInto(acc, group ScoreMap) {
	for doc, score := range group {
		acc[doc] += score
	}
}
