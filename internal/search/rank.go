package search

import "slices"

// Resolver resolves a document ID to a display location, typically the URL
// the crawler fetched it from.
type Resolver interface {
	Resolve(doc uint32) (string, bool)
}

// NoLocation is shown for a document the store cannot resolve. A failed
// lookup degrades that one row, never the ranking.
const NoLocation = "(no-url)"

// Entry is one ranked search hit.
type Entry struct {
	Doc      uint32 `json:"doc"`
	Score    int    `json:"score"`
	Location string `json:"url"`
}

// Rank turns a ScoreMap into the final result list: documents with score
// <= 0 are dropped, the rest are ordered by score descending with ties broken
// by ascending document ID, and each document's location is resolved.
// An empty return value means "no documents match" and is a normal outcome.
func Rank(scores ScoreMap, st Resolver) []Entry {
	entries := make([]Entry, 0, len(scores))
	for doc, score := range scores {
		if score <= 0 {
			continue
		}
		entries = append(entries, Entry{Doc: doc, Score: score})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return int(a.Doc) - int(b.Doc)
	})

	for i := range entries {
		loc, ok := st.Resolve(entries[i].Doc)
		if !ok {
			loc = NoLocation
		}
		entries[i].Location = loc
	}

	return entries
}
