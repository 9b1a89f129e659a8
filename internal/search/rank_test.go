package search

import (
	"reflect"
	"testing"
)

// mapResolver is a test document store.
type mapResolver map[uint32]string

func (m mapResolver) Resolve(doc uint32) (string, bool) {
	url, ok := m[doc]
	return url, ok
}

func TestRank_FiltersNonPositiveScores(t *testing.T) {
	scores := ScoreMap{1: 3, 2: 0, 3: 1}
	entries := Rank(scores, mapResolver{})

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(entries), entries)
	}
	for _, e := range entries {
		if e.Score <= 0 {
			t.Errorf("entry with non-positive score leaked through: %+v", e)
		}
	}
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	scores := ScoreMap{1: 1, 2: 5, 3: 3}
	entries := Rank(scores, mapResolver{})

	var docs []uint32
	for _, e := range entries {
		docs = append(docs, e.Doc)
	}
	want := []uint32{2, 3, 1}
	if !reflect.DeepEqual(docs, want) {
		t.Errorf("expected order %v, got %v", want, docs)
	}
}

func TestRank_BreaksTiesByAscendingDoc(t *testing.T) {
	scores := ScoreMap{3: 1, 2: 1}
	entries := Rank(scores, mapResolver{})

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Doc != 2 || entries[1].Doc != 3 {
		t.Errorf("expected docs [2 3], got [%d %d]", entries[0].Doc, entries[1].Doc)
	}
}

func TestRank_ResolvesLocations(t *testing.T) {
	scores := ScoreMap{1: 2, 2: 1}
	entries := Rank(scores, mapResolver{1: "http://example.org/one"})

	if entries[0].Location != "http://example.org/one" {
		t.Errorf("expected resolved URL, got %q", entries[0].Location)
	}
	// a failed lookup degrades that row only
	if entries[1].Location != NoLocation {
		t.Errorf("expected %q placeholder, got %q", NoLocation, entries[1].Location)
	}
}

func TestRank_EmptyScoreMap(t *testing.T) {
	entries := Rank(ScoreMap{}, mapResolver{})
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}
}
