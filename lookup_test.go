package symspell

import (
	"testing"

	"github.com/morezian/symspell/verbosity"
)

// buildFruitEngine loads the apple/apples/example/simple/ample scenario
// dictionary at the documented defaults (maxEditDistance 2, prefixLength 7).
func buildFruitEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewDefault()
	if err != nil {
		t.Fatalf("NewDefault() error: %v", err)
	}
	for word, count := range map[string]int64{
		"apple":   1000,
		"apples":  900,
		"example": 800,
		"simple":  700,
		"ample":   600,
	} {
		e.CreateDictionaryEntry(word, count)
	}
	return e
}

func TestLookupExactMatchReturnsDistanceZero(t *testing.T) {
	e := buildFruitEngine(t)
	suggestions, err := e.Lookup("apple", verbosity.Closest, 2, false, false)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Term != "apple" || suggestions[0].Distance != 0 {
		t.Fatalf("Lookup(apple) = %v, want single exact match", suggestions)
	}
}

func TestLookupTopReturnsSingleBestSuggestion(t *testing.T) {
	e := buildFruitEngine(t)
	suggestions, err := e.Lookup("aple", verbosity.Top, 2, false, false)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("Lookup with Top verbosity should return exactly one suggestion, got %v", suggestions)
	}
}

func TestLookupClosestReturnsOnlyMinimalDistance(t *testing.T) {
	e := buildFruitEngine(t)
	suggestions, err := e.Lookup("aple", verbosity.Closest, 2, false, false)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if len(suggestions) == 0 {
		t.Fatalf("expected at least one suggestion")
	}
	best := suggestions[0].Distance
	for _, s := range suggestions {
		if s.Distance != best {
			t.Fatalf("Closest verbosity returned mixed distances: %v", suggestions)
		}
	}
}

func TestLookupAllOrdersByDistanceThenCountThenTerm(t *testing.T) {
	e := buildFruitEngine(t)
	suggestions, err := e.Lookup("ample", verbosity.All, 2, false, false)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	for i := 1; i < len(suggestions); i++ {
		a, b := suggestions[i-1], suggestions[i]
		if a.Distance > b.Distance {
			t.Fatalf("suggestions not sorted by distance: %v", suggestions)
		}
		if a.Distance == b.Distance && a.Count < b.Count {
			t.Fatalf("suggestions not sorted by count desc within a distance: %v", suggestions)
		}
	}
}

func TestLookupRejectsMaxEditDistanceAboveConfigured(t *testing.T) {
	e := buildFruitEngine(t)
	if _, err := e.Lookup("aple", verbosity.Closest, 5, false, false); err == nil {
		t.Fatalf("Lookup with maxEditDistance exceeding configured should fail")
	}
}

func TestLookupUnknownWordReturnsEmptyByDefault(t *testing.T) {
	e := buildFruitEngine(t)
	suggestions, err := e.Lookup("zzzzzzzzzz", verbosity.Closest, 2, false, false)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("Lookup on an unrelated word should return no suggestions, got %v", suggestions)
	}
}

func TestLookupIncludeUnknownSynthesizesFallback(t *testing.T) {
	e := buildFruitEngine(t)
	suggestions, err := e.Lookup("zzzzzzzzzz", verbosity.Closest, 2, true, false)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Term != "zzzzzzzzzz" || suggestions[0].Distance != 3 {
		t.Fatalf("Lookup with includeUnknown = %v, want single synthetic fallback at distance maxEditDistance+1", suggestions)
	}
}

func TestLookupZeroMaxEditDistanceOnlyExactMatch(t *testing.T) {
	e := buildFruitEngine(t)
	suggestions, err := e.Lookup("aple", verbosity.Closest, 0, false, false)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("maxEditDistance 0 with no exact match should return nothing, got %v", suggestions)
	}
}

func TestLookupTransferCasingPreservesInputCase(t *testing.T) {
	e := buildFruitEngine(t)
	suggestions, err := e.Lookup("APLE", verbosity.Top, 2, false, true)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected a single top suggestion, got %v", suggestions)
	}
	if suggestions[0].Term == "" {
		t.Fatalf("casing-transferred term should not be empty")
	}
	for _, r := range suggestions[0].Term {
		if r >= 'a' && r <= 'z' {
			t.Fatalf("expected uppercase transfer from APLE, got %q", suggestions[0].Term)
		}
	}
}

func TestLookupEmptyDeleteIndexReturnsEmpty(t *testing.T) {
	e, _ := NewDefault()
	suggestions, err := e.Lookup("anything", verbosity.Closest, 2, false, false)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("Lookup against an empty engine should return nothing, got %v", suggestions)
	}
}
