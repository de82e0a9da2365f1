package symspell

import (
	"sort"
	"testing"
)

func TestSuggestionsSortByDistanceThenCountThenTerm(t *testing.T) {
	s := Suggestions{
		{Term: "b", Distance: 1, Count: 5},
		{Term: "a", Distance: 0, Count: 1},
		{Term: "c", Distance: 1, Count: 5},
		{Term: "d", Distance: 1, Count: 9},
	}
	sort.Sort(s)

	want := []string{"a", "d", "b", "c"}
	for i, term := range want {
		if s[i].Term != term {
			t.Fatalf("sorted[%d] = %q, want %q (got %v)", i, s[i].Term, term, s)
		}
	}
}

func TestSuggestionStringFormat(t *testing.T) {
	s := Suggestion{Term: "apple", Distance: 1, Count: 42}
	if got := s.String(); got != "{apple, 1, 42}" {
		t.Fatalf("String() = %q, want {apple, 1, 42}", got)
	}
}
