package symspell

import "fmt"

// Suggestion is a single spelling-correction candidate: a dictionary
// term, its edit distance from the query, and its dictionary count.
type Suggestion struct {
	Term     string
	Distance int
	Count    int64
}

// String implements fmt.Stringer.
func (s Suggestion) String() string {
	return fmt.Sprintf("{%s, %d, %d}", s.Term, s.Distance, s.Count)
}

// Suggestions is an ordered result set. Its sort order is distance
// ascending, then count descending, then term lexicographic ascending.
type Suggestions []Suggestion

// Len implements sort.Interface.
func (s Suggestions) Len() int { return len(s) }

// Swap implements sort.Interface.
func (s Suggestions) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Less implements sort.Interface: distance asc, count desc, term asc.
func (s Suggestions) Less(i, j int) bool {
	if s[i].Distance != s[j].Distance {
		return s[i].Distance < s[j].Distance
	}
	if s[i].Count != s[j].Count {
		return s[i].Count > s[j].Count
	}
	return s[i].Term < s[j].Term
}
