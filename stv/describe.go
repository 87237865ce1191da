package stv

import (
	"sort"
	"strings"
)

// countDescription builds a semicolon-joined "C = v"
// string for each candidate, sorted primarily by vote descending and
// secondarily by candidate name ascending. It is used only for audit
// records, never for control flow.
func countDescription(tally Tally, candidates []Candidate) string {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		cmp := tally[b].Cmp(tally[a])
		if cmp != 0 {
			return cmp < 0
		}
		return a < b
	})

	var b strings.Builder
	for i, c := range sorted {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(string(c))
		b.WriteString(" = ")
		b.WriteString(tally[c].String())
	}
	return b.String()
}
