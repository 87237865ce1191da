package stv_test

import (
	"testing"

	"github.com/kryptance/stv-count-service/stv"
)

func ballots(rows ...[]string) [][]stv.Candidate {
	out := make([][]stv.Candidate, 0, len(rows))
	for _, row := range rows {
		b, err := stv.NewBallot(row)
		if err != nil {
			panic(err)
		}
		out = append(out, b)
	}
	return out
}

func repeat(n int, row []string) [][]string {
	out := make([][]string, n)
	for i := range out {
		out[i] = row
	}
	return out
}

func assertElectedOrder(t *testing.T, out stv.Outcome, want ...stv.Candidate) {
	t.Helper()
	if len(out.Elected) != len(want) {
		t.Fatalf("elected = %v, want %d candidates (%v)", out.Elected, len(want), want)
	}
	for i, w := range want {
		if out.Elected[i].Candidate != w {
			t.Errorf("elected[%d] = %s, want %s", i, out.Elected[i].Candidate, w)
		}
	}
}

// Classic fruit-ballot example: a clean surplus transfer followed by
// an election exactly at threshold.
func TestCountWikipediaExample(t *testing.T) {
	var rows [][]string
	rows = append(rows, repeat(4, []string{"Orange"})...)
	rows = append(rows, repeat(2, []string{"Pear", "Orange"})...)
	rows = append(rows, repeat(8, []string{"Chocolate", "Strawberry"})...)
	rows = append(rows, repeat(4, []string{"Chocolate", "Sweets"})...)
	rows = append(rows, repeat(1, []string{"Strawberry"})...)
	rows = append(rows, repeat(1, []string{"Sweets"})...)

	out, err := stv.Run(stv.Count{
		Ballots: ballots(rows...),
		Seats:   3,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	assertElectedOrder(t, out, "Chocolate", "Orange", "Strawberry")

	if got, want := out.Elected[0].Tally.String(), "12"; got != want {
		t.Errorf("Chocolate's tally at election = %s, want %s", got, want)
	}
	if got, want := out.Elected[1].Tally.String(), "6"; got != want {
		t.Errorf("Orange's tally at election = %s, want %s", got, want)
	}
}

// A single seat with an outright first-preference majority.
func TestCountSingleSeatMajority(t *testing.T) {
	out, err := stv.Run(stv.Count{
		Ballots: ballots(repeat(10, []string{"A", "B"})...),
		Seats:   1,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	assertElectedOrder(t, out, "A")
	if got, want := out.Elected[0].Tally.String(), "10"; got != want {
		t.Errorf("A's tally at election = %s, want %s", got, want)
	}
}

// Every hopeful gets eliminated in turn; the seat is filled by the
// zombie pass re-electing the most recently eliminated candidate.
func TestCountEliminationCascade(t *testing.T) {
	var rows [][]string
	rows = append(rows, repeat(3, []string{"A"})...)
	rows = append(rows, repeat(2, []string{"B", "C"})...)
	rows = append(rows, repeat(1, []string{"C"})...)

	out, err := stv.Run(stv.Count{
		Ballots: ballots(rows...),
		Seats:   1,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	assertElectedOrder(t, out, "A")
}

// A constituency quota blocks a second candidate from the same
// constituency even though their tally clears threshold.
func TestCountQuotaRejection(t *testing.T) {
	var rows [][]string
	rows = append(rows, repeat(12, []string{"a1", "a2"})...)
	rows = append(rows, repeat(1, []string{"a2"})...)
	rows = append(rows, repeat(2, []string{"b"})...)

	out, err := stv.Run(stv.Count{
		Ballots: ballots(rows...),
		Seats:   2,
		Constituencies: map[stv.Constituency]int{
			"X": 2,
			"Y": 1,
		},
		ConstituencyMap: map[stv.Candidate]stv.Constituency{
			"a1": "X",
			"a2": "X",
			"b":  "Y",
		},
		QuotaLimit: 1,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	foundRejected := false
	for _, r := range out.Rejected {
		if r.Candidate == "a2" {
			foundRejected = true
		}
	}
	if !foundRejected {
		t.Errorf("expected a2 to be rejected under quota, rejected = %v", out.Rejected)
	}

	foundElectedA1 := false
	for _, r := range out.Elected {
		if r.Candidate == "a1" {
			foundElectedA1 = true
		}
	}
	if !foundElectedA1 {
		t.Errorf("expected a1 to be elected, elected = %v", out.Elected)
	}
}

// An overrule callback lets a quota-blocked candidate through when
// constituencies are scarcer than seats.
func TestCountQuotaOverrule(t *testing.T) {
	var rows [][]string
	rows = append(rows, repeat(12, []string{"a1", "a2"})...)
	rows = append(rows, repeat(1, []string{"a2"})...)
	rows = append(rows, repeat(2, []string{"b"})...)

	overrule := &stv.OverruleQuotaCallback{
		Inner:          stv.DefaultQuotaCallback{QuotaLimit: 1},
		Seats:          3,
		Constituencies: 2,
	}

	out, err := stv.Run(stv.Count{
		Ballots: ballots(rows...),
		Seats:   3,
		Constituencies: map[stv.Constituency]int{
			"X": 2,
			"Y": 1,
		},
		ConstituencyMap: map[stv.Candidate]stv.Constituency{
			"a1": "X",
			"a2": "X",
			"b":  "Y",
		},
		QuotaLimit:    1,
		QuotaCallback: overrule,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	foundElectedA2 := false
	for _, r := range out.Elected {
		if r.Candidate == "a2" {
			foundElectedA2 = true
		}
	}
	if !foundElectedA2 {
		t.Errorf("expected a2 to be elected under overrule, elected = %v", out.Elected)
	}

	foundComment := false
	for _, rec := range out.Log {
		if rec.Tag == stv.TagComment {
			foundComment = true
		}
	}
	if !foundComment {
		t.Errorf("expected a COMMENT record in the log, log = %v", out.Log)
	}
}

// roundRobinConfig returns a count where "w" is the only candidate that
// ever appears on a ballot (and is elected outright in round 1); x, y,
// and z never appear on a ballot at all, so the three remaining seats
// can only be filled by the round-robin filler cycling across their
// (otherwise orphan) constituencies.
func roundRobinConfig(seed *uint64) stv.Count {
	return stv.Count{
		Ballots: ballots([][]string{{"w"}}...),
		Seats:   4,
		Constituencies: map[stv.Constituency]int{
			"Big":    100,
			"Small1": 50,
			"Small2": 50,
		},
		ConstituencyMap: map[stv.Candidate]stv.Constituency{
			"x": "Big",
			"y": "Small1",
			"z": "Small2",
		},
		Seed: seed,
	}
}

func electionIndex(out stv.Outcome, c stv.Candidate) int {
	for i, r := range out.Elected {
		if r.Candidate == c {
			return i
		}
	}
	return -1
}

// Orphan constituencies get filled round-robin, largest first, when
// seats remain after the main loop runs dry.
func TestCountRoundRobinFiller(t *testing.T) {
	seed := uint64(42)
	out, err := stv.Run(roundRobinConfig(&seed))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(out.Elected) != 4 {
		t.Fatalf("elected = %v, want 4 candidates", out.Elected)
	}

	xi, yi, zi := electionIndex(out, "x"), electionIndex(out, "y"), electionIndex(out, "z")
	if xi < 0 || yi < 0 || zi < 0 {
		t.Fatalf("expected x, y, and z all elected via round-robin, elected = %v", out.Elected)
	}
	if xi > yi || xi > zi {
		t.Errorf("expected x (the size-100 constituency) to be filled before the size-50 ones, elected = %v", out.Elected)
	}
}

func TestCountDeterministicWithSeed(t *testing.T) {
	cfg := func() stv.Count {
		seed := uint64(7)
		return roundRobinConfig(&seed)
	}

	out1, err := stv.Run(cfg())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out2, err := stv.Run(cfg())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(out1.Log) != len(out2.Log) {
		t.Fatalf("log lengths differ: %d vs %d", len(out1.Log), len(out2.Log))
	}
	for i := range out1.Log {
		if out1.Log[i] != out2.Log[i] {
			t.Errorf("log[%d] differs: %v vs %v", i, out1.Log[i], out2.Log[i])
		}
	}
}
