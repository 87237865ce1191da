package stv

import "github.com/shopspring/decimal"

// Candidate is an opaque identity token. Names are unique within an
// election.
type Candidate string

// Constituency is an opaque identity token with an integer size (the
// number of voters entitled to the constituency's seats).
type Constituency string

// Ballot is an ordered preference list of candidates (front = most
// preferred), the index of the candidate currently holding it, and the
// accumulated fractional value of the ballot (the product of every
// transfer weight applied so far).
//
// Ballots are heap-allocated once during the initial count and referenced
// by pointer everywhere else; the allocation map never copies a Ballot
// by value, so there is exactly one mutable copy of each ballot's state
// at any time.
type Ballot struct {
	Candidates    []Candidate
	CurrentHolder int
	Value         decimal.Decimal
}

// holder returns the candidate currently holding the ballot.
func (b *Ballot) holder() Candidate {
	return b.Candidates[b.CurrentHolder]
}

// Tally maps a candidate to its current accumulated vote total.
type Tally map[Candidate]decimal.Decimal

// Allocation maps a candidate to the ordered sequence of ballots it
// currently holds. Order is insertion order within each candidate.
type Allocation map[Candidate][]*Ballot

// ElectedPerConstituency maps a constituency to the number of its
// candidates elected so far. It holds one entry per known
// constituency, even when that count is zero.
type ElectedPerConstituency map[Constituency]int

// Result is one entry in the elected or rejected sequence: the
// candidate, the round in which the event happened, and the candidate's
// tally at that moment.
type Result struct {
	Candidate Candidate
	Round     int
	Tally     decimal.Decimal
}

// Count bundles every input to a count: the ballots, the number of
// seats to fill, the known constituencies and their sizes, the partial
// candidate-to-constituency map, the quota limit (0 disables it), the
// quota callback to apply when the limit is in effect, and an optional
// PRNG seed.
type Count struct {
	Ballots         [][]Candidate
	Seats           int
	Constituencies  map[Constituency]int
	ConstituencyMap map[Candidate]Constituency
	QuotaLimit      int
	QuotaCallback   QuotaCallback
	Seed            *uint64
}

// Outcome is everything a completed count produces: the elected and
// rejected sequences in the order events occurred, the final tally, and
// the full audit log.
type Outcome struct {
	Elected  []Result
	Rejected []Result
	Tally    Tally
	Log      []Record
}
