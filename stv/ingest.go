package stv

// NewBallot validates a ballot's preference list and returns it as the
// []Candidate shape Count.Ballots expects. It is a pure convenience for
// an ingestion collaborator that has already split a CSV row into
// fields. It performs no I/O of its own.
func NewBallot(names []string) ([]Candidate, error) {
	if len(names) == 0 {
		return nil, NewMessageError(ErrMalformedBallot, "ballot has an empty preference list")
	}
	out := make([]Candidate, len(names))
	for i, n := range names {
		out[i] = Candidate(n)
	}
	return out, nil
}

// BuildConstituencyMap turns parsed constituency CSV rows — each of the
// form name,size,cand1,cand2,... — into the constituencies
// and constituency-map inputs Count expects. Because every candidate
// row names its own constituency, the result can never reference an
// unknown constituency.
func BuildConstituencyMap(rows [][]string) (map[Constituency]int, map[Candidate]Constituency, error) {
	constituencies := make(map[Constituency]int, len(rows))
	constituencyOf := make(map[Candidate]Constituency)

	for i, row := range rows {
		if len(row) < 2 {
			return nil, nil, MessageErrorf(ErrMalformedBallot, "constituency row %d has no name/size", i)
		}

		name := Constituency(row[0])
		size, err := parsePositiveInt(row[1])
		if err != nil {
			return nil, nil, MessageErrorf(ErrMalformedBallot, "constituency row %d: %v", i, err)
		}

		constituencies[name] = size
		for _, c := range row[2:] {
			constituencyOf[Candidate(c)] = name
		}
	}

	return constituencies, constituencyOf, nil
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, NewMessageError(ErrMalformedBallot, "empty size field")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, MessageErrorf(ErrMalformedBallot, "invalid size %q", s)
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return 0, MessageErrorf(ErrMalformedBallot, "size must be positive, got %q", s)
	}
	return n, nil
}
