package stv

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// orphan is a constituency with no elected candidates yet, paired with
// its size for the descending-size sort below.
type orphan struct {
	constituency Constituency
	size         int
}

// roundRobinFill fills any seats still open once the main loop runs
// out of hopefuls, cycling through constituencies that elected nobody.
// It is invoked once, after the
// main loop, if seats remain unfilled.
func roundRobinFill(cfg Count, tally Tally, electedPerConstituency ElectedPerConstituency, quotaCallback QuotaCallback, elected, rejected *[]Result, round *int, rs *randomness, logger Logger) error {
	var orphans []orphan
	for c, size := range cfg.Constituencies {
		if electedPerConstituency[c] == 0 {
			orphans = append(orphans, orphan{constituency: c, size: size})
		}
	}
	if len(orphans) == 0 {
		return nil
	}
	// Map iteration order varies between runs; fix a name order first so
	// the seeded shuffle below is reproducible.
	slices.SortFunc(orphans, func(a, b orphan) int {
		return cmp.Compare(a.constituency, b.constituency)
	})

	stableShuffleSort(
		orphans,
		func(o orphan) decimal.Decimal { return decimal.NewFromInt(int64(o.size)) },
		true,
		func(o orphan) string { return fmt.Sprintf("(%s, %d)", o.constituency, o.size) },
		rs,
		logger,
	)

	candidatesByConstituency := make(map[Constituency][]Candidate, len(orphans))
	remaining := 0
	for _, o := range orphans {
		var cands []Candidate
		for candidate, c := range cfg.ConstituencyMap {
			if c == o.constituency {
				cands = append(cands, candidate)
			}
		}
		slices.Sort(cands)
		slices.SortStableFunc(cands, func(a, b Candidate) int {
			return tally[b].Cmp(tally[a])
		})
		candidatesByConstituency[o.constituency] = cands
		remaining += len(cands)
	}

	desc := make([]string, len(orphans))
	for i, o := range orphans {
		desc[i] = fmt.Sprintf("(%s, %d)", o.constituency, o.size)
	}
	logf(logger, TagRoundRobin, "%v", desc)

	turn := 0
	for cfg.Seats-len(*elected) > 0 && remaining > 0 {
		o := orphans[turn]
		cands := candidatesByConstituency[o.constituency]
		logf(logger, TagConstituencyTurn, "%s %v", o.constituency, candidateTallies(cands, tally))

		if len(cands) > 0 {
			best := selectFirstWithTies(cands, tallyKey(tally), TagElect, candidateDescribe, rs, logger)
			candidatesByConstituency[o.constituency] = removeCandidate(cands, best)
			remaining--

			if _, err := electOrReject(best, *round, tally, cfg.ConstituencyMap, electedPerConstituency, cfg.QuotaLimit, quotaCallback, elected, rejected, logger); err != nil {
				return err
			}
		}

		turn = (turn + 1) % len(orphans)
	}
	return nil
}

func candidateTallies(cands []Candidate, tally Tally) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = fmt.Sprintf("(%s, %s)", c, tally[c].String())
	}
	return out
}
