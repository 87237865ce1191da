package stv

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Run validates cfg and performs a full STV count, returning the
// elected/rejected sequences, the final tally, and the complete audit
// log. It is a pure function of cfg: no goroutines are spawned and no
// process-global state is touched.
func Run(cfg Count) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("stv: internal invariant violated: %v", r)
		}
	}()

	if err := validate(cfg); err != nil {
		return Outcome{}, err
	}

	logger := Logger(&SliceLogger{})
	sl := logger.(*SliceLogger)

	rs := newRandomness(cfg.Seed, logger)

	tally := make(Tally)
	allocation := make(Allocation)
	electedPerConstituency := make(ElectedPerConstituency)

	for c := range cfg.Constituencies {
		electedPerConstituency[c] = 0
	}
	for candidate := range cfg.ConstituencyMap {
		if _, ok := tally[candidate]; !ok {
			tally[candidate] = decimal.Zero
			allocation[candidate] = nil
		}
	}

	threshold := len(cfg.Ballots)/(cfg.Seats+1) + 1
	logf(logger, TagThreshold, "%d", threshold)

	var candidateOrder []Candidate
	knownCandidate := make(map[Candidate]bool)

	for _, names := range cfg.Ballots {
		b := &Ballot{Candidates: names, CurrentHolder: 0, Value: decimal.NewFromInt(1)}

		for _, c := range names {
			if !knownCandidate[c] {
				knownCandidate[c] = true
				candidateOrder = append(candidateOrder, c)
				tally[c] = decimal.Zero
			}
		}

		first := b.holder()
		allocation[first] = append(allocation[first], b)
		tally[first] = tally[first].Add(decimal.NewFromInt(1))
	}

	hopefuls := make([]Candidate, len(candidateOrder))
	copy(hopefuls, candidateOrder)
	hopefulSet := make(map[Candidate]bool, len(hopefuls))
	for _, c := range hopefuls {
		hopefulSet[c] = true
	}

	quotaCallback := cfg.QuotaCallback
	if quotaCallback == nil {
		quotaCallback = DefaultQuotaCallback{QuotaLimit: cfg.QuotaLimit}
	}
	if oc, ok := quotaCallback.(*OverruleQuotaCallback); ok {
		oc.Logger = logger
	}

	var elected, rejected []Result
	var eliminated []Candidate
	round := 1

	for len(elected) < cfg.Seats && len(hopefuls) > 0 {
		logf(logger, TagRound, "%d", round)
		logf(logger, TagCount, "%s", countDescription(tally, hopefuls))

		sorted := make([]Candidate, len(hopefuls))
		copy(sorted, hopefuls)
		sortByTally(sorted, tally, true)

		surplus := tally[sorted[0]].Sub(decimal.NewFromInt(int64(threshold)))

		if surplus.Sign() >= 0 {
			best := selectFirstWithTies(sorted, tallyKey(tally), TagElect, candidateDescribe, rs, logger)
			hopefuls = removeCandidate(hopefuls, best)
			delete(hopefulSet, best)

			wasElected, err := electOrReject(best, round, tally, cfg.ConstituencyMap, electedPerConstituency, cfg.QuotaLimit, quotaCallback, &elected, &rejected, logger)
			if err != nil {
				return Outcome{}, err
			}

			switch {
			case !wasElected:
				redistribute(best, decimal.NewFromInt(1), hopefulSet, allocation, tally, logger)
			case surplus.Sign() > 0:
				weight := surplus.Div(tally[best])
				redistribute(best, weight, hopefulSet, allocation, tally, logger)
			}
		} else {
			worstOrder := make([]Candidate, len(sorted))
			copy(worstOrder, sorted)
			reverseCandidates(worstOrder)

			worst := selectFirstWithTies(worstOrder, tallyKey(tally), TagEliminate, candidateDescribe, rs, logger)
			hopefuls = removeCandidate(hopefuls, worst)
			delete(hopefulSet, worst)
			eliminated = append(eliminated, worst)

			logf(logger, TagEliminate, "%s = %s", worst, tally[worst].String())
			redistribute(worst, decimal.NewFromInt(1), hopefulSet, allocation, tally, logger)
		}

		round++
	}

	if cfg.Seats-len(elected) > 0 {
		if err := roundRobinFill(cfg, tally, electedPerConstituency, quotaCallback, &elected, &rejected, &round, rs, logger); err != nil {
			return Outcome{}, err
		}
	}

	if err := zombiePass(cfg, tally, electedPerConstituency, quotaCallback, eliminated, &elected, &rejected, &round, logger); err != nil {
		return Outcome{}, err
	}

	return Outcome{Elected: elected, Rejected: rejected, Tally: tally, Log: sl.Records}, nil
}

func validate(cfg Count) error {
	if len(cfg.Ballots) == 0 {
		return NewMessageError(ErrEmptyBallots, "no ballots were supplied")
	}
	if cfg.Seats <= 0 {
		return MessageErrorf(ErrInvalidSeats, "seats must be positive, got %d", cfg.Seats)
	}
	for i, b := range cfg.Ballots {
		if len(b) == 0 {
			return MessageErrorf(ErrMalformedBallot, "ballot %d has an empty preference list", i)
		}
	}
	for candidate, constituency := range cfg.ConstituencyMap {
		if _, ok := cfg.Constituencies[constituency]; !ok {
			return MessageErrorf(ErrUnknownConstituencyReference, "candidate %s references unknown constituency %s", candidate, constituency)
		}
	}

	seen := make(map[Candidate]bool)
	for _, b := range cfg.Ballots {
		for _, c := range b {
			seen[c] = true
		}
	}
	for c := range cfg.ConstituencyMap {
		seen[c] = true
	}
	if cfg.Seats > len(seen) {
		return MessageErrorf(ErrInvalidSeats, "seats (%d) exceeds the number of candidates (%d)", cfg.Seats, len(seen))
	}

	return nil
}

func tallyKey(tally Tally) func(Candidate) decimal.Decimal {
	return func(c Candidate) decimal.Decimal { return tally[c] }
}

func candidateDescribe(c Candidate) string {
	return string(c)
}

func sortByTally(candidates []Candidate, tally Tally, descending bool) {
	key := tallyKey(tally)
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		cmp := key(a).Cmp(key(b))
		if descending {
			return -cmp
		}
		return cmp
	})
}

func removeCandidate(s []Candidate, c Candidate) []Candidate {
	out := make([]Candidate, 0, len(s))
	for _, x := range s {
		if x != c {
			out = append(out, x)
		}
	}
	return out
}

func reverseCandidates(s []Candidate) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
