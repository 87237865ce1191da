package stv

import "github.com/shopspring/decimal"

// moveKey identifies a batch of ballots that moved between the same two
// candidates at the same post-multiplication value, so their tally
// delta and audit record can be computed and emitted together (spec
// §4.4: "these two updates must be batched per key so the audit record
// and the tally delta agree bit-for-bit").
type moveKey struct {
	from  Candidate
	to    Candidate
	value string // decimal.Decimal is not comparable as a map key; its
	// canonical string form is.
}

// redistribute scans every ballot currently
// held by selected for the first next preference that is a member of
// hopefuls, advances that ballot to its new holder at the given weight,
// and batches the resulting tally deltas by (from, to, value) before
// applying them and emitting one TRANSFER record per batch.
//
// Ballots that find no hopeful next preference are exhausted; like
// transferred ballots, they are removed from selected's allocation once
// the scan completes: an allocation map holds only non-exhausted
// ballots.
func redistribute(selected Candidate, weight decimal.Decimal, hopefuls map[Candidate]bool, allocation Allocation, tally Tally, logger Logger) {
	moves := make(map[moveKey][]*Ballot)
	var keyOrder []moveKey

	for _, ballot := range allocation[selected] {
		for i := ballot.CurrentHolder + 1; i < len(ballot.Candidates); i++ {
			recipient := ballot.Candidates[i]
			if !hopefuls[recipient] {
				continue
			}

			ballot.CurrentHolder = i
			ballot.Value = ballot.Value.Mul(weight)
			allocation[recipient] = append(allocation[recipient], ballot)

			k := moveKey{from: selected, to: recipient, value: ballot.Value.String()}
			if _, seen := moves[k]; !seen {
				keyOrder = append(keyOrder, k)
			}
			moves[k] = append(moves[k], ballot)
			break
		}
	}

	for _, k := range keyOrder {
		batch := moves[k]
		value, _ := decimal.NewFromString(k.value)
		total := roundSignificant(value.Mul(decimal.NewFromInt(int64(len(batch)))), 15)

		tally[k.to] = tally[k.to].Add(total)
		tally[k.from] = tally[k.from].Sub(total)

		logf(logger, TagTransfer, "from %s to %s %d*%s = %s", k.from, k.to, len(batch), value.String(), total.String())
	}

	// Every ballot that was held by selected either moved to a hopeful
	// recipient above or found none and is now exhausted. Either way it
	// no longer belongs to selected's allocation: the allocation map
	// holds only non-exhausted ballots.
	delete(allocation, selected)
}
