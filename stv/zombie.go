package stv

// zombiePass runs last: if seats still remain after the
// round-robin filler and candidates were eliminated during the main
// loop, elect from the eliminated list in reverse elimination order —
// the last eliminated had the most support at the moment it left.
func zombiePass(cfg Count, tally Tally, electedPerConstituency ElectedPerConstituency, quotaCallback QuotaCallback, eliminated []Candidate, elected, rejected *[]Result, round *int, logger Logger) error {
	for cfg.Seats-len(*elected) > 0 && len(eliminated) > 0 {
		logf(logger, TagRound, "%d", *round)
		logf(logger, TagZombies, "%s", countDescription(tally, eliminated))

		best := eliminated[len(eliminated)-1]
		eliminated = eliminated[:len(eliminated)-1]

		if _, err := electOrReject(best, *round, tally, cfg.ConstituencyMap, electedPerConstituency, cfg.QuotaLimit, quotaCallback, elected, rejected, logger); err != nil {
			return err
		}

		*round++
	}
	return nil
}
