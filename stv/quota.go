package stv

// QuotaCallback decides whether an election would exceed a
// per-constituency quota. It returns true when the candidate's election
// must be blocked. A callback that cannot reach a decision returns a
// non-nil error, which aborts the whole count with ErrQuotaCallbackFailure.
type QuotaCallback interface {
	Exceeded(candidate Candidate, constituencyOf map[Candidate]Constituency, electedPerConstituency ElectedPerConstituency) (bool, error)
}

// DefaultQuotaCallback implements the default policy: a
// candidate's constituency has exceeded the quota once it has already
// elected quotaLimit candidates.
type DefaultQuotaCallback struct {
	QuotaLimit int
}

// Exceeded reports whether candidate's constituency has already reached
// QuotaLimit elected candidates.
func (d DefaultQuotaCallback) Exceeded(candidate Candidate, constituencyOf map[Candidate]Constituency, electedPerConstituency ElectedPerConstituency) (bool, error) {
	c, ok := constituencyOf[candidate]
	if !ok {
		return false, nil
	}
	return electedPerConstituency[c] >= d.QuotaLimit, nil
}

// OverruleQuotaCallback wraps another QuotaCallback and overrules a
// quota-exceeded verdict when the number of constituencies is smaller
// than the number of seats, consuming one unit of an overrule budget of
// seats-len(constituencies) per overrule and emitting a COMMENT record.
// It is grounded on original_source/quota_callback_fewer_constituencies.py's
// QuotaCallback class, which decorates DefaultQuotaCallback the same
// way.
//
// Overruled is not reset between calls for the lifetime of the
// callback. Whether that is the right lifetime for overruled state is
// arguable, but a callback is constructed fresh for each Count call in
// normal use, so it rarely matters in practice.
type OverruleQuotaCallback struct {
	Inner          QuotaCallback
	Seats          int
	Constituencies int
	// Logger is set by Run to the same sink collecting the rest of a
	// count's audit trail; leaving it unset drops COMMENT records
	// instead of panicking on a nil Logger.
	Logger Logger

	overruled int
}

// Exceeded defers to Inner; if Inner reports the quota exceeded and the
// overrule budget (Seats - Constituencies) has not been exhausted, the
// verdict is overruled once and a COMMENT record is emitted.
func (o *OverruleQuotaCallback) Exceeded(candidate Candidate, constituencyOf map[Candidate]Constituency, electedPerConstituency ElectedPerConstituency) (bool, error) {
	exceeded, err := o.Inner.Exceeded(candidate, constituencyOf, electedPerConstituency)
	if err != nil {
		return false, err
	}
	if !exceeded {
		return false, nil
	}

	budget := o.Seats - o.Constituencies
	if budget > 0 && o.overruled < budget {
		o.overruled++
		logf(o.Logger, TagComment, "Quota overruled. Constituencies fewer than seats.")
		return false, nil
	}
	return true, nil
}

// electOrReject elects or rejects candidate. If a quota limit is in effect and
// candidate belongs to a known constituency, the configured quota
// callback decides whether the election is blocked.
func electOrReject(candidate Candidate, round int, tally Tally, constituencyOf map[Candidate]Constituency, electedPerConstituency ElectedPerConstituency, quotaLimit int, callback QuotaCallback, elected, rejected *[]Result, logger Logger) (bool, error) {
	quotaExceeded := false
	if quotaLimit > 0 {
		if _, known := constituencyOf[candidate]; known {
			var err error
			quotaExceeded, err = callback.Exceeded(candidate, constituencyOf, electedPerConstituency)
			if err != nil {
				return false, MessageErrorf(ErrQuotaCallbackFailure, "quota callback for %s: %v", candidate, err)
			}
		}
	}

	if quotaExceeded {
		c := constituencyOf[candidate]
		*rejected = append(*rejected, Result{Candidate: candidate, Round: round, Tally: tally[candidate]})
		logf(logger, TagQuota, "%s %s %d >= %d", candidate, c, electedPerConstituency[c], quotaLimit)
		return false, nil
	}

	*elected = append(*elected, Result{Candidate: candidate, Round: round, Tally: tally[candidate]})
	if c, known := constituencyOf[candidate]; known {
		electedPerConstituency[c]++
	}
	logf(logger, TagElect, "%s = %s", candidate, tally[candidate].String())
	return true, nil
}
