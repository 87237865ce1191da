package stv

import (
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// selectFirstWithTies resolves a tie for first place deterministically.
// sorted must be non-empty and already sorted by key (direction is
// irrelevant to this function). It collects the maximal prefix of items
// sharing key(sorted[0]); if that prefix has length 1 it is returned
// with no side effect, otherwise an index is drawn from rs and a RANDOM
// record is emitted naming the pick, the tied set, and actionTag.
func selectFirstWithTies[T any](sorted []T, key func(T) decimal.Decimal, actionTag Tag, describe func(T) string, rs *randomness, logger Logger) T {
	first := key(sorted[0])
	var tied []T
	for _, item := range sorted {
		if !key(item).Equal(first) {
			break
		}
		tied = append(tied, item)
	}

	if len(tied) == 1 {
		return tied[0]
	}

	idx := int(math.Floor(rs.float64() * float64(len(tied))))
	if idx >= len(tied) {
		idx = len(tied) - 1
	}
	selected := tied[idx]

	descs := make([]string, len(tied))
	for i, item := range tied {
		descs[i] = describe(item)
	}
	logf(logger, TagRandom, "%s from %v to %s", describe(selected), descs, actionTag)

	return selected
}

// stableShuffleSort randomizes order among equal keys before a stable
// sort settles it back down. It
// emits the pre-shuffle sequence, shuffles in place via the randomness
// service, emits the post-shuffle sequence, then performs a stable sort
// by key (ascending, or descending when reverse is true) and emits the
// sorted result.
func stableShuffleSort[T any](seq []T, key func(T) decimal.Decimal, reverse bool, describe func(T) string, rs *randomness, logger Logger) {
	logf(logger, TagShuffle, "%s", describeAll(seq, describe))

	rs.shuffle(len(seq), func(i, j int) {
		seq[i], seq[j] = seq[j], seq[i]
	})

	logf(logger, TagShuffle, "%s", describeAll(seq, describe))

	slices.SortStableFunc(seq, func(a, b T) int {
		cmp := key(a).Cmp(key(b))
		if reverse {
			return -cmp
		}
		return cmp
	})

	logf(logger, TagSort, "%s", describeAll(seq, describe))
}

func describeAll[T any](seq []T, describe func(T) string) string {
	out := make([]string, len(seq))
	for i, item := range seq {
		out[i] = describe(item)
	}
	return fmt.Sprintf("%v", out)
}
