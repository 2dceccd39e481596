package shareentry

import "errors"

// ErrRangeNotHeld indicates a carve request outside the entry's numbered range
var ErrRangeNotHeld = errors.New("requested share range is not covered by this entry")

// Range is a contiguous inclusive span of share numbers
type Range struct {
	From int64
	To   int64
}

// Count returns the number of shares in the range
func (r Range) Count() int64 {
	return r.To - r.From + 1
}

// Carve splits an entry's numbered range around the requested [from, to] span.
// It returns the consumed span and the zero, one or two remainder spans the
// source holder keeps (a head below the carve, a tail above it). Every
// transfer, redemption and split expresses itself in terms of Carve plus
// entry creation, so the splitting arithmetic lives in one place.
func Carve(e *Entry, from, to int64) (Range, []Range, error) {
	if !e.Contains(from, to) {
		return Range{}, nil, ErrRangeNotHeld
	}

	consumed := Range{From: from, To: to}

	var remainders []Range
	if from > e.ShareNumberFrom {
		remainders = append(remainders, Range{From: e.ShareNumberFrom, To: from - 1})
	}
	if to < e.ShareNumberTo {
		remainders = append(remainders, Range{From: to + 1, To: e.ShareNumberTo})
	}

	return consumed, remainders, nil
}
