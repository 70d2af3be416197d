package internal

import "math"

// ClampRange brings [start, end] inside a session of n samples. Inverted
// bounds are swapped and an empty range is widened by one sample, so for
// n >= 2 the result always satisfies 0 <= start < end <= n-1.
func ClampRange(n, start, end int) (int, int) {
	if n <= 1 {
		return 0, n - 1
	}
	last := n - 1
	start = clampInt(start, 0, last)
	end = clampInt(end, 0, last)
	if start > end {
		start, end = end, start
	}
	if start == end {
		if end < last {
			end++
		} else {
			start--
		}
	}
	return start, end
}

// RangeFromPercent maps slider positions on a 0-100 scale to sample indices
func RangeFromPercent(n int, from, to float64) (int, int) {
	if n <= 1 {
		return 0, n - 1
	}
	last := n - 1
	from = clampFloat(from, 0, 100)
	to = clampFloat(to, 0, 100)
	start := clampInt(int(from/100*float64(last)), 0, last)
	end := max(start+1, min(int(to/100*float64(last)), last))
	return ClampRange(n, start, end)
}

// FilterRange returns a copy of rows [start, end] (inclusive) re-indexed from
// zero. Out-of-bounds or inverted indices are clamped, never rejected.
func FilterRange(s *Session, start, end int) *Session {
	n := s.Len()
	start, end = ClampRange(n, start, end)
	var t *Table
	if n == 0 {
		t = NewTable(0)
		if s.Table != nil {
			t = s.Table.Clone()
		}
	} else {
		t = s.Table.Slice(start, end+1)
	}
	if start < 0 {
		start = 0
	}
	return &Session{
		ID:     s.ID,
		Start:  s.Start,
		Offset: s.Offset + start,
		Table:  t,
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
