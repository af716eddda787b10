package availability

// Interval is a half-open range [Start, End) in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether i and o share any minute. Touching intervals
// such as [600,660) and [660,720) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

// Split cuts i into consecutive step-sized intervals starting at i.Start.
// A trailing remainder shorter than step is dropped.
func (i Interval) Split(step int) []Interval {
	if step <= 0 {
		return nil
	}
	var parts []Interval
	for s := i.Start; s+step <= i.End; s += step {
		parts = append(parts, Interval{Start: s, End: s + step})
	}
	return parts
}

func overlapsAny(candidate Interval, blocked []Interval) bool {
	for _, b := range blocked {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
