package schedule

// UniqueDates returns the distinct dates present in entries, preserving
// first-seen order so repeated calls over the same snapshot render identically.
func UniqueDates(entries []Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	var dates []string
	for _, e := range entries {
		if _, ok := seen[e.Date]; ok {
			continue
		}
		seen[e.Date] = struct{}{}
		dates = append(dates, e.Date)
	}
	return dates
}

// EntriesForDate returns the entries whose Date equals date, preserving their
// relative order from the source snapshot. An empty snapshot yields nil.
func EntriesForDate(entries []Entry, date string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}
