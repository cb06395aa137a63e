package booking

import "time"

// Occurrences lists the dates in [from, to] on which a template with the
// given frequency and anchor date recurs. Weekly templates recur on every
// anchor weekday. Monthly templates recur on the same weekday occurrence
// as the anchor ("2nd Tuesday"); months without that occurrence are
// skipped.
func Occurrences(freq Frequency, anchor, from, to time.Time) []time.Time {
	anchor = dateOnly(anchor)
	from = dateOnly(from)
	to = dateOnly(to)
	if from.Before(anchor) {
		from = anchor
	}
	if to.Before(from) {
		return nil
	}

	var out []time.Time
	switch freq {
	case FrequencyWeekly:
		d := from
		for d.Weekday() != anchor.Weekday() {
			d = d.AddDate(0, 0, 1)
		}
		for ; !d.After(to); d = d.AddDate(0, 0, 7) {
			out = append(out, d)
		}

	case FrequencyMonthly:
		nth := (anchor.Day()-1)/7 + 1
		month := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
		for !month.After(to) {
			if d, ok := nthWeekday(month, anchor.Weekday(), nth); ok && !d.Before(from) && !d.After(to) {
				out = append(out, d)
			}
			month = month.AddDate(0, 1, 0)
		}
	}
	return out
}

func nthWeekday(month time.Time, wd time.Weekday, nth int) (time.Time, bool) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	d := first.AddDate(0, 0, offset+(nth-1)*7)
	if d.Month() != first.Month() {
		return time.Time{}, false
	}
	return d, true
}

// NextWeekday returns d itself when it falls on wd, otherwise the next wd.
func NextWeekday(d time.Time, wd time.Weekday) time.Time {
	d = dateOnly(d)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
