/*
aggregate.go - Folding day collections into totals and distributions

PURPOSE:
  Turns the full day collection into the figures summaries and charts
  consume: overall and per-month signed totals, negative-only restrictions,
  and the positive-only monthly distribution.

AGGREGATION RULES:
  - Every day goes through CalculateOvertime with the full flag set, so
    ignored and did-not-work days contribute exactly what the evaluation
    order says (0 and -480 respectively).
  - The negative-only sums count days whose computed overtime is strictly
    negative; zero and positive days contribute nothing to them.
  - The monthly distribution sums only strictly-positive per-day overtime.
    A month whose positive sum is zero is omitted entirely, even when it
    holds negative or zero days.

Sums are commutative, so aggregation is order-independent; sorting exists
for presentation only.
*/
package overtime

import "sort"

// Summarize folds the collection into the four summary figures. The month
// figures are restricted to days whose month key equals selectedMonth.
func Summarize(days []Day, selectedMonth string, toleranceEnabled bool) Summary {
	var s Summary
	for _, d := range days {
		minutes := d.Balance(toleranceEnabled)
		s.TotalMinutes += minutes
		if minutes < 0 {
			s.TotalNegativeMinutes += minutes
		}
		if YearMonth(d.Date) == selectedMonth {
			s.MonthMinutes += minutes
			if minutes < 0 {
				s.MonthNegativeMinutes += minutes
			}
		}
	}
	return s
}

// MonthlyDistribution groups days by month key and sums strictly-positive
// per-day overtime into each month's bucket. Months with no positive
// contribution are omitted. Entries are ordered by ascending month key.
func MonthlyDistribution(days []Day, toleranceEnabled bool) []MonthlyPoint {
	buckets := make(map[string]int)
	for _, d := range days {
		key := YearMonth(d.Date)
		if key == "" {
			continue
		}
		if minutes := d.Balance(toleranceEnabled); minutes > 0 {
			buckets[key] += minutes
		}
	}

	points := make([]MonthlyPoint, 0, len(buckets))
	for key, minutes := range buckets {
		points = append(points, MonthlyPoint{
			Key:       key,
			Label:     FormatYearMonth(key),
			Minutes:   minutes,
			Formatted: FormatMinutesToHHMM(minutes),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Key < points[j].Key })
	return points
}

// SortedByDate returns a copy of days ordered by ascending date string.
// Lexicographic order is correct for the fixed-width "YYYY-MM-DD" format.
func SortedByDate(days []Day) []Day {
	sorted := make([]Day, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	return sorted
}

// FilterMonth returns the days whose month key equals the given key,
// preserving order.
func FilterMonth(days []Day, yearMonth string) []Day {
	var filtered []Day
	for _, d := range days {
		if YearMonth(d.Date) == yearMonth {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// DateCounts counts occurrences of each date string. Any date occurring more
// than once is flagged for presentation; duplicates stay editable and still
// aggregate normally.
func DateCounts(days []Day) map[string]int {
	counts := make(map[string]int, len(days))
	for _, d := range days {
		counts[d.Date]++
	}
	return counts
}

// AvailableMonths returns the sorted unique month keys present in the
// collection (the month selector's source). Empty keys are skipped.
func AvailableMonths(days []Day) []string {
	seen := make(map[string]bool)
	var months []string
	for _, d := range days {
		key := YearMonth(d.Date)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		months = append(months, key)
	}
	sort.Strings(months)
	return months
}
