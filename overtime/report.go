/*
report.go - Computed rows and totals for report rendering

PURPOSE:
  The engine does not render reports; it supplies a rendering collaborator
  (PDF, CSV, whatever the host wires) with already-computed per-day rows and
  summary totals. Two variants exist: one month in per-day detail, and an
  all-time report with one row per month.

  Empty selections are not errors: they produce zero rows and zero totals.
*/
package overtime

import "sort"

// ReportRow is one per-day line of the monthly report. Clock times are the
// resolved values (canonical defaults applied), matching what the balance
// was computed from.
type ReportRow struct {
	Date       string `json:"date"`
	Holiday    bool   `json:"holiday"`
	Ignored    bool   `json:"ignored"`
	DidNotWork bool   `json:"didNotWork"`
	Entrada1   string `json:"entrada1"`
	Saida1     string `json:"saida1"`
	Entrada2   string `json:"entrada2"`
	Saida2     string `json:"saida2"`
	Minutes    int    `json:"minutes"`
	Balance    string `json:"balance"`
}

// ReportTotals carries the three summary figures of a report section.
type ReportTotals struct {
	PositiveMinutes int    `json:"positiveMinutes"`
	NegativeMinutes int    `json:"negativeMinutes"`
	NetMinutes      int    `json:"netMinutes"`
	Positive        string `json:"positive"`
	Negative        string `json:"negative"`
	Net             string `json:"net"`
}

// MonthTotalsRow is one line of the general report: a month and its totals.
type MonthTotalsRow struct {
	Key    string       `json:"key"`
	Label  string       `json:"label"`
	Totals ReportTotals `json:"totals"`
}

// MonthReport computes the per-day rows and summary totals for the selected
// month, in ascending date order.
func MonthReport(days []Day, selectedMonth string, toleranceEnabled bool) ([]ReportRow, ReportTotals) {
	var (
		rows     []ReportRow
		positive int
		negative int
	)
	for _, d := range SortedByDate(FilterMonth(days, selectedMonth)) {
		minutes := d.Balance(toleranceEnabled)
		rows = append(rows, ReportRow{
			Date:       d.Date,
			Holiday:    d.Holiday,
			Ignored:    d.Ignored,
			DidNotWork: d.DidNotWork,
			Entrada1:   orDefault(d.Entrada1, DefaultEntrada1),
			Saida1:     orDefault(d.Saida1, DefaultSaida1),
			Entrada2:   orDefault(d.Entrada2, DefaultEntrada2),
			Saida2:     orDefault(d.Saida2, DefaultSaida2),
			Minutes:    minutes,
			Balance:    FormatMinutesToHHMM(minutes),
		})
		if minutes > 0 {
			positive += minutes
		} else if minutes < 0 {
			negative += minutes
		}
	}
	return rows, newReportTotals(positive, negative)
}

// GeneralReport computes one totals row per month across the whole
// collection, ordered by ascending month key. Days without a month key are
// skipped.
func GeneralReport(days []Day, toleranceEnabled bool) []MonthTotalsRow {
	type bucket struct{ positive, negative int }
	buckets := make(map[string]*bucket)
	for _, d := range days {
		key := YearMonth(d.Date)
		if key == "" {
			continue
		}
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		minutes := d.Balance(toleranceEnabled)
		if minutes > 0 {
			b.positive += minutes
		} else if minutes < 0 {
			b.negative += minutes
		}
	}

	var rows []MonthTotalsRow
	for _, key := range sortedKeys(buckets) {
		b := buckets[key]
		rows = append(rows, MonthTotalsRow{
			Key:    key,
			Label:  FormatYearMonth(key),
			Totals: newReportTotals(b.positive, b.negative),
		})
	}
	return rows
}

func newReportTotals(positive, negative int) ReportTotals {
	net := positive + negative
	return ReportTotals{
		PositiveMinutes: positive,
		NegativeMinutes: negative,
		NetMinutes:      net,
		Positive:        FormatMinutesToHHMM(positive),
		Negative:        FormatMinutesToHHMM(negative),
		Net:             FormatMinutesToHHMM(net),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
