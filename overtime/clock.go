/*
clock.go - Clock-time parsing, balance formatting, and month keys

PURPOSE:
  Small pure helpers shared by the calculator, aggregator, and report
  generation. All of them operate on the fixed-width string formats the
  records are stored in ("HH:MM", "YYYY-MM-DD", "YYYY-MM").

PERMISSIVENESS:
  TimeToMinutes is permissive BY CONTRACT: an empty string is zero minutes
  and malformed numeric text degrades instead of erroring. Hardening this
  would change persisted balances, so don't.
*/
package overtime

import (
	"fmt"
	"strconv"
	"strings"
)

// monthNames is the fixed localized month-name table used by FormatYearMonth.
var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// TimeToMinutes converts an "HH:MM" clock string to minutes since midnight.
// An empty string is 0. No bounds validation is performed: each side of the
// colon that fails to parse contributes 0, so malformed input degrades to a
// partial value rather than an error.
func TimeToMinutes(clock string) int {
	if clock == "" {
		return 0
	}
	hh, mm, _ := strings.Cut(clock, ":")
	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)
	return hours*60 + minutes
}

// FormatMinutesToHHMM renders signed minutes as a signed "HH:MM" string:
// 0 -> "00:00", -5 -> "-00:05", 125 -> "02:05".
func FormatMinutesToHHMM(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// YearMonth derives the "YYYY-MM" grouping key from a "YYYY-MM-DD" date.
// Empty input yields an empty key. No calendar validation: this is a pure
// prefix operation on the fixed-width date format.
func YearMonth(date string) string {
	if len(date) <= 7 {
		return date
	}
	return date[:7]
}

// FormatYearMonth renders a "YYYY-MM" key as a localized label, e.g.
// "2025-03" -> "Março de 2025". Empty input yields an empty label; a key
// whose month falls outside 1..12 is returned unchanged.
func FormatYearMonth(yearMonth string) string {
	if yearMonth == "" {
		return ""
	}
	year, monthStr, _ := strings.Cut(yearMonth, "-")
	month, _ := strconv.Atoi(monthStr)
	if month < 1 || month > 12 {
		return yearMonth
	}
	return monthNames[month-1] + " de " + year
}
