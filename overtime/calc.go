/*
calc.go - Per-day overtime evaluation

PURPOSE:
  Computes the signed overtime balance of a single day from its four clock
  times and flags. This is the one function every aggregate, report, and
  forecast figure ultimately goes through, so its semantics must stay
  bit-exact.

EVALUATION ORDER (first match wins):
  1. ignored      -> 0, the day is excluded from every balance
  2. didNotWork   -> fixed -480 deficit regardless of clock fields
  3. holiday      -> the full worked span counts as overtime (no baseline)
  4. otherwise    -> worked span minus the 8h baseline
  5. tolerance    -> a raw result strictly inside the +-10 band becomes 0

NEGATIVE SPANS:
  A saída earlier than its entrada yields a negative period and is accepted
  as-is. There is deliberately no clamping: the deficit propagates into the
  balance.

The function is pure and total. Invalid or missing clock strings degrade
through TimeToMinutes, never into an error.
*/
package overtime

// Flags selects the evaluation path for one day.
type Flags struct {
	Holiday          bool
	Ignored          bool
	DidNotWork       bool
	ToleranceEnabled bool
}

// CalculateOvertime returns the signed overtime minutes for one day given
// its four resolved clock times. Callers that start from a stored Day should
// use Day.Balance, which applies the canonical defaults first.
func CalculateOvertime(entrada1, saida1, entrada2, saida2 string, f Flags) OvertimeResult {
	if f.Ignored {
		return OvertimeResult{}
	}
	if f.DidNotWork {
		return OvertimeResult{OvertimeMinutes: DidNotWorkDeficitMinutes}
	}

	period1 := TimeToMinutes(saida1) - TimeToMinutes(entrada1)
	period2 := TimeToMinutes(saida2) - TimeToMinutes(entrada2)
	total := period1 + period2

	if f.Holiday {
		return OvertimeResult{OvertimeMinutes: total}
	}

	overtime := total - StandardDayMinutes
	if f.ToleranceEnabled && abs(overtime) < ToleranceBandMinutes {
		return OvertimeResult{}
	}
	return OvertimeResult{OvertimeMinutes: overtime}
}

// Balance computes the day's signed overtime minutes, resolving blank clock
// fields to the canonical defaults. Defaults are applied here, at
// consumption, so the stored record keeps its blanks.
func (d Day) Balance(toleranceEnabled bool) int {
	r := CalculateOvertime(
		orDefault(d.Entrada1, DefaultEntrada1),
		orDefault(d.Saida1, DefaultSaida1),
		orDefault(d.Entrada2, DefaultEntrada2),
		orDefault(d.Saida2, DefaultSaida2),
		Flags{
			Holiday:          d.Holiday,
			Ignored:          d.Ignored,
			DidNotWork:       d.DidNotWork,
			ToleranceEnabled: toleranceEnabled,
		},
	)
	return r.OvertimeMinutes
}

func orDefault(clock, fallback string) string {
	if clock == "" {
		return fallback
	}
	return clock
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
