/*
Package overtime provides the core overtime computation engine.

PURPOSE:
  This package contains the pure functions that turn raw day records into
  signed time balances, monthly aggregates, forecast projections, and report
  rows. Everything here is side-effect free: no I/O, no globals, no clock
  reads. Orchestration and persistence live in the registry package.

KEY CONCEPTS IN THIS FILE (types.go):
  - Day: One calendar day's attendance record (the persisted unit)
  - OvertimeResult: The signed balance for one day under a rule configuration
  - MonthlyPoint: One entry of the positive-only monthly distribution
  - Canonical clock defaults applied at consumption time, never at storage

DESIGN PRINCIPLES:
  1. Permissive inputs: malformed clock strings degrade to zero minutes,
     they are never errors (see clock.go)
  2. Bit-exact integer arithmetic: balances are signed minutes, always
  3. Defaults at consumption: a blank clock field stays blank in storage so
     a record can remain intentionally incomplete

SEE ALSO:
  - calc.go:      Per-day overtime evaluation
  - aggregate.go: Folding day collections into totals and distributions
  - forecast.go:  Target projection
  - normalize.go: Schema migration on the load/import path
*/
package overtime

// =============================================================================
// RULE CONSTANTS
// =============================================================================

const (
	// StandardDayMinutes is the 8-hour baseline subtracted from a normal
	// working day. Holidays skip the subtraction entirely.
	StandardDayMinutes = 8 * 60

	// ToleranceBandMinutes is the exclusive deadband around zero: when
	// tolerance is enabled, a raw overtime strictly inside (-10, 10) counts
	// as exactly on-target. Exactly +-10 is NOT inside the band.
	ToleranceBandMinutes = 10

	// DidNotWorkDeficitMinutes is the fixed contribution of a did-not-work
	// day, regardless of any recorded clock times.
	DidNotWorkDeficitMinutes = -StandardDayMinutes
)

// Canonical clock defaults, applied wherever a blank field is consumed.
const (
	DefaultEntrada1 = "09:00"
	DefaultSaida1   = "12:00"
	DefaultEntrada2 = "13:00"
	DefaultSaida2   = "18:00"
)

// =============================================================================
// DAY - One calendar day's attendance record
// =============================================================================

// Day is the persisted attendance record. JSON field names are the wire
// format shared with exported backup files (dados_horas_extras.json), so
// they must not change.
//
// Clock fields are "HH:MM" strings and each may be blank; blanks resolve to
// the canonical defaults at consumption time only. Dates are "YYYY-MM-DD"
// strings and are not required to be unique (duplicates are flagged for
// presentation, never rejected).
type Day struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	Holiday    bool   `json:"holiday"`
	Ignored    bool   `json:"ignored"`
	DidNotWork bool   `json:"didNotWork"`
	Entrada1   string `json:"entrada1"`
	Saida1     string `json:"saida1"`
	Entrada2   string `json:"entrada2"`
	Saida2     string `json:"saida2"`
}

// NewDay returns a day for the given date with the canonical clock times
// and all flags cleared.
func NewDay(id int64, date string) Day {
	return Day{
		ID:       id,
		Date:     date,
		Entrada1: DefaultEntrada1,
		Saida1:   DefaultSaida1,
		Entrada2: DefaultEntrada2,
		Saida2:   DefaultSaida2,
	}
}

// =============================================================================
// COMPUTED RESULTS - Ephemeral, recomputed on demand, never persisted
// =============================================================================

// OvertimeResult is the signed balance for one day. Positive means worked
// beyond the standard day, negative means a deficit.
type OvertimeResult struct {
	OvertimeMinutes int
}

// MonthlyPoint is one entry of the positive-only monthly distribution.
type MonthlyPoint struct {
	Key       string `json:"key"`       // "YYYY-MM"
	Label     string `json:"label"`     // localized, e.g. "Janeiro de 2025"
	Minutes   int    `json:"minutes"`   // summed positive overtime
	Formatted string `json:"formatted"` // "HH:MM"
}

// Summary carries the four aggregate figures shown by balance panels:
// overall and selected-month totals, each with its negative-only restriction.
type Summary struct {
	TotalMinutes         int
	TotalNegativeMinutes int
	MonthMinutes         int
	MonthNegativeMinutes int
}
