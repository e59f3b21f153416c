/*
forecast.go - Days-to-target projection

PURPOSE:
  Given a target (in hours) and the current total balance, computes how many
  minutes are still missing and, for a fixed set of daily-commitment
  alternatives, how many days each pace takes to close the gap.

PRECISION:
  Target hours are user-entered decimals (7.5 is a perfectly normal target),
  so the hours-to-minutes conversion goes through decimal.Decimal instead of
  float multiplication.
*/
package overtime

import "github.com/shopspring/decimal"

var sixty = decimal.NewFromInt(60)

// Alternative is one fixed daily-commitment pace.
type Alternative struct {
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

// Alternatives is the fixed ordered list of daily-commitment paces offered
// by the projection, strongest first.
var Alternatives = []Alternative{
	{Label: "2 horas por dia", Minutes: 120},
	{Label: "1:30 por dia", Minutes: 90},
	{Label: "1 hora por dia", Minutes: 60},
	{Label: "30 minutos por dia", Minutes: 30},
}

// ForecastOption is one projection row: an alternative plus the number of
// days it needs to reach the target.
type ForecastOption struct {
	Label      string `json:"label"`
	Minutes    int    `json:"minutes"`
	DaysNeeded int    `json:"daysNeeded"`
}

// Forecast is the full projection result.
//
// Presentation rule: with no target set there is nothing to project; with a
// target set and nothing missing the target is reached and there are no
// per-alternative rows; otherwise Options holds one row per alternative.
type Forecast struct {
	TargetSet      bool             `json:"targetSet"`
	TargetMinutes  int              `json:"targetMinutes"`
	MissingMinutes int              `json:"missingMinutes"`
	Reached        bool             `json:"reached"`
	Options        []ForecastOption `json:"options,omitempty"`
}

// Project computes the forecast for the given target and current total
// balance. A nil targetHours means no target is defined.
func Project(targetHours *decimal.Decimal, totalOvertimeMinutes int) Forecast {
	if targetHours == nil {
		return Forecast{}
	}

	targetMinutes := int(targetHours.Mul(sixty).Round(0).IntPart())
	missing := targetMinutes - totalOvertimeMinutes
	if missing < 0 {
		missing = 0
	}

	f := Forecast{
		TargetSet:      true,
		TargetMinutes:  targetMinutes,
		MissingMinutes: missing,
	}
	if missing == 0 {
		f.Reached = true
		return f
	}

	f.Options = make([]ForecastOption, len(Alternatives))
	for i, alt := range Alternatives {
		f.Options[i] = ForecastOption{
			Label:      alt.Label,
			Minutes:    alt.Minutes,
			DaysNeeded: ceilDiv(missing, alt.Minutes),
		}
	}
	return f
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
