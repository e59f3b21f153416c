/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the stored day record from the external contract and carry the computed
  figures (balances, labels, duplicate flags) the engine derives on demand.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

Engine result types (Forecast, ReportRow, MonthlyPoint, ...) already define
their own JSON shape and are returned as-is.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"encoding/json"

	"github.com/warp/overtime-engine/overtime"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// DayDTO is one day row: the stored record plus its computed balance and
// the duplicate-date presentation flag.
type DayDTO struct {
	ID             int64  `json:"id"`
	Date           string `json:"date"`
	Holiday        bool   `json:"holiday"`
	Ignored        bool   `json:"ignored"`
	DidNotWork     bool   `json:"didNotWork"`
	Entrada1       string `json:"entrada1"`
	Saida1         string `json:"saida1"`
	Entrada2       string `json:"entrada2"`
	Saida2         string `json:"saida2"`
	BalanceMinutes int    `json:"balanceMinutes"`
	Balance        string `json:"balance"`
	DuplicateDate  bool   `json:"duplicateDate"`
}

// DaysDTO is the day-listing response for one month.
type DaysDTO struct {
	Month           string   `json:"month"`
	MonthLabel      string   `json:"monthLabel"`
	Days            []DayDTO `json:"days"`
	AvailableMonths []string `json:"availableMonths"`
}

// AddDayRequest creates a day; an empty month targets the selected month.
type AddDayRequest struct {
	Month string `json:"month"`
}

// UpdateDayRequest replaces a single field on a day. Value is raw so the
// handler can decode it as the type the named field wants.
type UpdateDayRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

// SelectMonthRequest changes the selected month.
type SelectMonthRequest struct {
	Month string `json:"month"`
}

// SummaryDTO carries the four aggregate figures, raw and formatted.
type SummaryDTO struct {
	SelectedMonth        string `json:"selectedMonth"`
	SelectedMonthLabel   string `json:"selectedMonthLabel"`
	TotalMinutes         int    `json:"totalMinutes"`
	Total                string `json:"total"`
	TotalNegativeMinutes int    `json:"totalNegativeMinutes"`
	TotalNegative        string `json:"totalNegative"`
	MonthMinutes         int    `json:"monthMinutes"`
	Month                string `json:"month"`
	MonthNegativeMinutes int    `json:"monthNegativeMinutes"`
	MonthNegative        string `json:"monthNegative"`
}

// ConfigDTO mirrors the persisted configuration. TargetHours is a decimal
// string; null means no target is set (and clears it on PUT).
type ConfigDTO struct {
	ToleranceEnabled bool    `json:"toleranceEnabled"`
	TargetHours      *string `json:"targetHours"`
}

// MonthReportDTO is the per-day monthly report.
type MonthReportDTO struct {
	Month  string                `json:"month"`
	Label  string                `json:"label"`
	Rows   []overtime.ReportRow  `json:"rows"`
	Totals overtime.ReportTotals `json:"totals"`
}

// GeneralReportDTO is the all-time report, one row per month.
type GeneralReportDTO struct {
	Months []overtime.MonthTotalsRow `json:"months"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toDayDTO(d overtime.Day, toleranceEnabled bool, dateCounts map[string]int) DayDTO {
	minutes := d.Balance(toleranceEnabled)
	return DayDTO{
		ID:             d.ID,
		Date:           d.Date,
		Holiday:        d.Holiday,
		Ignored:        d.Ignored,
		DidNotWork:     d.DidNotWork,
		Entrada1:       d.Entrada1,
		Saida1:         d.Saida1,
		Entrada2:       d.Entrada2,
		Saida2:         d.Saida2,
		BalanceMinutes: minutes,
		Balance:        overtime.FormatMinutesToHHMM(minutes),
		DuplicateDate:  dateCounts[d.Date] > 1,
	}
}

func toDayDTOs(days []overtime.Day, toleranceEnabled bool, dateCounts map[string]int) []DayDTO {
	dtos := make([]DayDTO, len(days))
	for i, d := range days {
		dtos[i] = toDayDTO(d, toleranceEnabled, dateCounts)
	}
	return dtos
}

func toSummaryDTO(month string, s overtime.Summary) SummaryDTO {
	return SummaryDTO{
		SelectedMonth:        month,
		SelectedMonthLabel:   overtime.FormatYearMonth(month),
		TotalMinutes:         s.TotalMinutes,
		Total:                overtime.FormatMinutesToHHMM(s.TotalMinutes),
		TotalNegativeMinutes: s.TotalNegativeMinutes,
		TotalNegative:        overtime.FormatMinutesToHHMM(s.TotalNegativeMinutes),
		MonthMinutes:         s.MonthMinutes,
		Month:                overtime.FormatMinutesToHHMM(s.MonthMinutes),
		MonthNegativeMinutes: s.MonthNegativeMinutes,
		MonthNegative:        overtime.FormatMinutesToHHMM(s.MonthNegativeMinutes),
	}
}
