package overtime_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/overtime-engine/overtime"
)

func hours(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestProject_NoTargetDefined(t *testing.T) {
	f := overtime.Project(nil, 1000)
	assert.False(t, f.TargetSet)
	assert.False(t, f.Reached)
	assert.Empty(t, f.Options)
}

func TestProject_MissingMinutesAndDayCounts(t *testing.T) {
	// GIVEN: target 10h (600 min), current total 120 min
	// THEN: 480 min missing; 2h/day pace needs ceil(480/120) = 4 days

	f := overtime.Project(hours(10), 120)

	require.True(t, f.TargetSet)
	assert.Equal(t, 600, f.TargetMinutes)
	assert.Equal(t, 480, f.MissingMinutes)
	assert.False(t, f.Reached)

	require.Len(t, f.Options, 4)
	assert.Equal(t, overtime.ForecastOption{Label: "2 horas por dia", Minutes: 120, DaysNeeded: 4}, f.Options[0])
	assert.Equal(t, overtime.ForecastOption{Label: "1:30 por dia", Minutes: 90, DaysNeeded: 6}, f.Options[1])
	assert.Equal(t, overtime.ForecastOption{Label: "1 hora por dia", Minutes: 60, DaysNeeded: 8}, f.Options[2])
	assert.Equal(t, overtime.ForecastOption{Label: "30 minutos por dia", Minutes: 30, DaysNeeded: 16}, f.Options[3])
}

func TestProject_CeilingDivision(t *testing.T) {
	// 100 missing minutes at 90/day is 2 days, not 1.
	f := overtime.Project(hours(10), 500)
	require.True(t, f.TargetSet)
	assert.Equal(t, 100, f.MissingMinutes)
	assert.Equal(t, 2, f.Options[1].DaysNeeded)
}

func TestProject_TargetReached(t *testing.T) {
	// GIVEN: The total already meets the target (and then some)
	// THEN: Nothing missing, no per-alternative rows

	f := overtime.Project(hours(10), 600)
	assert.True(t, f.Reached)
	assert.Zero(t, f.MissingMinutes)
	assert.Empty(t, f.Options)

	f = overtime.Project(hours(10), 601)
	assert.True(t, f.Reached)
	assert.Zero(t, f.MissingMinutes)
}

func TestProject_FractionalTargetHours(t *testing.T) {
	// 7.5h -> 450 minutes exactly, no float drift.
	f := overtime.Project(hours(7.5), 0)
	assert.Equal(t, 450, f.TargetMinutes)
	assert.Equal(t, 450, f.MissingMinutes)
}

func TestProject_NegativeTotalWidensTheGap(t *testing.T) {
	f := overtime.Project(hours(1), -60)
	assert.Equal(t, 120, f.MissingMinutes)
	assert.Equal(t, 1, f.Options[0].DaysNeeded)
}
