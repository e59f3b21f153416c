package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/overtime-engine/overtime"
	"github.com/warp/overtime-engine/registry"
	"github.com/warp/overtime-engine/registry/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// fixedNow pins the clock to mid-March 2025 so the default selected month
// and the time-derived ids are deterministic.
var fixedNow = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestRegistry(t *testing.T) (*registry.Registry, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	reg, err := registry.New(context.Background(), mem,
		registry.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return reg, mem
}

func storedDays(t *testing.T, mem *store.Memory) []overtime.Day {
	t.Helper()
	raw, ok, err := mem.Get(context.Background(), registry.KeyDays)
	require.NoError(t, err)
	require.True(t, ok, "days were never written through")
	days, err := overtime.DecodeDays(raw)
	require.NoError(t, err)
	return days
}

// =============================================================================
// ADD DAY TESTS
// =============================================================================

func TestAddDay_EmptyMonthStartsAtDayOne(t *testing.T) {
	// GIVEN: No days in the selected month
	// WHEN: Adding a day (empty month key = selected month)
	// THEN: Date is day 1 with canonical times and cleared flags

	reg, mem := newTestRegistry(t)
	ctx := context.Background()

	day, err := reg.AddDay(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", day.Date)
	assert.Equal(t, overtime.DefaultEntrada1, day.Entrada1)
	assert.Equal(t, overtime.DefaultSaida2, day.Saida2)
	assert.False(t, day.Holiday)
	assert.False(t, day.Ignored)
	assert.False(t, day.DidNotWork)
	assert.Equal(t, fixedNow.UnixMilli(), day.ID)

	// Write-through: the store already holds the new collection.
	require.Len(t, storedDays(t, mem), 1)
}

func TestAddDay_AdvancesPastLatestDate(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	d1, err := reg.AddDay(ctx, "2025-02")
	require.NoError(t, err)
	d2, err := reg.AddDay(ctx, "2025-02")
	require.NoError(t, err)

	assert.Equal(t, "2025-02-01", d1.Date)
	assert.Equal(t, "2025-02-02", d2.Date)

	// Advancing follows the LATEST date, not the day count.
	require.NoError(t, reg.UpdateDay(ctx, d2.ID, registry.FieldDate, "2025-02-20"))
	d3, err := reg.AddDay(ctx, "2025-02")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-21", d3.Date)
}

func TestAddDay_ClampsToLastDayOfMonth(t *testing.T) {
	// GIVEN: February 2025 (28 days) already holds its last day
	// WHEN: Adding again
	// THEN: The date clamps to Feb 28 instead of rolling over

	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	d, err := reg.AddDay(ctx, "2025-02")
	require.NoError(t, err)
	require.NoError(t, reg.UpdateDay(ctx, d.ID, registry.FieldDate, "2025-02-28"))

	clamped, err := reg.AddDay(ctx, "2025-02")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", clamped.Date)
}

func TestAddDay_UniqueIDsWithinSameMillisecond(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	d1, err := reg.AddDay(ctx, "")
	require.NoError(t, err)
	d2, err := reg.AddDay(ctx, "")
	require.NoError(t, err)

	assert.NotEqual(t, d1.ID, d2.ID)
	assert.Greater(t, d2.ID, d1.ID)
}

func TestAddDay_InvalidMonthKey(t *testing.T) {
	reg, _ := newTestRegistry(t)

	_, err := reg.AddDay(context.Background(), "march-2025")
	assert.ErrorIs(t, err, registry.ErrInvalidMonthKey)
}

// =============================================================================
// UPDATE / REMOVE TESTS
// =============================================================================

func TestUpdateDay_SingleFieldReplace(t *testing.T) {
	reg, mem := newTestRegistry(t)
	ctx := context.Background()

	day, err := reg.AddDay(ctx, "")
	require.NoError(t, err)

	require.NoError(t, reg.UpdateDay(ctx, day.ID, registry.FieldSaida2, "19:30"))
	require.NoError(t, reg.UpdateDay(ctx, day.ID, registry.FieldHoliday, true))

	stored := storedDays(t, mem)
	require.Len(t, stored, 1)
	assert.Equal(t, "19:30", stored[0].Saida2)
	assert.True(t, stored[0].Holiday)
	// Untouched fields survive the single-field replace.
	assert.Equal(t, overtime.DefaultEntrada1, stored[0].Entrada1)
}

func TestUpdateDay_UnknownIDIsNoOp(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.AddDay(ctx, "")
	require.NoError(t, err)

	require.NoError(t, reg.UpdateDay(ctx, 424242, registry.FieldHoliday, true))
	assert.False(t, reg.Days()[0].Holiday)
}

func TestUpdateDay_UnknownFieldRejected(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	day, err := reg.AddDay(ctx, "")
	require.NoError(t, err)

	err = reg.UpdateDay(ctx, day.ID, registry.Field("salary"), "lots")
	assert.ErrorIs(t, err, registry.ErrUnknownField)
}

func TestUpdateDay_WrongValueTypeRejected(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	day, err := reg.AddDay(ctx, "")
	require.NoError(t, err)

	err = reg.UpdateDay(ctx, day.ID, registry.FieldHoliday, "yes")
	assert.ErrorIs(t, err, registry.ErrInvalidFieldValue)

	err = reg.UpdateDay(ctx, day.ID, registry.FieldDate, true)
	assert.ErrorIs(t, err, registry.ErrInvalidFieldValue)
}

func TestRemoveDay(t *testing.T) {
	reg, mem := newTestRegistry(t)
	ctx := context.Background()

	day, err := reg.AddDay(ctx, "")
	require.NoError(t, err)

	require.NoError(t, reg.RemoveDay(ctx, day.ID))
	assert.Empty(t, reg.Days())
	assert.Empty(t, storedDays(t, mem))

	// Unknown id: no-op, not an error.
	require.NoError(t, reg.RemoveDay(ctx, day.ID))
}

func TestReset_ClearsCollection(t *testing.T) {
	reg, mem := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.AddDay(ctx, "")
	require.NoError(t, err)

	require.NoError(t, reg.Reset(ctx))
	assert.Empty(t, reg.Days())
	assert.Empty(t, storedDays(t, mem))
}

// =============================================================================
// IMPORT / EXPORT TESTS
// =============================================================================

func TestImportExport_RoundTrip(t *testing.T) {
	// GIVEN: A registry with a few days
	// WHEN: Exporting and importing into a fresh registry
	// THEN: Same ids, same field values

	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	d, err := reg.AddDay(ctx, "2025-02")
	require.NoError(t, err)
	require.NoError(t, reg.UpdateDay(ctx, d.ID, registry.FieldIgnored, true))
	_, err = reg.AddDay(ctx, "2025-03")
	require.NoError(t, err)

	data, err := reg.ExportAll()
	require.NoError(t, err)

	other, _ := newTestRegistry(t)
	require.NoError(t, other.ImportAll(ctx, data))
	assert.Equal(t, reg.Days(), other.Days())
}

func TestImportAll_NonSequenceLeavesStateUntouched(t *testing.T) {
	reg, mem := newTestRegistry(t)
	ctx := context.Background()

	day, err := reg.AddDay(ctx, "")
	require.NoError(t, err)

	err = reg.ImportAll(ctx, []byte(`{"not":"a sequence"}`))
	assert.ErrorIs(t, err, overtime.ErrNotDaySequence)

	days := reg.Days()
	require.Len(t, days, 1)
	assert.Equal(t, day.ID, days[0].ID)
	require.Len(t, storedDays(t, mem), 1)
}

func TestImportAll_ReseedsIDCounter(t *testing.T) {
	// GIVEN: An imported day with an id far in the future
	// WHEN: Adding a new day afterwards
	// THEN: The fresh id stays unique (bumped past the imported one)

	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	big := fixedNow.UnixMilli() + 1_000_000
	payload, err := overtime.EncodeDays([]overtime.Day{{ID: big, Date: "2025-03-01"}})
	require.NoError(t, err)
	require.NoError(t, reg.ImportAll(ctx, payload))

	day, err := reg.AddDay(ctx, "")
	require.NoError(t, err)
	assert.Greater(t, day.ID, big)
}

// =============================================================================
// PERSISTENCE / CONFIGURATION TESTS
// =============================================================================

func TestNew_ReadsPersistedStateOnce(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	first, err := registry.New(ctx, mem, registry.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	_, err = first.AddDay(ctx, "")
	require.NoError(t, err)
	require.NoError(t, first.SetToleranceEnabled(ctx, true))
	target := decimal.NewFromFloat(7.5)
	require.NoError(t, first.SetTargetHours(ctx, &target))

	// A second registry on the same store sees everything.
	second, err := registry.New(ctx, mem, registry.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	assert.Equal(t, first.Days(), second.Days())
	assert.True(t, second.ToleranceEnabled())
	require.NotNil(t, second.TargetHours())
	assert.True(t, second.TargetHours().Equal(target))
}

func TestNew_CorruptDaysPayloadStartsEmpty(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, registry.KeyDays, []byte(`corrupt`)))

	reg, err := registry.New(ctx, mem)
	require.NoError(t, err)
	assert.Empty(t, reg.Days())
}

func TestSetTargetHours_NilClearsTheKey(t *testing.T) {
	reg, mem := newTestRegistry(t)
	ctx := context.Background()

	target := decimal.NewFromInt(10)
	require.NoError(t, reg.SetTargetHours(ctx, &target))
	_, ok, err := mem.Get(ctx, registry.KeyTargetHours)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, reg.SetTargetHours(ctx, nil))
	_, ok, err = mem.Get(ctx, registry.KeyTargetHours)
	require.NoError(t, err)
	assert.False(t, ok, "absence means unset")
	assert.Nil(t, reg.TargetHours())
}

func TestSelectMonth(t *testing.T) {
	reg, _ := newTestRegistry(t)

	assert.Equal(t, "2025-03", reg.SelectedMonth())
	require.NoError(t, reg.SelectMonth("2025-04"))
	assert.Equal(t, "2025-04", reg.SelectedMonth())

	assert.ErrorIs(t, reg.SelectMonth("April"), registry.ErrInvalidMonthKey)
}

// =============================================================================
// QUERY COMPOSITION TESTS
// =============================================================================

func TestSummaryAndForecast_Composed(t *testing.T) {
	// GIVEN: One +120 day in the selected month and a 10h target
	// THEN: Summary and forecast agree on the same total

	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	day, err := reg.AddDay(ctx, "")
	require.NoError(t, err)
	require.NoError(t, reg.UpdateDay(ctx, day.ID, registry.FieldSaida2, "20:00")) // +120

	target := decimal.NewFromInt(10)
	require.NoError(t, reg.SetTargetHours(ctx, &target))

	s := reg.Summary("")
	assert.Equal(t, 120, s.TotalMinutes)
	assert.Equal(t, 120, s.MonthMinutes)
	assert.Equal(t, 0, s.TotalNegativeMinutes)

	f := reg.Forecast()
	require.True(t, f.TargetSet)
	assert.Equal(t, 480, f.MissingMinutes)
	assert.Equal(t, 4, f.Options[0].DaysNeeded)
}

func TestDays_ReturnsSortedSnapshot(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	d1, err := reg.AddDay(ctx, "")
	require.NoError(t, err)
	_, err = reg.AddDay(ctx, "")
	require.NoError(t, err)
	require.NoError(t, reg.UpdateDay(ctx, d1.ID, registry.FieldDate, "2025-03-31"))

	days := reg.Days()
	require.Len(t, days, 2)
	assert.Equal(t, "2025-03-02", days[0].Date)
	assert.Equal(t, "2025-03-31", days[1].Date)

	// Mutating the snapshot never touches registry state.
	days[0].Holiday = true
	assert.False(t, reg.Days()[0].Holiday)
}
