/*
Package registry owns the day collection and its configuration.

PURPOSE:
  The Registry is the orchestration layer over the pure overtime engine. It
  owns one day collection plus the process-wide configuration (selected
  month, target hours, tolerance flag) and composes the engine's functions
  into the operations a host calls: add/update/remove days, import/export,
  summaries, distribution, forecast, reports.

PERSISTENCE:
  A Store port is injected at construction. State is read once when the
  registry is built and written through on every mutation. The registry
  holds no global state: build one instance per process/session and tests
  get an in-memory port.

CONCURRENCY:
  Every computation is synchronous and non-blocking, but the registry may be
  embedded in a concurrent host (an HTTP server renders many requests), so
  it guards its state with a RWMutex and mutates the day collection by
  whole-value replacement. Readers always observe a complete snapshot.

SEE ALSO:
  - store.go: The persistence port and its keys
  - overtime:  The pure computation engine this package composes
*/
package registry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/overtime-engine/overtime"
)

// ExportFilename is the conventional name for backup files.
const ExportFilename = "dados_horas_extras.json"

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnknownField is returned when an update names a field that does not
	// exist on a day record. Unknown IDs, by contrast, are a silent no-op.
	ErrUnknownField = errors.New("unknown day field")

	// ErrInvalidFieldValue is returned when an update carries a value of the
	// wrong type for the named field.
	ErrInvalidFieldValue = errors.New("invalid value for day field")

	// ErrInvalidMonthKey is returned when a month key is not "YYYY-MM".
	ErrInvalidMonthKey = errors.New("invalid month key")
)

// Field names a single updatable field of a day record. The ID is assigned
// at creation and immutable, so it is not a Field.
type Field string

const (
	FieldDate       Field = "date"
	FieldHoliday    Field = "holiday"
	FieldIgnored    Field = "ignored"
	FieldDidNotWork Field = "didNotWork"
	FieldEntrada1   Field = "entrada1"
	FieldSaida1     Field = "saida1"
	FieldEntrada2   Field = "entrada2"
	FieldSaida2     Field = "saida2"
)

// =============================================================================
// REGISTRY
// =============================================================================

type Registry struct {
	store Store
	log   logrus.FieldLogger
	now   func() time.Time

	mu               sync.RWMutex
	days             []overtime.Day
	selectedMonth    string
	toleranceEnabled bool
	targetHours      *decimal.Decimal
	lastID           int64
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger replaces the default logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Registry) { r.log = log }
}

// WithClock replaces the wall clock (tests pin IDs and the default month).
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// New builds a registry bound to the given store and loads persisted state.
// A corrupt days payload is discarded with a warning rather than failing
// construction; the worst case is an empty collection with storage intact
// until the next mutation.
func New(ctx context.Context, store Store, opts ...Option) (*Registry, error) {
	r := &Registry{
		store: store,
		log:   logrus.StandardLogger(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.selectedMonth = r.now().Format("2006-01")

	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) load(ctx context.Context) error {
	raw, ok, err := r.store.Get(ctx, KeyDays)
	if err != nil {
		return fmt.Errorf("load days: %w", err)
	}
	if ok {
		days, err := overtime.DecodeDays(raw)
		if err != nil {
			r.log.WithError(err).Warn("discarding unreadable day collection")
		} else {
			r.days = days
			r.lastID = maxID(days)
		}
	}

	raw, ok, err = r.store.Get(ctx, KeyTargetHours)
	if err != nil {
		return fmt.Errorf("load target hours: %w", err)
	}
	if ok {
		target, err := decimal.NewFromString(string(raw))
		if err != nil {
			r.log.WithError(err).Warn("discarding unreadable target hours")
		} else {
			r.targetHours = &target
		}
	}

	raw, ok, err = r.store.Get(ctx, KeyTolerance)
	if err != nil {
		return fmt.Errorf("load tolerance flag: %w", err)
	}
	if ok {
		// Unparseable values fall back to the default (false).
		r.toleranceEnabled, _ = strconv.ParseBool(string(raw))
	}
	return nil
}

func maxID(days []overtime.Day) int64 {
	var max int64
	for _, d := range days {
		if d.ID > max {
			max = d.ID
		}
	}
	return max
}

// nextID derives a fresh unique id from the wall clock, bumped past the
// last one handed out so two adds in the same millisecond stay distinct.
func (r *Registry) nextID() int64 {
	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func (r *Registry) persistDaysLocked(ctx context.Context) error {
	data, err := overtime.EncodeDays(r.days)
	if err != nil {
		return fmt.Errorf("encode days: %w", err)
	}
	if err := r.store.Set(ctx, KeyDays, data); err != nil {
		return fmt.Errorf("persist days: %w", err)
	}
	return nil
}

// =============================================================================
// DAY OPERATIONS
// =============================================================================

// AddDay creates a day in the given month ("" means the selected month) with
// the canonical default times and all flags cleared. The date auto-advances
// to one past the latest existing day-of-month in that month (day 1 if the
// month is empty), clamped to the month's last valid day.
func (r *Registry) AddDay(ctx context.Context, monthKey string) (overtime.Day, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if monthKey == "" {
		monthKey = r.selectedMonth
	}
	monthStart, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return overtime.Day{}, fmt.Errorf("%w: %q", ErrInvalidMonthKey, monthKey)
	}

	dayNumber := 1
	if latest := latestDateIn(r.days, monthKey); latest != "" {
		n, _ := strconv.Atoi(latest[len("2006-01-"):])
		dayNumber = n + 1
	}
	lastDay := monthStart.AddDate(0, 1, -1).Day()
	if dayNumber > lastDay {
		dayNumber = lastDay
	}

	day := overtime.NewDay(r.nextID(), fmt.Sprintf("%s-%02d", monthKey, dayNumber))

	days := make([]overtime.Day, len(r.days), len(r.days)+1)
	copy(days, r.days)
	r.days = append(days, day)

	if err := r.persistDaysLocked(ctx); err != nil {
		return overtime.Day{}, err
	}
	return day, nil
}

func latestDateIn(days []overtime.Day, monthKey string) string {
	latest := ""
	for _, d := range days {
		if overtime.YearMonth(d.Date) == monthKey && d.Date > latest {
			latest = d.Date
		}
	}
	if len(latest) != len("2006-01-02") {
		return ""
	}
	return latest
}

// UpdateDay replaces a single field on the day with the matching id. An
// unknown id is a no-op, not an error.
func (r *Registry) UpdateDay(ctx context.Context, id int64, field Field, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, d := range r.days {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	days := make([]overtime.Day, len(r.days))
	copy(days, r.days)
	if err := setField(&days[idx], field, value); err != nil {
		return err
	}
	r.days = days

	return r.persistDaysLocked(ctx)
}

func setField(d *overtime.Day, field Field, value any) error {
	switch field {
	case FieldHoliday, FieldIgnored, FieldDidNotWork:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants a boolean", ErrInvalidFieldValue, field)
		}
		switch field {
		case FieldHoliday:
			d.Holiday = b
		case FieldIgnored:
			d.Ignored = b
		case FieldDidNotWork:
			d.DidNotWork = b
		}
	case FieldDate, FieldEntrada1, FieldSaida1, FieldEntrada2, FieldSaida2:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants a string", ErrInvalidFieldValue, field)
		}
		switch field {
		case FieldDate:
			d.Date = s
		case FieldEntrada1:
			d.Entrada1 = s
		case FieldSaida1:
			d.Saida1 = s
		case FieldEntrada2:
			d.Entrada2 = s
		case FieldSaida2:
			d.Saida2 = s
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// RemoveDay deletes the day with the matching id. Unknown ids are a no-op.
func (r *Registry) RemoveDay(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	days := make([]overtime.Day, 0, len(r.days))
	for _, d := range r.days {
		if d.ID != id {
			days = append(days, d)
		}
	}
	if len(days) == len(r.days) {
		return nil
	}
	r.days = days

	return r.persistDaysLocked(ctx)
}

// Reset clears the whole day collection.
func (r *Registry) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.days = nil
	return r.persistDaysLocked(ctx)
}

// =============================================================================
// IMPORT / EXPORT
// =============================================================================

// ExportAll serializes the full day collection in the pretty-printed backup
// format, suitable for a later ImportAll round-trip.
func (r *Registry) ExportAll() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return overtime.EncodeDays(r.days)
}

// ImportAll parses and normalizes a backup payload and, only if it is a day
// sequence, replaces the entire collection atomically. A parse failure
// leaves existing state untouched and is logged, not propagated as a fault.
func (r *Registry) ImportAll(ctx context.Context, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	days, err := overtime.DecodeDays(data)
	if err != nil {
		r.log.WithError(err).Warn("import discarded, day collection unchanged")
		return err
	}

	r.days = days
	if id := maxID(days); id > r.lastID {
		r.lastID = id
	}
	return r.persistDaysLocked(ctx)
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// SelectedMonth returns the currently selected month key.
func (r *Registry) SelectedMonth() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selectedMonth
}

// SelectMonth changes the selected month. Selection is presentation state
// and is not persisted.
func (r *Registry) SelectMonth(monthKey string) error {
	if _, err := time.Parse("2006-01", monthKey); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMonthKey, monthKey)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selectedMonth = monthKey
	return nil
}

// ToleranceEnabled reports whether the tolerance deadband applies.
func (r *Registry) ToleranceEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.toleranceEnabled
}

// SetToleranceEnabled flips the tolerance deadband and writes it through.
func (r *Registry) SetToleranceEnabled(ctx context.Context, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.toleranceEnabled = enabled
	if err := r.store.Set(ctx, KeyTolerance, []byte(strconv.FormatBool(enabled))); err != nil {
		return fmt.Errorf("persist tolerance flag: %w", err)
	}
	return nil
}

// TargetHours returns the configured target, or nil when no target is set.
func (r *Registry) TargetHours() *decimal.Decimal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.targetHours == nil {
		return nil
	}
	target := *r.targetHours
	return &target
}

// SetTargetHours sets or clears (nil) the target, writing it through. A
// cleared target removes the key so absence keeps meaning "unset".
func (r *Registry) SetTargetHours(ctx context.Context, hours *decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if hours == nil {
		r.targetHours = nil
		if err := r.store.Delete(ctx, KeyTargetHours); err != nil {
			return fmt.Errorf("clear target hours: %w", err)
		}
		return nil
	}

	target := *hours
	r.targetHours = &target
	if err := r.store.Set(ctx, KeyTargetHours, []byte(target.String())); err != nil {
		return fmt.Errorf("persist target hours: %w", err)
	}
	return nil
}

// =============================================================================
// QUERIES - Composed engine computations over a snapshot
// =============================================================================

// Days returns a snapshot of the full collection sorted by ascending date.
func (r *Registry) Days() []overtime.Day {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return overtime.SortedByDate(r.days)
}

// MonthDays returns the snapshot restricted to one month ("" means the
// selected month), sorted by ascending date.
func (r *Registry) MonthDays(monthKey string) []overtime.Day {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if monthKey == "" {
		monthKey = r.selectedMonth
	}
	return overtime.SortedByDate(overtime.FilterMonth(r.days, monthKey))
}

// DateCounts returns the duplicate-date annotation for the collection.
func (r *Registry) DateCounts() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return overtime.DateCounts(r.days)
}

// AvailableMonths returns the sorted unique month keys in the collection.
func (r *Registry) AvailableMonths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return overtime.AvailableMonths(r.days)
}

// Summary computes the four aggregate figures for one month ("" means the
// selected month).
func (r *Registry) Summary(monthKey string) overtime.Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if monthKey == "" {
		monthKey = r.selectedMonth
	}
	return overtime.Summarize(r.days, monthKey, r.toleranceEnabled)
}

// Distribution computes the positive-only monthly distribution.
func (r *Registry) Distribution() []overtime.MonthlyPoint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return overtime.MonthlyDistribution(r.days, r.toleranceEnabled)
}

// Forecast projects the configured target against the current total.
func (r *Registry) Forecast() overtime.Forecast {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := overtime.Summarize(r.days, r.selectedMonth, r.toleranceEnabled).TotalMinutes
	return overtime.Project(r.targetHours, total)
}

// MonthReport computes the per-day report rows and totals for one month
// ("" means the selected month).
func (r *Registry) MonthReport(monthKey string) ([]overtime.ReportRow, overtime.ReportTotals) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if monthKey == "" {
		monthKey = r.selectedMonth
	}
	return overtime.MonthReport(r.days, monthKey, r.toleranceEnabled)
}

// GeneralReport computes one totals row per month across the collection.
func (r *Registry) GeneralReport() []overtime.MonthTotalsRow {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return overtime.GeneralReport(r.days, r.toleranceEnabled)
}
