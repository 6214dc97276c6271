package booking

import (
	"fmt"
	"sort"
	"time"
)

// PatternMode selects how a recurring series' dates are produced.
type PatternMode string

const (
	// ModeAuto steps forward from a start date by a fixed number of months.
	ModeAuto PatternMode = "auto"
	// ModeCustom uses dates hand-picked one at a time.
	ModeCustom PatternMode = "custom"
)

// Pattern is a tagged description of a recurring series. Exactly one of the
// two shapes is meaningful: Auto carries StartDate and IntervalMonths, Custom
// carries Dates. Constructors keep the unused fields zero so invalid
// combinations cannot be built.
type Pattern struct {
	Mode           PatternMode
	StartDate      time.Time
	IntervalMonths int
	Dates          []time.Time
}

// AutoPattern builds an auto-monthly pattern.
func AutoPattern(startDate time.Time, intervalMonths int) Pattern {
	return Pattern{
		Mode:           ModeAuto,
		StartDate:      DateOnly(startDate),
		IntervalMonths: intervalMonths,
	}
}

// CustomPattern builds a hand-picked pattern.
func CustomPattern(dates []time.Time) Pattern {
	normalized := make([]time.Time, len(dates))
	for i, d := range dates {
		normalized[i] = DateOnly(d)
	}
	return Pattern{
		Mode:  ModeCustom,
		Dates: normalized,
	}
}

// Tag is the short label stamped on every booking of the group.
func (p Pattern) Tag() string {
	if p.Mode == ModeAuto {
		return fmt.Sprintf("auto-monthly-%d", p.IntervalMonths)
	}
	return "custom"
}

// DateOnly strips the clock portion, normalizing to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GenerateAutoDates produces count dates where date[i] is the start date
// plus i*intervalMonths calendar months. Month addition follows time.AddDate
// normalization: a Jan 31 start with a one month interval yields Mar 3 in a
// non-leap year because February is shorter. That quirk matches how the
// booking form has always behaved, so it is kept rather than clamped.
func GenerateAutoDates(startDate time.Time, intervalMonths, count int) []time.Time {
	start := DateOnly(startDate)
	dates := make([]time.Time, count)
	for i := 0; i < count; i++ {
		dates[i] = start.AddDate(0, i*intervalMonths, 0)
	}
	return dates
}

// ValidationResult collects the human-readable problems with a proposed
// recurring date list.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// ValidateRecurringDates checks a date list against the series frequency:
// the list must have exactly frequency entries, contain no duplicates, and
// no date may be before today. Order does not matter; sequencing is assigned
// by sorted order at creation time.
func ValidateRecurringDates(dates []time.Time, frequency int, today time.Time) ValidationResult {
	var errs []string

	if len(dates) != frequency {
		errs = append(errs, fmt.Sprintf("must select exactly %d dates (have %d)", frequency, len(dates)))
	}

	seen := make(map[string]bool, len(dates))
	todayOnly := DateOnly(today)
	for _, d := range dates {
		day := DateOnly(d)
		key := day.Format("2006-01-02")
		if seen[key] {
			errs = append(errs, fmt.Sprintf("duplicate date %s", key))
			continue
		}
		seen[key] = true

		if day.Before(todayOnly) {
			errs = append(errs, fmt.Sprintf("date %s is in the past", key))
		}
	}

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// SortedDates returns an ascending copy of dates. Sequence numbers 1..N for a
// recurring group always follow this order regardless of input order.
func SortedDates(dates []time.Time) []time.Time {
	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	return sorted
}

// Selection is the working state for assembling a recurring series before
// submission: a frequency plus either auto-generation inputs or a hand-picked
// date set. It mirrors the mode toggle on the booking form.
type Selection struct {
	Frequency      int
	Mode           PatternMode
	StartDate      time.Time
	IntervalMonths int
	dates          []time.Time
}

// NewSelection starts in auto mode with no start date.
func NewSelection(frequency int) *Selection {
	return &Selection{
		Frequency:      frequency,
		Mode:           ModeAuto,
		IntervalMonths: 1,
	}
}

// UseAuto switches to auto mode and regenerates immediately if a start date
// is already set.
func (s *Selection) UseAuto(startDate time.Time, intervalMonths int) {
	s.Mode = ModeAuto
	s.StartDate = DateOnly(startDate)
	s.IntervalMonths = intervalMonths
	if !s.StartDate.IsZero() {
		s.dates = GenerateAutoDates(s.StartDate, s.IntervalMonths, s.Frequency)
	} else {
		s.dates = nil
	}
}

// UseCustom switches to custom mode. Any auto-generated dates are cleared;
// the user picks each date from scratch.
func (s *Selection) UseCustom() {
	s.Mode = ModeCustom
	s.StartDate = time.Time{}
	s.dates = nil
}

// Toggle adds the date to a custom selection, or removes it if already
// present. Adding beyond the frequency cap is refused. Returns whether the
// date is selected after the call.
func (s *Selection) Toggle(date time.Time) bool {
	day := DateOnly(date)
	for i, d := range s.dates {
		if d.Equal(day) {
			s.dates = append(s.dates[:i], s.dates[i+1:]...)
			return false
		}
	}
	if len(s.dates) >= s.Frequency {
		return false
	}
	s.dates = append(s.dates, day)
	return true
}

// Dates returns a copy of the currently selected dates in insertion order.
func (s *Selection) Dates() []time.Time {
	out := make([]time.Time, len(s.dates))
	copy(out, s.dates)
	return out
}

// Pattern freezes the selection into the tagged form used for submission.
func (s *Selection) Pattern() Pattern {
	if s.Mode == ModeAuto {
		return AutoPattern(s.StartDate, s.IntervalMonths)
	}
	return CustomPattern(s.dates)
}

// ResolveDates turns a pattern into the ordered date list for the series,
// validating it against the frequency. Auto patterns generate their dates;
// custom patterns validate the hand-picked set. The returned dates are
// sorted ascending, ready for sequence assignment.
func ResolveDates(p Pattern, frequency int, today time.Time) ([]time.Time, ValidationResult) {
	var dates []time.Time
	switch p.Mode {
	case ModeAuto:
		dates = GenerateAutoDates(p.StartDate, p.IntervalMonths, frequency)
	default:
		dates = p.Dates
	}

	result := ValidateRecurringDates(dates, frequency, today)
	if !result.Valid {
		return nil, result
	}
	return SortedDates(dates), result
}
