package aggregation

import (
	"fmt"
	"strings"
	"time"
)

// WeekStart is the user's week-start convention.
type WeekStart int

const (
	WeekStartsMonday WeekStart = iota
	WeekStartsSunday
)

func WeekStartFor(mondayStart bool) WeekStart {
	if mondayStart {
		return WeekStartsMonday
	}
	return WeekStartsSunday
}

const (
	weekKeyPrefix  = "week:"
	dayKeyPrefix   = "day:"
	monthKeyPrefix = "month:"
	yearKeyPrefix  = "year:"

	dateLayout = "2006-01-02"
)

// WeekKey returns the period key of the week bucket containing t,
// under the given week-start convention. The key encodes the first
// day of the week, e.g. "week:2026-08-24".
func WeekKey(t time.Time, ws WeekStart) string {
	return weekKeyPrefix + weekStartDay(t, ws).Format(dateLayout)
}

func weekStartDay(t time.Time, ws WeekStart) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	weekday := int(day.Weekday()) // Sunday == 0
	var back int
	if ws == WeekStartsMonday {
		back = (weekday + 6) % 7
	} else {
		back = weekday
	}
	return day.AddDate(0, 0, -back)
}

func DayKey(t time.Time) string {
	return dayKeyPrefix + t.UTC().Format(dateLayout)
}

func MonthKey(t time.Time) string {
	return monthKeyPrefix + t.UTC().Format("2006-01")
}

func YearKey(t time.Time) string {
	return yearKeyPrefix + t.UTC().Format("2006")
}

// WeekWindow returns the [from, to) time window of a week period key.
func WeekWindow(periodKey string) (from, to time.Time, err error) {
	dateStr, ok := strings.CutPrefix(periodKey, weekKeyPrefix)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("not a week period key: %s", periodKey)
	}
	from, err = time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse week period key %s: %w", periodKey, err)
	}
	return from, from.AddDate(0, 0, 7), nil
}

// WeekKeysInRange returns the keys of all week buckets overlapping
// the [from, to] range, oldest first.
func WeekKeysInRange(from, to time.Time, ws WeekStart) []string {
	var keys []string
	for day := weekStartDay(from, ws); !day.After(to.UTC()); day = day.AddDate(0, 0, 7) {
		keys = append(keys, weekKeyPrefix+day.Format(dateLayout))
	}
	return keys
}

// PeriodKeys are all the bucket keys one workout contributes to.
type PeriodKeys struct {
	Week    string
	Day     string
	Rollups []string
}

func PeriodKeysFor(completedAt time.Time, ws WeekStart) PeriodKeys {
	return PeriodKeys{
		Week: WeekKey(completedAt, ws),
		Day:  DayKey(completedAt),
		Rollups: []string{
			MonthKey(completedAt),
			YearKey(completedAt),
		},
	}
}
