package clock

import "time"

// Business timezone is UTC+2 with no daylight saving. All civil-day
// boundaries in the system are computed against this zone, never the
// host's local timezone.
var Civil = time.FixedZone("UTC+2", 2*60*60)

// Clock provides the current instant. Services take a Clock instead of
// calling time.Now so report generation is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// System reads the host clock and expresses it in the civil timezone.
type System struct{}

func (System) Now() time.Time {
	return time.Now().In(Civil)
}

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T.In(Civil)
}

// Midnight normalizes t to UTC midnight of its calendar date. Report
// dates are stored and compared in this form.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthKey returns the YYYY-MM key of the month containing t.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// WorkMinutes returns floor((checkOut-checkIn)/1m), or 0 when either
// endpoint is missing. The result is not clamped: checkOut before
// checkIn yields a negative value that surfaces clock skew in reports.
func WorkMinutes(checkIn, checkOut *time.Time) int {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	diff := checkOut.Sub(*checkIn)
	mins := int(diff / time.Minute)
	if diff < 0 && diff%time.Minute != 0 {
		mins--
	}
	return mins
}

const (
	operationalStartHour = 5
	operationalEndHour   = 20
)

// WithinOperationalWindow reports whether ts falls on the same UTC
// calendar date as now with a UTC hour in [05, 20). Gates the Pending
// classification only.
func WithinOperationalWindow(ts, now time.Time) bool {
	tu, nu := ts.UTC(), now.UTC()
	sameDay := tu.Year() == nu.Year() && tu.Month() == nu.Month() && tu.Day() == nu.Day()
	if !sameDay {
		return false
	}
	h := tu.Hour()
	return h >= operationalStartHour && h < operationalEndHour
}

// WithinCancelWindow reports whether now lies between 01:00 and 22:00
// civil time. A check-in without a checkout outside the operational
// window but inside this one lapses to Canceled.
func WithinCancelWindow(now time.Time) bool {
	c := now.In(Civil)
	start := time.Date(c.Year(), c.Month(), c.Day(), 1, 0, 0, 0, Civil)
	end := time.Date(c.Year(), c.Month(), c.Day(), 22, 0, 0, 0, Civil)
	return !c.Before(start) && !c.After(end)
}

// WithinLiveWindow reports whether now lies between 01:00 and 20:00
// civil time, the range in which an Absent without Reason user is shown
// as not having started the day yet on the live dashboard.
func WithinLiveWindow(now time.Time) bool {
	c := now.In(Civil)
	start := time.Date(c.Year(), c.Month(), c.Day(), 1, 0, 0, 0, Civil)
	end := time.Date(c.Year(), c.Month(), c.Day(), 20, 0, 0, 0, Civil)
	return !c.Before(start) && c.Before(end)
}
