package attendance

import "time"

// Company branches with distinct weekend rules.
const (
	BranchZayed      = "zayed"
	BranchAlexandria = "alexandria"
)

var branchHolidays = map[string][]time.Weekday{
	BranchZayed:      {time.Friday, time.Saturday},
	BranchAlexandria: {time.Friday},
}

// ApplyHoliday overwrites the computed status with Holiday when the
// date's weekday is in the branch's holiday set. The overlay wins over
// every classifier outcome, Completed included.
func ApplyHoliday(s Status, branch string, date time.Time) Status {
	for _, wd := range branchHolidays[branch] {
		if date.UTC().Weekday() == wd {
			return StatusHoliday
		}
	}
	return s
}
