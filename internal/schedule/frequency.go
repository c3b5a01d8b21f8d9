package schedule

import (
	"fmt"
	"time"
)

// Frequency is the closed set of recurrence periods a rule can use.
// Unknown frequency strings are rejected by ParseFrequency at rule creation;
// nothing downstream of creation ever sees an invalid value.
type Frequency int8

const (
	FrequencyDaily Frequency = iota
	FrequencyWeekly
	FrequencyBiweekly
	FrequencyMonthly
	FrequencyQuarterly
	FrequencyYearly
)

var frequencyNames = map[Frequency]string{
	FrequencyDaily:     "daily",
	FrequencyWeekly:    "weekly",
	FrequencyBiweekly:  "biweekly",
	FrequencyMonthly:   "monthly",
	FrequencyQuarterly: "quarterly",
	FrequencyYearly:    "yearly",
}

// ParseFrequency converts a frequency name into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	for f, name := range frequencyNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown frequency %q", s)
}

func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Frequency(%d)", int8(f))
}

// Advance returns the occurrence date one period after d.
// Month and year steps use time.AddDate, so a day-of-month that does not
// exist in the target month rolls over (Jan 31 + 1 month = Mar 2/3).
func (f Frequency) Advance(d time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return d.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return d.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return d.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return d.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		return d.AddDate(0, 3, 0)
	case FrequencyYearly:
		return d.AddDate(1, 0, 0)
	}
	// Unreachable for values produced by ParseFrequency.
	return d
}
