package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// intervalRegex accepts composite durations such as "1h30m", "1w2d3h4m5s"
// or "2 days 6 hours". Units must appear in strictly descending order of
// magnitude; each amount may be separated from its unit by a single space.
var intervalRegex = regexp.MustCompile(
	`^((?P<weeks>\d+) ?(weeks|week|W|w) ?)?` +
		`((?P<days>\d+) ?(days|day|D|d) ?)?` +
		`((?P<hours>\d+) ?(hours|hour|H|h) ?)?` +
		`((?P<minutes>\d+) ?(minutes|minute|M|m) ?)?` +
		`((?P<seconds>\d+) ?(seconds|second|S|s))?$`,
)

var unitDurations = map[string]time.Duration{
	"weeks":   7 * 24 * time.Hour,
	"days":    24 * time.Hour,
	"hours":   time.Hour,
	"minutes": time.Minute,
	"seconds": time.Second,
}

// ParseInterval converts an interval string into a duration.
//
// The following symbols are supported for each unit of time:
//   - weeks: w, W, week, weeks
//   - days: d, D, day, days
//   - hours: H, h, hour, hours
//   - minutes: M, m, minute, minutes
//   - seconds: S, s, second, seconds
//
// The units need to be provided in descending order of magnitude.
func ParseInterval(interval string) (time.Duration, error) {
	groups := intervalRegex.FindStringSubmatch(interval)
	if groups == nil {
		return 0, fmt.Errorf("invalid interval %q", interval)
	}

	var total time.Duration
	var matched bool
	for i, name := range intervalRegex.SubexpNames() {
		if name == "" || groups[i] == "" {
			continue
		}
		amount, err := strconv.Atoi(groups[i])
		if err != nil {
			return 0, fmt.Errorf("invalid interval %q: %w", interval, err)
		}
		total += time.Duration(amount) * unitDurations[name]
		matched = true
	}

	if !matched {
		return 0, fmt.Errorf("invalid interval %q", interval)
	}
	return total, nil
}
