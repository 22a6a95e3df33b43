package main

import (
	"errors"
	"time"
)

// sinceTimeLayouts are the explicit date formats -t accepts, tried in
// order. Days and months don't need zero padding.
var sinceTimeLayouts = []string{
	"1/2/2006",
	"3:04 PM 1/2/2006",
	"2006-01-02",
}

// parseSinceTime interprets the -t/--since-time argument relative to
// now: the literal strings "today" and "yesterday" mean local midnight,
// everything else must match one of sinceTimeLayouts in local time.
func parseSinceTime(value string, now time.Time) (time.Time, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	switch value {
	case "today":
		return midnight, nil
	case "yesterday":
		return midnight.AddDate(0, 0, -1), nil
	}

	for _, layout := range sinceTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("Could not parse the provided time. Make sure it is one of the allowed formats.")
}
