package utils

import (
	"fmt"
	"strings"
	"time"
)

// Layouts seen on Amadeus departure/arrival timestamps. The offers API
// emits local wall-clock times without a zone offset.
var flightTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseFlightTime parses an upstream departure/arrival timestamp
func ParseFlightTime(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range flightTimeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", value)
}
