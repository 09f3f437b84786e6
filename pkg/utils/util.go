package utils

import (
	"net/url"
)

// RedactDSN strips credentials from a connection string so it can be logged
func RedactDSN(dsn string) string {
	parsed, err := url.Parse(dsn)
	if err != nil || parsed.Host == "" {
		return "(redacted)"
	}

	if parsed.User != nil {
		parsed.User = url.User(parsed.User.Username())
	}

	return parsed.Redacted()
}
