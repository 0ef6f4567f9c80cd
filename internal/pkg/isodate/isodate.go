// Package isodate is the canonical date codec for the API surface.
// Every rendered instant is ISO-8601 in UTC with millisecond precision,
// regardless of the zone the value was stored or submitted in.
package isodate

import (
	"time"

	"parkspot/internal/pkg/errs"
)

// Layout is the wire format for all rendered dates.
const Layout = "2006-01-02T15:04:05.000Z"

var ErrInvalidDate = errs.New("invalid date value")

// Format renders t in UTC, truncated to milliseconds.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Parse accepts any RFC 3339 instant, with or without fractional seconds.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errs.Mark(err, ErrInvalidDate)
	}
	return t, nil
}
