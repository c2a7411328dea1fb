package core

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// ISOToMillis converts an ISO-8601 timestamp with offset, such as
// "2024-06-13T10:26:21+09:00", to epoch milliseconds.
func ISOToMillis(s string) (int64, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UnixMilli(), nil
}

// MillisToISO renders epoch milliseconds in the named IANA zone.
func MillisToISO(ms int64, zone string) (string, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", err
	}
	return time.UnixMilli(ms).In(loc).Format(isoLayout(ms)), nil
}

func isoLayout(ms int64) string {
	if ms%1000 != 0 {
		return "2006-01-02T15:04:05.000000-07:00"
	}
	return "2006-01-02T15:04:05-07:00"
}
