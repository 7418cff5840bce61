package testutil

import "time"

// NowAt returns a clock pinned to one instant, for injecting into the
// sport registry so "today" and the season year are deterministic.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustParseRFC3339 parses an RFC3339 timestamp or panics. Test-only.
func MustParseRFC3339(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
