package domain

import "strings"

// liveStatusCodes are the short status codes the upstreams use for
// matches currently being played, across the v3 and v1 schemas.
var liveStatusCodes = map[string]struct{}{
	"LIVE": {},
	"1H":   {},
	"2H":   {},
	"3H":   {},
	"4H":   {},
	"OT":   {},
	"HT":   {},
	"Q1":   {},
	"Q2":   {},
	"Q3":   {},
	"Q4":   {},
	"ST":   {},
	"P1":   {},
	"P2":   {},
	"P3":   {},
}

// IsLive reports whether the status describes a match in play.
func (s Status) IsLive() bool {
	code := s.Short
	if code == "" {
		code = s.Long
	}
	if _, ok := liveStatusCodes[strings.ToUpper(code)]; ok {
		return true
	}
	long := strings.ToLower(s.Long)
	return strings.Contains(long, "live") || strings.Contains(long, "in play")
}
