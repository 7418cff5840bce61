package sports

import (
	"time"

	"live-sports-service/internal/domain"
	"live-sports-service/internal/normalize"
	"live-sports-service/internal/timeutil"
)

// Family selects which normalizer a sport's records go through.
type Family int

const (
	// FamilyFixture is the v3 fixture schema (football).
	FamilyFixture Family = iota
	// FamilyGame is the v1 games schema family (everything else).
	FamilyGame
)

// DefaultSport is the fail-open fallback for unknown sport keys.
const DefaultSport = "football"

// Config describes one sport's upstream: its endpoint, which
// normalizer family its records use, and its capability flags.
// Capabilities default to supported unless a sport opts out.
type Config struct {
	Endpoint     string
	Family       Family
	SupportsLast bool
	SupportsH2H  bool
}

// Normalize converts one raw upstream record into the canonical match
// shape using the sport's schema family.
func (c Config) Normalize(item any) domain.Match {
	if c.Family == FamilyFixture {
		return normalize.Fixture(item)
	}
	return normalize.Game(item)
}

// Registry is the process-wide, read-only table of sport configs. The
// clock and location are injected so "today" is computed against one
// fixed civil calendar and stays deterministic in tests.
type Registry struct {
	defaultKey string
	sports     map[string]Config
	now        func() time.Time
	loc        *time.Location
}

// NewRegistry builds the registry for the supported sports. An empty
// defaultKey falls back to football; a nil clock uses time.Now and a
// nil location UTC.
func NewRegistry(defaultKey string, loc *time.Location, now func() time.Time) *Registry {
	return NewRegistryWithTable(defaultKey, map[string]Config{
		"football": {
			Endpoint:     "https://v3.football.api-sports.io/fixtures",
			Family:       FamilyFixture,
			SupportsLast: true,
			SupportsH2H:  true,
		},
		"nba":      v1Config("https://v1.basketball.api-sports.io/games"),
		"mlb":      v1Config("https://v1.baseball.api-sports.io/games"),
		"nfl":      v1Config("https://v1.american-football.api-sports.io/games"),
		"hockey":   v1Config("https://v1.hockey.api-sports.io/games"),
		"handball": v1Config("https://v1.handball.api-sports.io/games"),
	}, loc, now)
}

// NewRegistryWithTable builds a registry over an explicit sport table.
// The default key should be present in the table; when it is not,
// unknown sport keys resolve to a zero config.
func NewRegistryWithTable(defaultKey string, table map[string]Config, loc *time.Location, now func() time.Time) *Registry {
	if defaultKey == "" {
		defaultKey = DefaultSport
	}
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Registry{
		defaultKey: defaultKey,
		now:        now,
		loc:        loc,
		sports:     table,
	}
}

func v1Config(endpoint string) Config {
	return Config{
		Endpoint:     endpoint,
		Family:       FamilyGame,
		SupportsLast: true,
		SupportsH2H:  true,
	}
}

// Resolve returns the config for a sport key, failing open to the
// default sport for unknown or empty keys. The canonical key actually
// resolved is returned alongside the config.
func (r *Registry) Resolve(key string) (string, Config) {
	if cfg, ok := r.sports[key]; ok {
		return key, cfg
	}
	return r.defaultKey, r.sports[r.defaultKey]
}

// Known reports whether a sport key is registered.
func (r *Registry) Known(key string) bool {
	_, ok := r.sports[key]
	return ok
}

// Keys lists the registered sport keys.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.sports))
	for k := range r.sports {
		keys = append(keys, k)
	}
	return keys
}

// Today returns the current date in the registry's civil calendar.
func (r *Registry) Today() string {
	return timeutil.FormatDate(r.now().In(r.loc))
}

// CurrentYear returns the current season fallback year in the
// registry's civil calendar.
func (r *Registry) CurrentYear() int {
	return r.now().In(r.loc).Year()
}

// LiveURL builds the live/today feed URL for a sport. The fixture
// provider supports a true all-live query; the v1 providers only query
// by date, so their live view is everything scheduled today.
func (r *Registry) LiveURL(cfg Config) string {
	if cfg.Family == FamilyFixture {
		return cfg.Endpoint + "?live=all"
	}
	return cfg.Endpoint + "?date=" + r.Today()
}
