package dispatch

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"live-sports-service/internal/domain"
	"live-sports-service/internal/logging"
	"live-sports-service/internal/metrics"
	"live-sports-service/internal/normalize"
	"live-sports-service/internal/sports"
	"live-sports-service/internal/timeutil"
	"live-sports-service/internal/upstream"
)

const (
	defaultLast = 5
	minLast     = 1
)

// Params carries the decoded request parameters for one query.
type Params struct {
	Sport    string
	MatchID  string
	TeamID   string
	H2H      string
	Season   string
	League   string
	Last     int
	LiveOnly bool
}

// Fetcher abstracts the upstream client for testing.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) (any, error)
}

// Dispatcher is the single entry point for live-sports queries. It
// resolves the request intent, drives the upstream client through the
// sport's config, and shapes the normalized result. It is also the one
// boundary where upstream and parameter errors surface; the extractor
// and normalizers below it never fail.
type Dispatcher struct {
	registry *sports.Registry
	fetcher  Fetcher
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// New constructs a Dispatcher.
func New(registry *sports.Registry, fetcher Fetcher, logger *slog.Logger, recorder *metrics.Recorder) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		fetcher:  fetcher,
		logger:   logger,
		recorder: recorder,
	}
}

// Query resolves one of four mutually exclusive intents, in priority
// order: match detail, head-to-head, team recent matches, live/today
// feed. Every branch returns the uniform envelope; on error the
// envelope still carries the resolved sport and an empty response.
func (d *Dispatcher) Query(ctx context.Context, p Params) (domain.Envelope, error) {
	key, cfg := d.registry.Resolve(p.Sport)
	last := clampLast(p.Last)

	var (
		matches []domain.Match
		err     error
	)
	switch {
	case p.MatchID != "":
		matches, err = d.matchDetail(ctx, key, cfg, p.MatchID)
	case p.H2H != "":
		matches, err = d.headToHead(ctx, key, cfg, p.H2H, p.Season, last)
	case p.TeamID != "":
		matches, err = d.teamRecent(ctx, key, cfg, p.TeamID, p.Season, last)
	default:
		matches, err = d.feed(ctx, key, cfg, p.League, p.LiveOnly)
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	return domain.Envelope{Sport: key, Response: matches}, err
}

// matchDetail looks up a single match by its upstream id and returns
// the (typically single-element) list as-is.
func (d *Dispatcher) matchDetail(ctx context.Context, sport string, cfg sports.Config, matchID string) ([]domain.Match, error) {
	q := url.Values{}
	q.Set("id", matchID)

	payload, err := d.fetch(ctx, sport, buildURL(cfg.Endpoint, q))
	if err != nil {
		return nil, err
	}
	return normalizeAll(cfg, normalize.ExtractList(payload)), nil
}

// headToHead queries the head-to-head resource for a `teamA-teamB`
// pair. A value missing either id is a structural error, and a sport
// without h2h support fails before any upstream call is made.
func (d *Dispatcher) headToHead(ctx context.Context, sport string, cfg sports.Config, h2h, season string, last int) ([]domain.Match, error) {
	teamA, teamB, ok := splitH2H(h2h)
	if !ok {
		return nil, &MalformedParameterError{Param: "h2h", Value: h2h}
	}
	if !cfg.SupportsH2H {
		return nil, &UnsupportedCapabilityError{Sport: sport, Capability: "head-to-head"}
	}

	endpoint := cfg.Endpoint
	if cfg.Family == sports.FamilyFixture {
		endpoint += "/headtohead"
	}
	q := url.Values{}
	q.Set("h2h", teamA+"-"+teamB)
	if season != "" {
		q.Set("season", season)
	}

	payload, err := d.fetch(ctx, sport, buildURL(endpoint, q))
	if err != nil {
		return nil, err
	}
	matches := normalizeAll(cfg, normalize.ExtractList(payload))
	return truncate(matches, last), nil
}

// teamRecent fetches a team's most recent matches. This is the only
// multi-attempt strategy: some providers reject or ignore `last`
// combined with certain seasons, and a plain no-last query is the
// robust fallback. The first attempt yielding records wins; if every
// attempt comes back empty, the last attempt's error (if any) is
// raised — an empty successful response is not itself an error.
func (d *Dispatcher) teamRecent(ctx context.Context, sport string, cfg sports.Config, teamID, season string, last int) ([]domain.Match, error) {
	if season == "" {
		season = strconv.Itoa(d.registry.CurrentYear())
	}

	attempts := d.teamAttemptURLs(cfg, teamID, season, last)

	var lastErr error
	for _, attemptURL := range attempts {
		payload, err := d.fetch(ctx, sport, attemptURL)
		lastErr = err
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		raw := normalize.ExtractList(payload)
		if len(raw) == 0 {
			continue
		}
		matches := normalizeAll(cfg, raw)
		sortByDateDesc(matches)
		return truncate(matches, last), nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return []domain.Match{}, nil
}

func (d *Dispatcher) teamAttemptURLs(cfg sports.Config, teamID, season string, last int) []string {
	base := url.Values{}
	base.Set("team", teamID)
	base.Set("season", season)

	withoutLast := buildURL(cfg.Endpoint, base)
	if !cfg.SupportsLast {
		return []string{withoutLast}
	}

	withLast := url.Values{}
	withLast.Set("team", teamID)
	withLast.Set("season", season)
	withLast.Set("last", strconv.Itoa(last))
	return []string{buildURL(cfg.Endpoint, withLast), withoutLast}
}

// feed serves the live/today view. The league filter inspects raw
// provider records before normalization because the raw league-id
// fields differ in shape from the normalized league.id.
func (d *Dispatcher) feed(ctx context.Context, sport string, cfg sports.Config, league string, liveOnly bool) ([]domain.Match, error) {
	payload, err := d.fetch(ctx, sport, d.registry.LiveURL(cfg))
	if err != nil {
		return nil, err
	}

	raw := normalize.ExtractList(payload)
	if league != "" {
		filtered := raw[:0:0]
		for _, item := range raw {
			if rawLeagueID(item) == league {
				filtered = append(filtered, item)
			}
		}
		raw = filtered
	}

	matches := normalizeAll(cfg, raw)
	if liveOnly {
		live := matches[:0:0]
		for _, m := range matches {
			if m.Status.IsLive() {
				live = append(live, m)
			}
		}
		matches = live
	}
	return matches, nil
}

// fetch performs one upstream attempt and records its outcome.
func (d *Dispatcher) fetch(ctx context.Context, sport, rawURL string) (any, error) {
	start := time.Now()
	payload, err := d.fetcher.FetchJSON(ctx, rawURL)
	duration := time.Since(start)

	if d.recorder != nil {
		d.recorder.RecordUpstreamAttempt(sport, duration, err)
		if rl, ok := upstream.AsRateLimitError(err); ok {
			d.recorder.RecordRateLimit(sport, rl.RetryAfter)
		}
	}

	logger := logging.FromContext(ctx, d.logger)
	if err != nil {
		logging.Warn(logger, "upstream fetch failed",
			logging.FieldSport, sport, "url", rawURL, "error", err)
		return nil, err
	}
	logging.Info(logger, "upstream fetch complete",
		logging.FieldSport, sport, "url", rawURL,
		logging.FieldDurationMS, duration.Milliseconds())
	return payload, nil
}

func normalizeAll(cfg sports.Config, raw []any) []domain.Match {
	matches := make([]domain.Match, 0, len(raw))
	for _, item := range raw {
		matches = append(matches, cfg.Normalize(item))
	}
	return matches
}

// rawLeagueID resolves a raw record's league identifier from
// league.id, league.league_id, or a flat league_id, in that order.
func rawLeagueID(item any) string {
	record, _ := item.(map[string]any)
	if record == nil {
		return ""
	}
	if league, ok := record["league"].(map[string]any); ok {
		if id := stringify(league["id"]); id != "" {
			return id
		}
		if id := stringify(league["league_id"]); id != "" {
			return id
		}
	}
	return stringify(record["league_id"])
}

// stringify renders a JSON identifier for string comparison. Decoded
// numbers are float64, so whole values print without a fraction.
func stringify(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	default:
		return ""
	}
}

func splitH2H(value string) (string, string, bool) {
	teamA, teamB, found := strings.Cut(value, "-")
	if !found || teamA == "" || teamB == "" {
		return "", "", false
	}
	return teamA, teamB, true
}

func sortByDateDesc(matches []domain.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matchTime(matches[i]).After(matchTime(matches[j]))
	})
}

// matchTime parses a match date for ordering; unparseable dates sort
// last.
func matchTime(m domain.Match) time.Time {
	if t, err := time.Parse(time.RFC3339, m.Date); err == nil {
		return t
	}
	if t, err := timeutil.ParseDate(m.Date); err == nil {
		return t
	}
	return time.Time{}
}

func truncate(matches []domain.Match, limit int) []domain.Match {
	if len(matches) > limit {
		return matches[:limit]
	}
	return matches
}

func clampLast(last int) int {
	if last == 0 {
		return defaultLast
	}
	if last < minLast {
		return minLast
	}
	return last
}

func buildURL(endpoint string, q url.Values) string {
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}
