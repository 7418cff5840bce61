package normalize

import "live-sports-service/internal/domain"

// sentinelID marks identifiers the upstream did not provide, so a
// normalized match never carries a null-shaped team or league.
const sentinelID = "-"

// Game normalizes a record from the v1 games schema family. The v1
// providers disagree on field names, so each field is resolved through
// a fixed alias order: teams from `teams` then `game.teams`, the home
// side from `home` then `localteam`, the away side from `away` then
// `visitors` then `visitorteam`, and scores as `{total}` objects or
// bare numbers. Missing values degrade to sentinels instead of errors.
func Game(item any) domain.Match {
	record := asMap(item)
	game := asMap(record["game"])

	teams := firstMap(record["teams"], game["teams"])
	home := firstMap(teams["home"], teams["localteam"])
	away := firstMap(teams["away"], teams["visitors"], teams["visitorteam"])

	scores := firstMap(record["scores"], record["score"], record["goals"])
	status := firstMap(record["status"], game["status"], record["time"])
	league := asMap(record["league"])

	date := asString(first(record["date"], game["date"]))

	return domain.Match{
		ID:     idOr(first(record["id"], game["id"]), sentinelID),
		Date:   date,
		Season: first(record["season"], league["season"], yearOf(date)),
		Venue:  venueName(first(record["venue"], game["venue"], game["arena"])),
		League: domain.League{
			ID:   idOr(league["id"], sentinelID),
			Name: stringOr(league["name"], "Unknown League"),
			Logo: league["logo"],
		},
		Status: domain.Status{
			Long:    stringOr(first(status["long"], status["current"]), "Unknown"),
			Short:   asString(status["short"]),
			Elapsed: first(status["elapsed"], status["minute"]),
		},
		Home: gameTeam(home, "Home"),
		Away: gameTeam(away, "Away"),
		Score: domain.Score{
			Home: scoreValue(scores["home"]),
			Away: scoreValue(scores["away"]),
		},
	}
}

func gameTeam(t map[string]any, fallbackName string) domain.Team {
	return domain.Team{
		ID:   idOr(t["id"], sentinelID),
		Name: stringOr(t["name"], fallbackName),
		Logo: t["logo"],
	}
}

// scoreValue resolves one side of a score, which arrives either as an
// object carrying a `total` or as a bare number. Anything else is null;
// absent scores must never read as zero.
func scoreValue(v any) any {
	if m := asMap(v); m != nil {
		if total, ok := m["total"]; ok && total != nil {
			return total
		}
		return nil
	}
	if isNumber(v) {
		return v
	}
	return nil
}

// venueName accepts a venue as a plain string or as an object exposing
// `name` or `fullName`.
func venueName(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	m := asMap(v)
	if name := asString(m["name"]); name != "" {
		return name
	}
	return asString(m["fullName"])
}
