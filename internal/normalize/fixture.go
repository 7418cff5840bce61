package normalize

import "live-sports-service/internal/domain"

// Fixture normalizes a record from the v3 fixture schema
// (fixture/league/teams/goals). The shape is fixed and well known, so
// resolution is direct: season falls back to the calendar year of the
// fixture date, venue stays empty when not provided, and goals pass
// through untouched so pre-game matches keep null scores.
func Fixture(item any) domain.Match {
	record := asMap(item)
	fixture := asMap(record["fixture"])
	league := asMap(record["league"])
	teams := asMap(record["teams"])
	goals := asMap(record["goals"])
	status := asMap(fixture["status"])

	date := asString(fixture["date"])

	return domain.Match{
		ID:     fixture["id"],
		Date:   date,
		Season: first(league["season"], yearOf(date)),
		Venue:  asString(asMap(fixture["venue"])["name"]),
		League: domain.League{
			ID:   league["id"],
			Name: asString(league["name"]),
			Logo: league["logo"],
		},
		Status: domain.Status{
			Long:    asString(status["long"]),
			Short:   asString(status["short"]),
			Elapsed: status["elapsed"],
		},
		Home: fixtureTeam(asMap(teams["home"])),
		Away: fixtureTeam(asMap(teams["away"])),
		Score: domain.Score{
			Home: goals["home"],
			Away: goals["away"],
		},
	}
}

func fixtureTeam(t map[string]any) domain.Team {
	return domain.Team{
		ID:   t["id"],
		Name: asString(t["name"]),
		Logo: t["logo"],
	}
}
