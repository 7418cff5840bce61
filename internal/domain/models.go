package domain

// Team is the normalized team shape shared by every sport.
// IDs keep whatever type the upstream used (number or string),
// and Logo is null when the provider has none.
type Team struct {
	ID   any    `json:"id"`
	Name string `json:"name"`
	Logo any    `json:"logo"`
}

// League identifies the competition a match belongs to.
type League struct {
	ID   any    `json:"id"`
	Name string `json:"name"`
	Logo any    `json:"logo"`
}

// Status captures the lifecycle of a match. Elapsed is minutes or
// periods elapsed and null when the match is not in play.
type Status struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed any    `json:"elapsed"`
}

// Score holds the current points per side. Values stay null until the
// match has started or when the upstream omits them; they are never
// coerced to zero.
type Score struct {
	Home any `json:"home"`
	Away any `json:"away"`
}

// Match is the canonical match shape produced by normalization and
// exposed by the service. All fields are always serialized except
// Season and Venue, which drop out when no value could be derived.
type Match struct {
	ID     any    `json:"id"`
	Date   string `json:"date"`
	Season any    `json:"season,omitempty"`
	Venue  string `json:"venue,omitempty"`
	League League `json:"league"`
	Status Status `json:"status"`
	Home   Team   `json:"home"`
	Away   Team   `json:"away"`
	Score  Score  `json:"score"`
}

// Envelope is the uniform success payload returned by /api/live.
type Envelope struct {
	Sport    string  `json:"sport"`
	Response []Match `json:"response"`
}
