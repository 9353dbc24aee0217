package footballdata

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID       int64     `json:"id"`
	UTCDate  string    `json:"utcDate"`
	Status   string    `json:"status"`
	Stage    string    `json:"stage"`
	Matchday int       `json:"matchday"`
	HomeTeam teamItem  `json:"homeTeam"`
	AwayTeam teamItem  `json:"awayTeam"`
	Score    scoreItem `json:"score"`
}

type teamItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

type scoreItem struct {
	Winner   string       `json:"winner"`
	FullTime scorePairRef `json:"fullTime"`
	HalfTime scorePairRef `json:"halfTime"`
}

type scorePairRef struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
