package season

type Season struct {
	ID        string  `db:"season_id" json:"season_id"`
	Year      *int    `db:"year" json:"year"`
	StartDate *string `db:"start_date" json:"start_date"`
	EndDate   *string `db:"end_date" json:"end_date"`
	Status    *string `db:"status" json:"status"`
	TypeCode  *string `db:"type_code" json:"type_code"`
}

// Ranking is one team entry of a weekly poll. EffectiveTime is stored
// as "YYYY-MM-DD HH:MM:SS" text, reformatted from the provider's
// ISO-8601 value without timezone conversion.
type Ranking struct {
	PollID        *string `db:"poll_id" json:"poll_id"`
	PollName      *string `db:"poll_name" json:"poll_name"`
	SeasonID      *string `db:"season_id" json:"season_id"`
	Week          *int    `db:"week" json:"week"`
	EffectiveTime *string `db:"effective_time" json:"effective_time"`
	TeamID        *string `db:"team_id" json:"team_id"`
	RankPosition  *int    `db:"rank_position" json:"rank_position"`
	PrevRank      *int    `db:"prev_rank" json:"prev_rank"`
	Points        *int    `db:"points" json:"points"`
	FpVotes       *int    `db:"fp_votes" json:"fp_votes"`
	Wins          *int    `db:"wins" json:"wins"`
	Losses        *int    `db:"losses" json:"losses"`
	Ties          *int    `db:"ties" json:"ties"`
}

var (
	SeasonColumns = []string{"season_id", "year", "start_date", "end_date", "status", "type_code"}

	RankingColumns = []string{
		"poll_id", "poll_name", "season_id", "week", "effective_time",
		"team_id", "rank_position", "prev_rank", "points", "fp_votes",
		"wins", "losses", "ties",
	}
)

func (s Season) Row() []any {
	return []any{s.ID, s.Year, s.StartDate, s.EndDate, s.Status, s.TypeCode}
}

func (r Ranking) Row() []any {
	return []any{
		r.PollID, r.PollName, r.SeasonID, r.Week, r.EffectiveTime,
		r.TeamID, r.RankPosition, r.PrevRank, r.Points, r.FpVotes,
		r.Wins, r.Losses, r.Ties,
	}
}
