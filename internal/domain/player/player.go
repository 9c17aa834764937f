package player

// Player is a roster entry. TeamID is the id of the roster the player
// was observed on.
type Player struct {
	ID          string  `db:"player_id" json:"player_id"`
	FirstName   *string `db:"first_name" json:"first_name"`
	LastName    *string `db:"last_name" json:"last_name"`
	AbbrName    *string `db:"abbr_name" json:"abbr_name"`
	BirthPlace  *string `db:"birth_place" json:"birth_place"`
	Position    *string `db:"position" json:"position"`
	Height      *int    `db:"height" json:"height"`
	Weight      *int    `db:"weight" json:"weight"`
	Status      *string `db:"status" json:"status"`
	Eligibility *string `db:"eligibility" json:"eligibility"`
	TeamID      *string `db:"team_id" json:"team_id"`
}

// SeasonStatistic is one season line from a player profile. All stat
// fields stay nil when the profile has no season entry for the player's
// team, so a player always produces at least one row.
type SeasonStatistic struct {
	PlayerID            string  `db:"player_id" json:"player_id"`
	TeamID              *string `db:"team_id" json:"team_id"`
	SeasonID            *string `db:"season_id" json:"season_id"`
	GamesPlayed         *int    `db:"games_played" json:"games_played"`
	GamesStarted        *int    `db:"games_started" json:"games_started"`
	RushingYards        *int    `db:"rushing_yards" json:"rushing_yards"`
	RushingTouchdowns   *int    `db:"rushing_touchdowns" json:"rushing_touchdowns"`
	ReceivingYards      *int    `db:"receiving_yards" json:"receiving_yards"`
	ReceivingTouchdowns *int    `db:"receiving_touchdowns" json:"receiving_touchdowns"`
	KickReturnYards     *int    `db:"kick_return_yards" json:"kick_return_yards"`
	Fumbles             *int    `db:"fumbles" json:"fumbles"`
}

var (
	PlayerColumns = []string{
		"player_id", "first_name", "last_name", "abbr_name", "birth_place",
		"position", "height", "weight", "status", "eligibility", "team_id",
	}
	SeasonStatisticColumns = []string{
		"player_id", "team_id", "season_id", "games_played", "games_started",
		"rushing_yards", "rushing_touchdowns", "receiving_yards",
		"receiving_touchdowns", "kick_return_yards", "fumbles",
	}
)

func (p Player) Row() []any {
	return []any{
		p.ID, p.FirstName, p.LastName, p.AbbrName, p.BirthPlace,
		p.Position, p.Height, p.Weight, p.Status, p.Eligibility, p.TeamID,
	}
}

func (s SeasonStatistic) Row() []any {
	return []any{
		s.PlayerID, s.TeamID, s.SeasonID, s.GamesPlayed, s.GamesStarted,
		s.RushingYards, s.RushingTouchdowns, s.ReceivingYards,
		s.ReceivingTouchdowns, s.KickReturnYards, s.Fumbles,
	}
}
