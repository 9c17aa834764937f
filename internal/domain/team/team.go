package team

// Venue is a stadium referenced by one or more teams. Every attribute
// except the id is optional in provider payloads.
type Venue struct {
	ID        string   `db:"venue_id" json:"venue_id"`
	Name      *string  `db:"name" json:"name"`
	City      *string  `db:"city" json:"city"`
	State     *string  `db:"state" json:"state"`
	Country   *string  `db:"country" json:"country"`
	Zip       *string  `db:"zip" json:"zip"`
	Address   *string  `db:"address" json:"address"`
	Capacity  *int     `db:"capacity" json:"capacity"`
	Surface   *string  `db:"surface" json:"surface"`
	RoofType  *string  `db:"roof_type" json:"roof_type"`
	Latitude  *float64 `db:"latitude" json:"latitude"`
	Longitude *float64 `db:"longitude" json:"longitude"`
}

type Conference struct {
	ID    string  `db:"conference_id" json:"conference_id"`
	Name  *string `db:"name" json:"name"`
	Alias *string `db:"alias" json:"alias"`
}

type Division struct {
	ID    string  `db:"division_id" json:"division_id"`
	Name  *string `db:"name" json:"name"`
	Alias *string `db:"alias" json:"alias"`
}

// Team carries nullable foreign keys: a roster payload may omit the
// conference, division, or venue sub-object entirely.
type Team struct {
	ID               string  `db:"team_id" json:"team_id"`
	Market           *string `db:"market" json:"market"`
	Name             *string `db:"name" json:"name"`
	Alias            *string `db:"alias" json:"alias"`
	Founded          *int    `db:"founded" json:"founded"`
	Mascot           *string `db:"mascot" json:"mascot"`
	FightSong        *string `db:"fight_song" json:"fight_song"`
	ChampionshipsWon *int    `db:"championships_won" json:"championships_won"`
	ConferenceID     *string `db:"conference_id" json:"conference_id"`
	DivisionID       *string `db:"division_id" json:"division_id"`
	VenueID          *string `db:"venue_id" json:"venue_id"`
}

type Coach struct {
	ID       string  `db:"coach_id" json:"coach_id"`
	FullName *string `db:"full_name" json:"full_name"`
	Position *string `db:"position" json:"position"`
	TeamID   *string `db:"team_id" json:"team_id"`
}

var (
	VenueColumns = []string{
		"venue_id", "name", "city", "state", "country", "zip",
		"address", "capacity", "surface", "roof_type", "latitude", "longitude",
	}
	ConferenceColumns = []string{"conference_id", "name", "alias"}
	DivisionColumns   = []string{"division_id", "name", "alias"}
	TeamColumns       = []string{
		"team_id", "market", "name", "alias", "founded", "mascot",
		"fight_song", "championships_won", "conference_id", "division_id", "venue_id",
	}
	CoachColumns = []string{"coach_id", "full_name", "position", "team_id"}
)

func (v Venue) Row() []any {
	return []any{
		v.ID, v.Name, v.City, v.State, v.Country, v.Zip,
		v.Address, v.Capacity, v.Surface, v.RoofType, v.Latitude, v.Longitude,
	}
}

func (c Conference) Row() []any {
	return []any{c.ID, c.Name, c.Alias}
}

func (d Division) Row() []any {
	return []any{d.ID, d.Name, d.Alias}
}

func (t Team) Row() []any {
	return []any{
		t.ID, t.Market, t.Name, t.Alias, t.Founded, t.Mascot,
		t.FightSong, t.ChampionshipsWon, t.ConferenceID, t.DivisionID, t.VenueID,
	}
}

func (c Coach) Row() []any {
	return []any{c.ID, c.FullName, c.Position, c.TeamID}
}
