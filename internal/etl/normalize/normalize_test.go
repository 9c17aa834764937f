package normalize

import (
	"testing"

	"github.com/gridirondata/ncaafb-etl/internal/etl/payload"
)

func rosterDoc(teamID string) payload.Document {
	return payload.Document{
		"id":     teamID,
		"market": "Alabama",
		"name":   "Crimson Tide",
		"venue": map[string]any{
			"id":       "venue-1",
			"name":     "Bryant-Denny Stadium",
			"capacity": float64(100077),
			"location": map[string]any{
				"lat": "33.208",
				"lng": "-87.550",
			},
		},
		"conference": map[string]any{"id": "conf-1", "name": "SEC"},
		"division":   map[string]any{"id": "div-1", "name": "FBS"},
		"coaches": []any{
			map[string]any{"id": "coach-1", "full_name": "Head Coach", "position": "Head Coach"},
		},
		"players": []any{
			map[string]any{"id": "player-1", "first_name": "A", "position": "QB"},
			map[string]any{"id": "player-2", "first_name": "B", "position": "RB"},
			map[string]any{"first_name": "no-id"},
			"not-an-object",
		},
	}
}

func TestAddRosterNormalizesAllRelations(t *testing.T) {
	b := NewBatch()
	b.AddRoster(rosterDoc("team-1"))

	if len(b.Teams) != 1 || len(b.Venues) != 1 || len(b.Conferences) != 1 || len(b.Divisions) != 1 {
		t.Fatalf("unexpected relation counts: teams=%d venues=%d conferences=%d divisions=%d",
			len(b.Teams), len(b.Venues), len(b.Conferences), len(b.Divisions))
	}
	if len(b.Coaches) != 1 || len(b.Players) != 2 {
		t.Fatalf("unexpected coaches=%d players=%d", len(b.Coaches), len(b.Players))
	}

	tm := b.Teams[0]
	if tm.VenueID == nil || *tm.VenueID != "venue-1" {
		t.Fatalf("expected venue FK, got %v", tm.VenueID)
	}
	if tm.ConferenceID == nil || *tm.ConferenceID != "conf-1" {
		t.Fatalf("expected conference FK, got %v", tm.ConferenceID)
	}

	v := b.Venues[0]
	if v.Latitude == nil || *v.Latitude != 33.208 {
		t.Fatalf("expected string coordinate parsed, got %v", v.Latitude)
	}
	if v.Capacity == nil || *v.Capacity != 100077 {
		t.Fatalf("expected capacity, got %v", v.Capacity)
	}

	for _, p := range b.Players {
		if p.TeamID == nil || *p.TeamID != "team-1" {
			t.Fatalf("expected player team FK team-1, got %v", p.TeamID)
		}
	}
}

func TestAddRosterSharedVenueDeDuplicated(t *testing.T) {
	b := NewBatch()
	first := rosterDoc("team-1")
	second := rosterDoc("team-2")
	second["players"] = []any{map[string]any{"id": "player-3"}}
	second["coaches"] = []any{map[string]any{"id": "coach-2"}}

	b.AddRoster(first)
	b.AddRoster(second)

	if len(b.Venues) != 1 {
		t.Fatalf("expected shared venue to appear once, got %d", len(b.Venues))
	}
	if len(b.Teams) != 2 {
		t.Fatalf("expected both teams, got %d", len(b.Teams))
	}
	for _, tm := range b.Teams {
		if tm.VenueID == nil || *tm.VenueID != "venue-1" {
			t.Fatalf("both teams should reference the shared venue, got %v", tm.VenueID)
		}
	}
}

func TestAddRosterIdempotentWithinBatch(t *testing.T) {
	b := NewBatch()
	b.AddRoster(rosterDoc("team-1"))
	b.AddRoster(rosterDoc("team-1"))

	if len(b.Teams) != 1 || len(b.Players) != 2 || len(b.Coaches) != 1 || len(b.Venues) != 1 {
		t.Fatalf("expected re-normalizing the same payload to add nothing: teams=%d players=%d coaches=%d venues=%d",
			len(b.Teams), len(b.Players), len(b.Coaches), len(b.Venues))
	}
}

func TestAddRosterMissingSubObjects(t *testing.T) {
	b := NewBatch()
	b.AddRoster(payload.Document{"id": "team-9", "market": "Army"})

	if len(b.Teams) != 1 {
		t.Fatalf("expected team row, got %d", len(b.Teams))
	}
	tm := b.Teams[0]
	if tm.VenueID != nil || tm.ConferenceID != nil || tm.DivisionID != nil {
		t.Fatalf("expected null FKs for missing sub-objects, got %+v", tm)
	}
	if len(b.Venues) != 0 {
		t.Fatalf("expected no venue row, got %d", len(b.Venues))
	}
}

func TestAddRosterSkipsMissingTeamID(t *testing.T) {
	b := NewBatch()
	b.AddRoster(payload.Document{"market": "Nowhere"})
	if len(b.Teams) != 0 || len(b.Players) != 0 {
		t.Fatal("roster without a team id must contribute nothing")
	}
}

func profileDoc() payload.Document {
	return payload.Document{
		"id":   "player-1",
		"team": map[string]any{"id": "T2"},
		"seasons": []any{
			map[string]any{
				"id": "season-2023",
				"teams": []any{
					map[string]any{
						"id": "T1",
						"statistics": map[string]any{
							"games_played": float64(12),
							"rushing":      map[string]any{"yards": float64(800), "touchdowns": float64(7)},
						},
					},
				},
			},
			map[string]any{
				"id": "season-2024",
				"teams": []any{
					map[string]any{
						"id": "T2",
						"statistics": map[string]any{
							"games_played": float64(13),
							"games_started": float64(13),
							"rushing":       map[string]any{"yards": float64(1100), "touchdowns": float64(11)},
							"receiving":     map[string]any{"yards": float64(220), "touchdowns": float64(2)},
							"kick_returns":  map[string]any{"yards": float64(90)},
							"fumbles":       map[string]any{"fumbles": float64(3)},
						},
					},
				},
			},
		},
	}
}

func TestAddProfileCurrentTeamPolicy(t *testing.T) {
	b := NewBatch()
	b.AddProfile(profileDoc(), PolicyCurrentTeam)

	if len(b.Statistics) != 2 {
		t.Fatalf("expected one row per season, got %d", len(b.Statistics))
	}

	// Season on the old team T1 does not match the current team T2, so
	// its row carries null stats.
	old := b.Statistics[0]
	if old.SeasonID == nil || *old.SeasonID != "season-2023" {
		t.Fatalf("unexpected season id %v", old.SeasonID)
	}
	if old.GamesPlayed != nil || old.RushingYards != nil {
		t.Fatalf("expected null stats for non-matching season, got %+v", old)
	}

	current := b.Statistics[1]
	if current.TeamID == nil || *current.TeamID != "T2" {
		t.Fatalf("expected current team id, got %v", current.TeamID)
	}
	if current.RushingYards == nil || *current.RushingYards != 1100 {
		t.Fatalf("expected rushing yards 1100, got %v", current.RushingYards)
	}
	if current.Fumbles == nil || *current.Fumbles != 3 {
		t.Fatalf("expected fumbles 3, got %v", current.Fumbles)
	}
}

func TestAddProfilePerSeasonPolicy(t *testing.T) {
	b := NewBatch()
	b.AddProfile(profileDoc(), PolicyPerSeasonTeam)

	if len(b.Statistics) != 2 {
		t.Fatalf("expected one row per season, got %d", len(b.Statistics))
	}
	old := b.Statistics[0]
	if old.TeamID == nil || *old.TeamID != "T1" {
		t.Fatalf("expected season team T1, got %v", old.TeamID)
	}
	if old.RushingYards == nil || *old.RushingYards != 800 {
		t.Fatalf("expected rushing yards 800, got %v", old.RushingYards)
	}
}

func TestAddProfileNoSeasons(t *testing.T) {
	b := NewBatch()
	b.AddProfile(payload.Document{
		"id":   "player-9",
		"team": map[string]any{"id": "T5"},
	}, PolicyCurrentTeam)

	if len(b.Statistics) != 1 {
		t.Fatalf("expected single null-stats row, got %d", len(b.Statistics))
	}
	row := b.Statistics[0]
	if row.SeasonID != nil || row.GamesPlayed != nil {
		t.Fatalf("expected null season and stats, got %+v", row)
	}
	if row.TeamID == nil || *row.TeamID != "T5" {
		t.Fatalf("expected current team id, got %v", row.TeamID)
	}
}

func TestAddProfileIdempotentWithinBatch(t *testing.T) {
	b := NewBatch()
	b.AddProfile(profileDoc(), PolicyCurrentTeam)
	b.AddProfile(profileDoc(), PolicyCurrentTeam)

	if len(b.Statistics) != 2 {
		t.Fatalf("expected re-normalizing the same profile to add nothing, got %d rows", len(b.Statistics))
	}

	noSeasons := payload.Document{"id": "player-9", "team": map[string]any{"id": "T5"}}
	b.AddProfile(noSeasons, PolicyCurrentTeam)
	b.AddProfile(noSeasons, PolicyCurrentTeam)
	if len(b.Statistics) != 3 {
		t.Fatalf("expected a single null-stats row per player, got %d rows", len(b.Statistics))
	}
}

func TestParseTeamMatchPolicy(t *testing.T) {
	if p, err := ParseTeamMatchPolicy(""); err != nil || p != PolicyCurrentTeam {
		t.Fatalf("expected default policy, got %v %v", p, err)
	}
	if p, err := ParseTeamMatchPolicy("Per-Season"); err != nil || p != PolicyPerSeasonTeam {
		t.Fatalf("expected per-season policy, got %v %v", p, err)
	}
	if _, err := ParseTeamMatchPolicy("bogus"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestAddSeasons(t *testing.T) {
	b := NewBatch()
	doc := payload.Document{
		"seasons": []any{
			map[string]any{
				"id":         "season-2024",
				"year":       float64(2024),
				"start_date": "2024-08-24",
				"end_date":   "2025-01-20",
				"status":     "closed",
				"type":       map[string]any{"code": "REG"},
			},
			map[string]any{"id": "season-2024"},
			map[string]any{"year": float64(2025)},
		},
	}
	b.AddSeasons(doc)

	if len(b.Seasons) != 1 {
		t.Fatalf("expected one season after de-dup and id filtering, got %d", len(b.Seasons))
	}
	s := b.Seasons[0]
	if s.Year == nil || *s.Year != 2024 || s.TypeCode == nil || *s.TypeCode != "REG" {
		t.Fatalf("unexpected season %+v", s)
	}
}

func TestExtractTeamIDs(t *testing.T) {
	doc := payload.Document{
		"divisions": []any{
			map[string]any{
				"conferences": []any{
					map[string]any{"teams": []any{
						map[string]any{"id": "t1"},
						map[string]any{"id": "t2"},
					}},
					map[string]any{"teams": []any{
						map[string]any{"id": "t2"},
						map[string]any{"name": "no-id"},
					}},
				},
			},
		},
	}

	ids := ExtractTeamIDs(doc)
	if len(ids) != 2 || ids[0] != "t1" || ids[1] != "t2" {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestAddRankings(t *testing.T) {
	b := NewBatch()
	doc := payload.Document{
		"id":             "poll-ap",
		"name":           "AP Top 25",
		"week":           float64(3),
		"effective_time": "2025-09-01T12:00:00+00:00",
		"rankings": []any{
			map[string]any{
				"id": "team-1", "rank": float64(1), "prev_rank": float64(2),
				"points": float64(1550), "fp_votes": float64(48),
				"wins": float64(3), "losses": float64(0), "ties": float64(0),
			},
			map[string]any{"rank": float64(2)},
		},
	}
	b.AddRankings(doc, "season-2025")

	if len(b.Rankings) != 1 {
		t.Fatalf("expected entries without a team id skipped, got %d", len(b.Rankings))
	}
	r := b.Rankings[0]
	if r.SeasonID == nil || *r.SeasonID != "season-2025" {
		t.Fatalf("expected caller season id, got %v", r.SeasonID)
	}
	if r.EffectiveTime == nil || *r.EffectiveTime != "2025-09-01 12:00:00" {
		t.Fatalf("unexpected effective time %v", r.EffectiveTime)
	}
	if r.RankPosition == nil || *r.RankPosition != 1 || r.FpVotes == nil || *r.FpVotes != 48 {
		t.Fatalf("unexpected ranking row %+v", r)
	}
}

func TestAddRankingsIdempotentWithinBatch(t *testing.T) {
	b := NewBatch()
	doc := payload.Document{
		"id":   "poll-ap",
		"week": float64(3),
		"rankings": []any{
			map[string]any{"id": "team-1", "rank": float64(1)},
		},
	}
	b.AddRankings(doc, "season-2025")
	b.AddRankings(doc, "season-2025")

	if len(b.Rankings) != 1 {
		t.Fatalf("expected re-normalizing the same poll to add nothing, got %d rows", len(b.Rankings))
	}

	// A different week of the same poll is a distinct identity.
	doc["week"] = float64(4)
	b.AddRankings(doc, "season-2025")
	if len(b.Rankings) != 2 {
		t.Fatalf("expected a new week to add a row, got %d rows", len(b.Rankings))
	}
}

func TestReformatTimestamp(t *testing.T) {
	in := "2025-09-01T12:00:00+00:00"
	got := ReformatTimestamp(&in)
	if got == nil || *got != "2025-09-01 12:00:00" {
		t.Fatalf("unexpected reformat result %v", got)
	}

	// Offsets are preserved as wall-clock text, not converted.
	offset := "2025-09-01T12:00:00-05:00"
	got = ReformatTimestamp(&offset)
	if got == nil || *got != "2025-09-01 12:00:00" {
		t.Fatalf("expected no timezone conversion, got %v", got)
	}

	// Quoted or padded values are stripped before parsing.
	quoted := "\"2025-09-01T12:00:00+00:00\""
	got = ReformatTimestamp(&quoted)
	if got == nil || *got != "2025-09-01 12:00:00" {
		t.Fatalf("expected quoted timestamp reformatted, got %v", got)
	}
	padded := " 2025-09-01T12:00:00Z "
	got = ReformatTimestamp(&padded)
	if got == nil || *got != "2025-09-01 12:00:00" {
		t.Fatalf("expected padded timestamp reformatted, got %v", got)
	}

	if ReformatTimestamp(nil) != nil {
		t.Fatal("expected nil passthrough")
	}

	bad := "not-a-timestamp"
	if got := ReformatTimestamp(&bad); got == nil || *got != bad {
		t.Fatalf("expected unparseable value returned unchanged, got %v", got)
	}
}
