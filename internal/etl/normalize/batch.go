package normalize

import (
	"github.com/gridirondata/ncaafb-etl/internal/domain/player"
	"github.com/gridirondata/ncaafb-etl/internal/domain/season"
	"github.com/gridirondata/ncaafb-etl/internal/domain/team"
	"github.com/gridirondata/ncaafb-etl/internal/etl/payload"
)

// Batch accumulates normalized rows across many payloads. Each keyed
// relation keeps a seen-set so the first occurrence of an id wins and
// later duplicates are dropped; statistics and rankings rows
// de-duplicate on their composite identity. De-duplication is
// batch-local: a new Batch starts with empty memory.
type Batch struct {
	Seasons     []season.Season
	Venues      []team.Venue
	Conferences []team.Conference
	Divisions   []team.Division
	Teams       []team.Team
	Coaches     []team.Coach
	Players     []player.Player
	Statistics  []player.SeasonStatistic
	Rankings    []season.Ranking

	seen map[string]map[string]struct{}
}

func NewBatch() *Batch {
	return &Batch{seen: make(map[string]map[string]struct{})}
}

// firstSeen records id under relation and reports whether this was its
// first occurrence in the batch.
func (b *Batch) firstSeen(relation, id string) bool {
	ids, ok := b.seen[relation]
	if !ok {
		ids = make(map[string]struct{})
		b.seen[relation] = ids
	}
	if _, exists := ids[id]; exists {
		return false
	}
	ids[id] = struct{}{}
	return true
}

// keyPart renders one nullable column of a composite seen-set key; nil
// renders empty so rows with missing ids still collide.
func keyPart(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// AddSeasons normalizes the league season list payload.
func (b *Batch) AddSeasons(doc payload.Document) {
	for _, entry := range doc.ListAt("seasons") {
		item, ok := payload.AsDocument(entry)
		if !ok {
			continue
		}
		id := item.StringAt("id")
		if id == nil || !b.firstSeen("seasons", *id) {
			continue
		}
		b.Seasons = append(b.Seasons, season.Season{
			ID:        *id,
			Year:      item.IntAt("year"),
			StartDate: item.StringAt("start_date"),
			EndDate:   item.StringAt("end_date"),
			Status:    item.StringAt("status"),
			TypeCode:  item.StringAt("type", "code"),
		})
	}
}

// ExtractTeamIDs walks the league hierarchy payload and collects every
// team id, in document order.
func ExtractTeamIDs(doc payload.Document) []string {
	var out []string
	seen := make(map[string]struct{})

	collect := func(conference payload.Document) {
		for _, rawTeam := range conference.ListAt("teams") {
			teamDoc, ok := payload.AsDocument(rawTeam)
			if !ok {
				continue
			}
			id := teamDoc.StringAt("id")
			if id == nil {
				continue
			}
			if _, dup := seen[*id]; dup {
				continue
			}
			seen[*id] = struct{}{}
			out = append(out, *id)
		}
	}

	for _, rawDivision := range doc.ListAt("divisions") {
		division, ok := payload.AsDocument(rawDivision)
		if !ok {
			continue
		}
		for _, rawConference := range division.ListAt("conferences") {
			conference, ok := payload.AsDocument(rawConference)
			if !ok {
				continue
			}
			collect(conference)
		}
	}

	// Some hierarchy payloads place conferences at the top level.
	for _, rawConference := range doc.ListAt("conferences") {
		conference, ok := payload.AsDocument(rawConference)
		if !ok {
			continue
		}
		collect(conference)
	}

	return out
}
