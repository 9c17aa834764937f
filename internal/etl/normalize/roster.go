package normalize

import (
	"strconv"

	"github.com/gridirondata/ncaafb-etl/internal/domain/player"
	"github.com/gridirondata/ncaafb-etl/internal/domain/team"
	"github.com/gridirondata/ncaafb-etl/internal/etl/payload"
)

// AddRoster normalizes one full-roster payload into venue, conference,
// division, team, coach, and player rows. Missing sub-objects leave the
// team's foreign keys null; list entries that are not objects or lack
// an id are skipped silently.
func (b *Batch) AddRoster(doc payload.Document) {
	teamID := doc.StringAt("id")
	if teamID == nil || *teamID == "" {
		return
	}

	venueID := b.addVenue(doc)
	conferenceID := b.addConference(doc)
	divisionID := b.addDivision(doc)

	if b.firstSeen("teams", *teamID) {
		b.Teams = append(b.Teams, team.Team{
			ID:               *teamID,
			Market:           doc.StringAt("market"),
			Name:             doc.StringAt("name"),
			Alias:            doc.StringAt("alias"),
			Founded:          doc.IntAt("founded"),
			Mascot:           doc.StringAt("mascot"),
			FightSong:        doc.StringAt("fight_song"),
			ChampionshipsWon: doc.IntAt("championships_won"),
			ConferenceID:     conferenceID,
			DivisionID:       divisionID,
			VenueID:          venueID,
		})
	}

	for _, entry := range doc.ListAt("coaches") {
		coachDoc, ok := payload.AsDocument(entry)
		if !ok {
			continue
		}
		id := coachDoc.StringAt("id")
		if id == nil || !b.firstSeen("coaches", *id) {
			continue
		}
		b.Coaches = append(b.Coaches, team.Coach{
			ID:       *id,
			FullName: coachDoc.StringAt("full_name"),
			Position: coachDoc.StringAt("position"),
			TeamID:   teamID,
		})
	}

	for _, entry := range doc.ListAt("players") {
		playerDoc, ok := payload.AsDocument(entry)
		if !ok {
			continue
		}
		id := playerDoc.StringAt("id")
		if id == nil || !b.firstSeen("players", *id) {
			continue
		}
		b.Players = append(b.Players, player.Player{
			ID:          *id,
			FirstName:   playerDoc.StringAt("first_name"),
			LastName:    playerDoc.StringAt("last_name"),
			AbbrName:    playerDoc.StringAt("abbr_name"),
			BirthPlace:  playerDoc.StringAt("birth_place"),
			Position:    playerDoc.StringAt("position"),
			Height:      playerDoc.IntAt("height"),
			Weight:      playerDoc.IntAt("weight"),
			Status:      playerDoc.StringAt("status"),
			Eligibility: playerDoc.StringAt("eligibility"),
			TeamID:      teamID,
		})
	}
}

func (b *Batch) addVenue(doc payload.Document) *string {
	venue, ok := doc.DocAt("venue")
	if !ok {
		return nil
	}
	id := venue.StringAt("id")
	if id == nil {
		return nil
	}
	if b.firstSeen("venues", *id) {
		b.Venues = append(b.Venues, team.Venue{
			ID:        *id,
			Name:      venue.StringAt("name"),
			City:      venue.StringAt("city"),
			State:     venue.StringAt("state"),
			Country:   venue.StringAt("country"),
			Zip:       venue.StringAt("zip"),
			Address:   venue.StringAt("address"),
			Capacity:  venue.IntAt("capacity"),
			Surface:   venue.StringAt("surface"),
			RoofType:  venue.StringAt("roof_type"),
			Latitude:  coordinateAt(venue, "location", "lat"),
			Longitude: coordinateAt(venue, "location", "lng"),
		})
	}
	return id
}

func (b *Batch) addConference(doc payload.Document) *string {
	conference, ok := doc.DocAt("conference")
	if !ok {
		return nil
	}
	id := conference.StringAt("id")
	if id == nil {
		return nil
	}
	if b.firstSeen("conferences", *id) {
		b.Conferences = append(b.Conferences, team.Conference{
			ID:    *id,
			Name:  conference.StringAt("name"),
			Alias: conference.StringAt("alias"),
		})
	}
	return id
}

func (b *Batch) addDivision(doc payload.Document) *string {
	division, ok := doc.DocAt("division")
	if !ok {
		return nil
	}
	id := division.StringAt("id")
	if id == nil {
		return nil
	}
	if b.firstSeen("divisions", *id) {
		b.Divisions = append(b.Divisions, team.Division{
			ID:    *id,
			Name:  division.StringAt("name"),
			Alias: division.StringAt("alias"),
		})
	}
	return id
}

// coordinateAt reads a latitude or longitude that providers encode as
// either a number or a string.
func coordinateAt(doc payload.Document, path ...string) *float64 {
	if f := doc.FloatAt(path...); f != nil {
		return f
	}
	s := doc.StringAt(path...)
	if s == nil {
		return nil
	}
	parsed, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
