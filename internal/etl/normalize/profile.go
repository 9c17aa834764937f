package normalize

import (
	"fmt"
	"strings"

	"github.com/gridirondata/ncaafb-etl/internal/domain/player"
	"github.com/gridirondata/ncaafb-etl/internal/etl/payload"
)

// TeamMatchPolicy selects which team entry of a profile season supplies
// the statistics row.
type TeamMatchPolicy string

const (
	// PolicyCurrentTeam matches each season's nested team ids against
	// the player's current top-level team id. Seasons spent on another
	// team therefore produce null-stats rows.
	PolicyCurrentTeam TeamMatchPolicy = "current"

	// PolicyPerSeasonTeam takes the first team entry of each season, so
	// statistics follow the team the player was actually on.
	PolicyPerSeasonTeam TeamMatchPolicy = "per-season"
)

func ParseTeamMatchPolicy(raw string) (TeamMatchPolicy, error) {
	switch TeamMatchPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyCurrentTeam:
		return PolicyCurrentTeam, nil
	case PolicyPerSeasonTeam:
		return PolicyPerSeasonTeam, nil
	default:
		return "", fmt.Errorf("unknown team match policy %q", raw)
	}
}

// AddProfile normalizes one player profile into season statistics rows.
// A profile always yields at least one row: profiles without seasons
// and seasons without a matching team produce rows with null stats so
// the player's presence is still recorded.
func (b *Batch) AddProfile(doc payload.Document, policy TeamMatchPolicy) {
	playerID := doc.StringAt("id")
	if playerID == nil || *playerID == "" {
		return
	}
	currentTeamID := doc.StringAt("team", "id")

	seasons := doc.ListAt("seasons")
	if len(seasons) == 0 {
		if !b.firstSeen("player_statistics", statisticKey(*playerID, nil, currentTeamID)) {
			return
		}
		b.Statistics = append(b.Statistics, player.SeasonStatistic{
			PlayerID: *playerID,
			TeamID:   currentTeamID,
		})
		return
	}

	for _, entry := range seasons {
		seasonDoc, ok := payload.AsDocument(entry)
		if !ok {
			continue
		}
		seasonID := seasonDoc.StringAt("id")

		matched, matchedTeamID := matchSeasonTeam(seasonDoc, currentTeamID, policy)
		if matched == nil {
			if !b.firstSeen("player_statistics", statisticKey(*playerID, seasonID, currentTeamID)) {
				continue
			}
			b.Statistics = append(b.Statistics, player.SeasonStatistic{
				PlayerID: *playerID,
				TeamID:   currentTeamID,
				SeasonID: seasonID,
			})
			continue
		}
		if !b.firstSeen("player_statistics", statisticKey(*playerID, seasonID, matchedTeamID)) {
			continue
		}

		stats, _ := matched.DocAt("statistics")
		b.Statistics = append(b.Statistics, player.SeasonStatistic{
			PlayerID:            *playerID,
			TeamID:              matchedTeamID,
			SeasonID:            seasonID,
			GamesPlayed:         stats.IntAt("games_played"),
			GamesStarted:        stats.IntAt("games_started"),
			RushingYards:        stats.IntAt("rushing", "yards"),
			RushingTouchdowns:   stats.IntAt("rushing", "touchdowns"),
			ReceivingYards:      stats.IntAt("receiving", "yards"),
			ReceivingTouchdowns: stats.IntAt("receiving", "touchdowns"),
			KickReturnYards:     stats.IntAt("kick_returns", "yards"),
			Fumbles:             stats.IntAt("fumbles", "fumbles"),
		})
	}
}

// statisticKey is the composite identity of a statistics row: player,
// season, team.
func statisticKey(playerID string, seasonID, teamID *string) string {
	return playerID + "|" + keyPart(seasonID) + "|" + keyPart(teamID)
}

func matchSeasonTeam(seasonDoc payload.Document, currentTeamID *string, policy TeamMatchPolicy) (payload.Document, *string) {
	for _, entry := range seasonDoc.ListAt("teams") {
		teamDoc, ok := payload.AsDocument(entry)
		if !ok {
			continue
		}
		id := teamDoc.StringAt("id")
		if id == nil {
			continue
		}
		switch policy {
		case PolicyPerSeasonTeam:
			return teamDoc, id
		default:
			if currentTeamID != nil && *id == *currentTeamID {
				return teamDoc, id
			}
		}
	}
	return nil, nil
}
