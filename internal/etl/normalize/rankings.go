package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/gridirondata/ncaafb-etl/internal/domain/season"
	"github.com/gridirondata/ncaafb-etl/internal/etl/payload"
)

// AddRankings normalizes one poll payload into ranking rows. The poll
// payload does not carry the season id, so the caller supplies the one
// it resolved during season discovery.
func (b *Batch) AddRankings(doc payload.Document, seasonID string) {
	pollID := doc.StringAt("id")
	if pollID == nil {
		pollID = doc.StringAt("poll", "id")
	}
	pollName := doc.StringAt("name")
	if pollName == nil {
		pollName = doc.StringAt("poll", "name")
	}
	week := doc.IntAt("week")
	effective := ReformatTimestamp(doc.StringAt("effective_time"))

	var seasonRef *string
	if seasonID != "" {
		seasonRef = &seasonID
	}
	weekPart := ""
	if week != nil {
		weekPart = strconv.Itoa(*week)
	}

	for _, entry := range doc.ListAt("rankings") {
		rankDoc, ok := payload.AsDocument(entry)
		if !ok {
			continue
		}
		teamID := rankDoc.StringAt("id")
		if teamID == nil {
			continue
		}
		// Ranking identity is (poll, season, week, team).
		if !b.firstSeen("rankings", keyPart(pollID)+"|"+keyPart(seasonRef)+"|"+weekPart+"|"+*teamID) {
			continue
		}
		b.Rankings = append(b.Rankings, season.Ranking{
			PollID:        pollID,
			PollName:      pollName,
			SeasonID:      seasonRef,
			Week:          week,
			EffectiveTime: effective,
			TeamID:        teamID,
			RankPosition:  rankDoc.IntAt("rank"),
			PrevRank:      rankDoc.IntAt("prev_rank"),
			Points:        rankDoc.IntAt("points"),
			FpVotes:       rankDoc.IntAt("fp_votes"),
			Wins:          rankDoc.IntAt("wins"),
			Losses:        rankDoc.IntAt("losses"),
			Ties:          rankDoc.IntAt("ties"),
		})
	}
}

// ReformatTimestamp rewrites an ISO-8601 timestamp as
// "YYYY-MM-DD HH:MM:SS" text. Surrounding whitespace and quote
// characters are stripped before parsing. The wall-clock value is kept
// as-is with no timezone conversion; nil passes through, and a value
// that does not parse is returned unchanged.
func ReformatTimestamp(value *string) *string {
	if value == nil {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, strings.Trim(*value, " \t\"'"))
	if err != nil {
		return value
	}
	out := parsed.Format("2006-01-02 15:04:05")
	return &out
}
