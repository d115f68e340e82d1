package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Tournament type strings as reported by the upstream API.
const (
	TournamentTypeOnline  = "Online"
	TournamentTypeOffline = "Offline"
	TournamentTypeHybrid  = "Online/Offline"
)

// Tournament represents a normalized tournament record
type Tournament struct {
	TournamentID string           `json:"tournament_id" csv:"tournament_id"`
	Name         string           `json:"name" csv:"name"`
	Pagename     string           `json:"pagename" csv:"pagename"`
	StartDate    *time.Time       `json:"startdate" csv:"startdate,omitempty"`
	EndDate      *time.Time       `json:"enddate" csv:"enddate,omitempty"`
	Tier         string           `json:"tier" csv:"tier"`
	Prizepool    *decimal.Decimal `json:"prizepool" csv:"prizepool,omitempty"`
	Location     string           `json:"location" csv:"location"`
	Type         string           `json:"type" csv:"type"`
	Game         string           `json:"game" csv:"game"`
}

// TournamentInfo is the per-match tournament context consumed by the
// feature engine: numeric tier (nil when the tier label is non-numeric),
// prizepool and event type.
type TournamentInfo struct {
	Tier      *int
	Prizepool *decimal.Decimal
	Type      string
}

// Info derives the feature-engine context from a tournament record
func (t *Tournament) Info() TournamentInfo {
	return TournamentInfo{
		Tier:      parseTier(t.Tier),
		Prizepool: t.Prizepool,
		Type:      t.Type,
	}
}

// parseTier converts a Liquipedia tier label to a numeric tier.
// Labels that are not plain integers ("Qualifier", "Show Match") yield nil.
func parseTier(label string) *int {
	if label == "" {
		return nil
	}
	tier, err := strconv.Atoi(label)
	if err != nil {
		return nil
	}
	return &tier
}
