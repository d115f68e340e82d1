package features

import (
	"math"
	"strconv"
	"time"

	"github.com/yourusername/esports-predictor/internal/models"
)

// Neutral fill values applied by FillDefaults after extraction.
const (
	neutralWinRate   = 0.5
	neutralDaysSince = 30
	fallbackTier     = 4
)

// FeatureColumns is the canonical model-input column order. CSV output,
// the training matrix and prediction requests all follow it.
var FeatureColumns = []string{
	"team1_elo", "team2_elo", "elo_diff",
	"team1_wr_all", "team2_wr_all", "wr_diff_all",
	"team1_wr_20", "team2_wr_20",
	"team1_wr_50", "team2_wr_50",
	"team1_form", "team2_form", "form_diff",
	"team1_streak", "team2_streak", "streak_diff",
	"h2h_wr",
	"team1_tier_wr", "team2_tier_wr",
	"team1_days_since_last", "team2_days_since_last",
	"tier", "log_prizepool",
	"is_online", "is_offline", "is_hybrid",
}

// FeatureRow is one extracted feature vector plus its label columns.
// Pointer fields are nil when the underlying statistic is undefined at
// extraction time; FillDefaults resolves them before the row is fed to
// a model or written to the matrix.
type FeatureRow struct {
	MatchID  string
	Date     time.Time
	Team1    string
	Team2    string
	Team1Win bool

	Team1Elo float64
	Team2Elo float64
	EloDiff  float64

	Team1WRAll *float64
	Team2WRAll *float64
	WRDiffAll  float64

	Team1WR20 *float64
	Team2WR20 *float64
	Team1WR50 *float64
	Team2WR50 *float64

	Team1Form *float64
	Team2Form *float64
	FormDiff  float64

	Team1Streak int
	Team2Streak int
	StreakDiff  int

	H2HWR *float64

	Team1TierWR *float64
	Team2TierWR *float64

	Team1DaysSince *int
	Team2DaysSince *int

	Tier         *int
	LogPrizepool *float64

	IsOnline  int
	IsOffline int
	IsHybrid  int

	filled bool
}

// tournamentTypeFlags maps a tournament type label onto the three
// one-hot venue columns. Unknown labels leave all three zero.
func tournamentTypeFlags(tournamentType string) (online, offline, hybrid int) {
	switch tournamentType {
	case models.TournamentTypeOnline:
		return 1, 0, 0
	case models.TournamentTypeOffline:
		return 0, 1, 0
	case models.TournamentTypeHybrid:
		return 0, 0, 1
	}
	return 0, 0, 0
}

// ExtractFeatures reads the pre-match feature vector for a pairing from
// the current model state. It performs no defaulting and does not mutate
// either model; undefined statistics come back as nil pointers.
func ExtractFeatures(elo *EloRatingSystem, stats *TeamStatsTracker, team1, team2 string, asOf time.Time, info models.TournamentInfo) *FeatureRow {
	row := &FeatureRow{
		Team1: team1,
		Team2: team2,
		Date:  asOf,
	}

	row.Team1Elo = elo.Rating(team1)
	row.Team2Elo = elo.Rating(team2)
	row.EloDiff = row.Team1Elo - row.Team2Elo

	row.Team1WRAll = stats.WinRate(team1, 0)
	row.Team2WRAll = stats.WinRate(team2, 0)
	row.Team1WR20 = stats.WinRate(team1, 20)
	row.Team2WR20 = stats.WinRate(team2, 20)
	row.Team1WR50 = stats.WinRate(team1, 50)
	row.Team2WR50 = stats.WinRate(team2, 50)

	row.Team1Form = stats.RecentForm(team1)
	row.Team2Form = stats.RecentForm(team2)

	row.Team1Streak = stats.WinStreak(team1)
	row.Team2Streak = stats.WinStreak(team2)
	row.StreakDiff = row.Team1Streak - row.Team2Streak

	row.H2HWR = stats.H2HWinRate(team1, team2)

	if info.Tier != nil {
		tier := *info.Tier
		row.Tier = &tier
		tierLabel := strconv.Itoa(tier)
		row.Team1TierWR = stats.TierWinRate(team1, tierLabel)
		row.Team2TierWR = stats.TierWinRate(team2, tierLabel)
	}

	row.Team1DaysSince = stats.DaysSinceLastMatch(team1, asOf)
	row.Team2DaysSince = stats.DaysSinceLastMatch(team2, asOf)

	if info.Prizepool != nil {
		pool, _ := info.Prizepool.Float64()
		if pool >= 0 {
			logPool := math.Log1p(pool)
			row.LogPrizepool = &logPool
		}
	}

	row.IsOnline, row.IsOffline, row.IsHybrid = tournamentTypeFlags(info.Type)
	return row
}

// fillRate resolves a nullable win-rate statistic to its neutral value.
func fillRate(value *float64) float64 {
	if value != nil {
		return *value
	}
	return neutralWinRate
}

// FillDefaults resolves every nil statistic on the row to its neutral
// value and computes the derived difference columns. It is a pure
// post-processing step: extraction keeps missing and observed-neutral
// distinguishable, and only this pass collapses them.
func (r *FeatureRow) FillDefaults() {
	wr1 := fillRate(r.Team1WRAll)
	wr2 := fillRate(r.Team2WRAll)
	r.Team1WRAll = &wr1
	r.Team2WRAll = &wr2
	r.WRDiffAll = wr1 - wr2

	wr20a, wr20b := fillRate(r.Team1WR20), fillRate(r.Team2WR20)
	r.Team1WR20 = &wr20a
	r.Team2WR20 = &wr20b

	wr50a, wr50b := fillRate(r.Team1WR50), fillRate(r.Team2WR50)
	r.Team1WR50 = &wr50a
	r.Team2WR50 = &wr50b

	form1 := fillRate(r.Team1Form)
	form2 := fillRate(r.Team2Form)
	r.Team1Form = &form1
	r.Team2Form = &form2
	r.FormDiff = form1 - form2

	h2h := fillRate(r.H2HWR)
	r.H2HWR = &h2h

	tier1 := fillRate(r.Team1TierWR)
	tier2 := fillRate(r.Team2TierWR)
	r.Team1TierWR = &tier1
	r.Team2TierWR = &tier2

	if r.Team1DaysSince == nil {
		days := neutralDaysSince
		r.Team1DaysSince = &days
	}
	if r.Team2DaysSince == nil {
		days := neutralDaysSince
		r.Team2DaysSince = &days
	}

	if r.Tier == nil {
		tier := fallbackTier
		r.Tier = &tier
	}
	if r.LogPrizepool == nil {
		zero := 0.0
		r.LogPrizepool = &zero
	}

	r.filled = true
}

// Vector returns the row's model-input values in FeatureColumns order.
// The row must have been through FillDefaults first.
func (r *FeatureRow) Vector() []float64 {
	if !r.filled {
		r.FillDefaults()
	}
	return []float64{
		r.Team1Elo, r.Team2Elo, r.EloDiff,
		*r.Team1WRAll, *r.Team2WRAll, r.WRDiffAll,
		*r.Team1WR20, *r.Team2WR20,
		*r.Team1WR50, *r.Team2WR50,
		*r.Team1Form, *r.Team2Form, r.FormDiff,
		float64(r.Team1Streak), float64(r.Team2Streak), float64(r.StreakDiff),
		*r.H2HWR,
		*r.Team1TierWR, *r.Team2TierWR,
		float64(*r.Team1DaysSince), float64(*r.Team2DaysSince),
		float64(*r.Tier), *r.LogPrizepool,
		float64(r.IsOnline), float64(r.IsOffline), float64(r.IsHybrid),
	}
}
