package entity

import "time"

// MaxLevel is the highest progression tier
const MaxLevel = 25

// wagerThreshold maps a level to the minimum lifetime wager that unlocks it.
// The table is ordered descending; thresholds are strictly increasing with
// level so the highest-qualifying-level rule is well defined.
type wagerThreshold struct {
	level int
	wager int64
}

var wagerLevels = []wagerThreshold{
	{25, 100_000_000_000},
	{24, 70_000_000_000},
	{23, 40_000_000_000},
	{22, 20_000_000_000},
	{21, 15_000_000_000},
	{20, 10_000_000_000},
	{19, 9_000_000_000},
	{18, 7_000_000_000},
	{17, 5_000_000_000},
	{16, 2_000_000_000},
	{15, 1_000_000_000},
	{14, 800_000_000},
	{13, 600_000_000},
	{12, 500_000_000},
	{11, 400_000_000},
	{10, 300_000_000},
	{9, 250_000_000},
	{8, 200_000_000},
	{7, 180_000_000},
	{6, 150_000_000},
	{5, 100_000_000},
	{4, 70_000_000},
	{3, 50_000_000},
	{2, 30_000_000},
	{1, 10_000_000},
	{0, 0},
}

// LevelFor maps a lifetime wagered total to the highest level whose threshold
// is met. Monotonic non-decreasing in its input.
func LevelFor(totalWagered int64) int {
	for _, t := range wagerLevels {
		if totalWagered >= t.wager {
			return t.level
		}
	}
	return 0
}

// WagerForLevel returns the lifetime wager threshold that unlocks a level.
// Levels past MaxLevel report the top threshold.
func WagerForLevel(level int) int64 {
	if level > MaxLevel {
		level = MaxLevel
	}
	for _, t := range wagerLevels {
		if t.level == level {
			return t.wager
		}
	}
	return 0
}

// DailyReward returns the credit amount granted once per calendar day for the
// given level band.
func DailyReward(level int) int64 {
	switch {
	case level >= 25:
		return 35_000_000
	case level >= 20:
		return 30_000_000
	case level >= 15:
		return 25_000_000
	case level >= 10:
		return 20_000_000
	case level >= 5:
		return 2_000_000
	case level >= 1:
		return 1_000_000
	default:
		return 100_000
	}
}

// CanClaimReward reports whether a daily reward claim is allowed. Eligibility
// resets when the calendar date changes, not after a rolling 24h window: a
// claim at 23:59 and another at 00:01 the next day are both valid.
func CanClaimReward(lastClaim *time.Time, now time.Time) bool {
	if lastClaim == nil {
		return true
	}
	y1, m1, d1 := lastClaim.Date()
	y2, m2, d2 := now.Date()
	return y1 != y2 || m1 != m2 || d1 != d2
}
