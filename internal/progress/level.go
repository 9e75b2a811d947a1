package progress

import "math"

// LevelPercent returns how far the user is through the current level, as
// an integer percentage clamped to [0, 100].
//
// A non-positive span between the level boundaries returns 0. The two
// views that show this value previously disagreed on the fallback (0 in
// the header, 100 on the profile); 0 is the canonical choice so an
// unpopulated or malformed stats record never renders a full bar.
func LevelPercent(xp, xpForCurrentLevel, xpForNextLevel int) int {
	needed := xpForNextLevel - xpForCurrentLevel
	if needed <= 0 {
		return 0
	}

	into := xp - xpForCurrentLevel
	pct := int(math.Round(float64(into) / float64(needed) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
