package progress

import "github.com/samphillips38/bloom-web-sub001/internal/model"

// Catalog is the closed, client-defined achievement catalog. "Earned"
// status comes from intersecting this list with the server-reported ids;
// server ids outside the catalog are ignored, catalog ids the server
// omits render locked.
var Catalog = []model.Achievement{
	{ID: "first_lesson", Title: "First Steps", Description: "Complete your first lesson", Emoji: "🌱"},
	{ID: "streak_3", Title: "Warming Up", Description: "Keep a 3-day streak", Emoji: "🔥"},
	{ID: "streak_7", Title: "On Fire", Description: "Keep a 7-day streak", Emoji: "🚀"},
	{ID: "streak_30", Title: "Unstoppable", Description: "Keep a 30-day streak", Emoji: "⚡"},
	{ID: "level_5", Title: "Sprout", Description: "Reach level 5", Emoji: "🌿"},
	{ID: "level_10", Title: "Bloomer", Description: "Reach level 10", Emoji: "🌸"},
	{ID: "level_25", Title: "Evergreen", Description: "Reach level 25", Emoji: "🌳"},
	{ID: "xp_1000", Title: "Collector", Description: "Earn 1,000 XP", Emoji: "💎"},
	{ID: "lessons_10", Title: "Dedicated", Description: "Complete 10 lessons", Emoji: "📚"},
	{ID: "lessons_50", Title: "Scholar", Description: "Complete 50 lessons", Emoji: "🎓"},
	{ID: "lessons_100", Title: "Centurion", Description: "Complete 100 lessons", Emoji: "🏛️"},
	{ID: "early_bird", Title: "Early Bird", Description: "Finish a lesson before 8am", Emoji: "🌅"},
	{ID: "night_owl", Title: "Night Owl", Description: "Finish a lesson after 10pm", Emoji: "🦉"},
	{ID: "goal_week", Title: "Goal Getter", Description: "Hit your daily goal 7 days in a row", Emoji: "🎯"},
}

// EarnedAchievement pairs a catalog entry with its unlock status.
type EarnedAchievement struct {
	model.Achievement
	Earned bool
}

// EarnedAchievements maps the catalog against the server-reported earned
// ids.
func EarnedAchievements(earnedIDs []string) []EarnedAchievement {
	earned := make(map[string]struct{}, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = struct{}{}
	}

	out := make([]EarnedAchievement, len(Catalog))
	for i, a := range Catalog {
		_, ok := earned[a.ID]
		out[i] = EarnedAchievement{Achievement: a, Earned: ok}
	}
	return out
}
