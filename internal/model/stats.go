package model

// Streak tracks consecutive days of activity. LastActivityDate is a
// calendar date string (YYYY-MM-DD) in the user's timezone, or empty if
// the user has never completed a lesson.
type Streak struct {
	CurrentStreak    int    `json:"currentStreak"`
	LastActivityDate string `json:"lastActivityDate"`
}

// UserStats is the progress snapshot returned by the Bloom API. It may lag
// behind server truth until explicitly refreshed.
type UserStats struct {
	XP                      int      `json:"xp"`
	Level                   int      `json:"level"`
	XPForCurrentLevel       int      `json:"xpForCurrentLevel"`
	XPForNextLevel          int      `json:"xpForNextLevel"`
	Energy                  int      `json:"energy"`
	EnergyMax               int      `json:"energyMax"`
	MSUntilNextEnergyRefill int64    `json:"msUntilNextEnergyRefill"`
	Streak                  Streak   `json:"streak"`
	StreakFreezes           int      `json:"streakFreezes"`
	DailyGoal               int      `json:"dailyGoal"`
	CompletedLessons        int      `json:"completedLessons"`
	Achievements            []string `json:"achievements"`
}

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}
