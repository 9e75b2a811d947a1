package model

type Course struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Emoji            string `json:"emoji"`
	LessonCount      int    `json:"lessonCount"`
	CompletedLessons int    `json:"completedLessons"`
	Premium          bool   `json:"premium"`
}

type Lesson struct {
	ID       string `json:"id"`
	CourseID string `json:"courseId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	XPReward int    `json:"xpReward"`
	Premium  bool   `json:"premium"`
}

// LessonResult is returned when a lesson is completed.
type LessonResult struct {
	XPEarned    int  `json:"xpEarned"`
	LeveledUp   bool `json:"leveledUp"`
	EnergySpent int  `json:"energySpent"`
}
