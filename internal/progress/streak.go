package progress

import "time"

// calendarDays is the size of the streak calendar window.
const calendarDays = 14

// DayCell is one day in the streak calendar.
type DayCell struct {
	Date    time.Time
	Active  bool
	IsToday bool
}

// StreakCalendar reconstructs the 14-day streak window [today-13, today]
// from the streak counter and the last activity date (YYYY-MM-DD, or ""
// for never).
//
// The calendar reflects recency, not just the counter: a streak is alive
// only if the last activity was today or yesterday. When alive, the
// currentStreak days ending at the last-activity day are marked active.
// A dead streak renders entirely inactive regardless of the counter.
func StreakCalendar(currentStreak int, lastActivityDate string, today time.Time) []DayCell {
	today = startOfDay(today)

	cells := make([]DayCell, calendarDays)
	for i := range cells {
		d := today.AddDate(0, 0, i-(calendarDays-1))
		cells[i] = DayCell{Date: d, IsToday: d.Equal(today)}
	}

	if currentStreak <= 0 {
		return cells
	}

	last, err := time.ParseInLocation("2006-01-02", lastActivityDate, today.Location())
	if err != nil {
		return cells
	}
	last = startOfDay(last)

	yesterday := today.AddDate(0, 0, -1)
	var reference time.Time
	switch {
	case last.Equal(today):
		reference = today
	case last.Equal(yesterday):
		reference = yesterday
	default:
		return cells
	}

	for i := range cells {
		offset := daysBetween(cells[i].Date, reference)
		if offset >= 0 && offset < currentStreak {
			cells[i].Active = true
		}
	}
	return cells
}

// daysBetween returns how many calendar days from must advance to reach
// to. It counts date components, not elapsed hours: a DST transition
// makes a wall-clock day 23 or 25 hours long, and dividing elapsed time
// by 24 would merge or split adjacent days around it.
func daysBetween(from, to time.Time) int {
	return int(midnightUTC(to).Sub(midnightUTC(from)) / (24 * time.Hour))
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
