package handler

import (
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/samphillips38/bloom-web-sub001/internal/auth"
	"github.com/samphillips38/bloom-web-sub001/internal/progress"
	"github.com/samphillips38/bloom-web-sub001/internal/ws"
)

// ProfilePage renders the progress dashboard: level bar, streak calendar,
// achievements, daily goal.
func (h *PageHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())

	// Fetch earned achievements and a fresh stats snapshot in parallel.
	// Both are best-effort: the page renders with locked achievements and
	// the session's cached stats if either fails.
	var earnedIDs []string
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		ids, err := h.client.GetAchievements(ctx, sess.AccessToken)
		if err != nil {
			h.logger.Debug("achievements fetch failed", "error", err)
			return nil
		}
		earnedIDs = ids
		return nil
	})
	g.Go(func() error {
		h.mgr.RefreshStats(ctx, sess)
		return nil
	})
	g.Wait()

	stats := sess.Stats
	var streak []progress.DayCell
	goal := 0
	completed := 0
	freezes := 0
	if stats != nil {
		streak = progress.StreakCalendar(stats.Streak.CurrentStreak, stats.Streak.LastActivityDate, time.Now())
		goal = stats.DailyGoal
		completed = stats.CompletedLessons
		freezes = stats.StreakFreezes
	} else {
		streak = progress.StreakCalendar(0, "", time.Now())
	}

	h.render(w, "profile.html", map[string]any{
		"Title":            "Profile — Bloom",
		"Header":           buildHeader(sess),
		"User":             sess.User,
		"MemberSince":      sess.User.CreatedAt,
		"Streak":           streak,
		"DailyGoal":        goal,
		"CompletedLessons": completed,
		"StreakFreezes":    freezes,
		"Achievements":     progress.EarnedAchievements(earnedIDs),
	})
}

// DailyGoalUpdate sets a new daily goal. The manager refreshes stats
// unconditionally afterwards; an API failure is surfaced inline.
func (h *PageHandler) DailyGoalUpdate(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())

	goal, err := strconv.Atoi(r.FormValue("goal"))
	if err != nil || goal < 1 {
		h.render(w, "goal-error", map[string]any{"Error": "Daily goal must be a positive number"})
		return
	}

	if err := h.mgr.SetDailyGoal(r.Context(), sess, goal); err != nil {
		h.render(w, "goal-error", map[string]any{"Error": err.Error()})
		return
	}

	h.hub.BroadcastSession(sess.LocalID, ws.Message{Type: ws.TypeStatsUpdated})
	h.render(w, "goal-display", map[string]any{"DailyGoal": goal})
}

// EnergyPartial is polled once per second by the header. It counts down
// against the deadline captured at the last stats fetch without calling
// the API; the display drifts from server truth until the next explicit
// refresh. An elapsed deadline triggers that refresh.
func (h *PageHandler) EnergyPartial(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())

	deadlineMS, err := strconv.ParseInt(r.URL.Query().Get("deadline"), 10, 64)
	if err != nil || deadlineMS < 0 {
		deadlineMS = 0
	}
	deadline := time.UnixMilli(deadlineMS)

	// A zero deadline means no countdown was running (full hearts);
	// ticking stays a pure local clock and never touches the API.
	var remaining time.Duration
	if deadlineMS > 0 {
		remaining = progress.EnergyRemaining(deadline, time.Now())
		if remaining == 0 {
			// A running countdown just elapsed: one refresh to reseed.
			h.mgr.RefreshStats(r.Context(), sess)
			deadline = time.UnixMilli(0)
			if sess.Stats != nil && sess.Stats.MSUntilNextEnergyRefill > 0 {
				deadline = progress.RefillDeadline(sess.StatsAt, sess.Stats.MSUntilNextEnergyRefill)
				remaining = progress.EnergyRemaining(deadline, time.Now())
			}
		}
	}

	energy, energyMax := 0, 0
	if sess.Stats != nil {
		energy = sess.Stats.Energy
		energyMax = sess.Stats.EnergyMax
	}

	h.render(w, "energy-countdown", map[string]any{
		"Active":    progress.CountdownActive(energy, energyMax, remaining),
		"Countdown": progress.FormatCountdown(remaining),
		"Energy":    energy,
		"EnergyMax": energyMax,
		"Deadline":  deadline.UnixMilli(),
	})
}
