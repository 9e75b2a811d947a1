package api

import (
	"context"
	"net/http"

	"github.com/samphillips38/bloom-web-sub001/internal/model"
)

// GetUserStats returns the authenticated user's progress snapshot.
func (c *Client) GetUserStats(ctx context.Context, access string) (*model.UserStats, error) {
	var res model.UserStats
	if err := c.do(ctx, "get_user_stats", http.MethodGet, "/users/me/stats", access, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetDailyGoal updates the user's daily lesson goal.
func (c *Client) SetDailyGoal(ctx context.Context, access string, goal int) error {
	req := map[string]int{"dailyGoal": goal}
	return c.do(ctx, "set_daily_goal", http.MethodPut, "/users/me/daily-goal", access, req, nil)
}

// GetAchievements returns the ids of achievements the user has earned.
// The display catalog itself is client-defined, not fetched.
func (c *Client) GetAchievements(ctx context.Context, access string) ([]string, error) {
	var res struct {
		Achievements []string `json:"achievements"`
	}
	if err := c.do(ctx, "get_achievements", http.MethodGet, "/users/me/achievements", access, nil, &res); err != nil {
		return nil, err
	}
	return res.Achievements, nil
}
