package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/samphillips38/bloom-web-sub001/internal/model"
)

func (c *Client) ListCourses(ctx context.Context, access string) ([]model.Course, error) {
	var res struct {
		Courses []model.Course `json:"courses"`
	}
	if err := c.do(ctx, "list_courses", http.MethodGet, "/courses", access, nil, &res); err != nil {
		return nil, err
	}
	return res.Courses, nil
}

func (c *Client) GetCourse(ctx context.Context, access, courseID string) (*model.Course, []model.Lesson, error) {
	var res struct {
		Course  *model.Course  `json:"course"`
		Lessons []model.Lesson `json:"lessons"`
	}
	if err := c.do(ctx, "get_course", http.MethodGet, "/courses/"+url.PathEscape(courseID), access, nil, &res); err != nil {
		return nil, nil, err
	}
	return res.Course, res.Lessons, nil
}

func (c *Client) GetLesson(ctx context.Context, access, lessonID string) (*model.Lesson, error) {
	var res struct {
		Lesson *model.Lesson `json:"lesson"`
	}
	if err := c.do(ctx, "get_lesson", http.MethodGet, "/lessons/"+url.PathEscape(lessonID), access, nil, &res); err != nil {
		return nil, err
	}
	return res.Lesson, nil
}

// CompleteLesson records a finished lesson and returns the XP awarded.
func (c *Client) CompleteLesson(ctx context.Context, access, lessonID string) (*model.LessonResult, error) {
	var res model.LessonResult
	if err := c.do(ctx, "complete_lesson", http.MethodPost, "/lessons/"+url.PathEscape(lessonID)+"/complete", access, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
