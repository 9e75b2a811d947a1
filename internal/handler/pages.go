package handler

import (
	"net/http"

	"github.com/samphillips38/bloom-web-sub001/internal/api"
	"github.com/samphillips38/bloom-web-sub001/internal/auth"
	"github.com/samphillips38/bloom-web-sub001/internal/ws"
)

// Dashboard lists the course catalog with the user's progress header.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sess := auth.SessionFrom(r.Context())

	courses, err := h.client.ListCourses(r.Context(), sess.AccessToken)
	if err != nil {
		h.logger.Error("list courses", "error", err)
		h.render(w, "error.html", map[string]any{
			"Header": buildHeader(sess),
			"Error":  "Could not load courses. Please try again.",
		})
		return
	}

	h.render(w, "dashboard.html", map[string]any{
		"Title":   "Bloom",
		"Header":  buildHeader(sess),
		"Courses": courses,
	})
}

// CoursePage shows one course and its lessons.
func (h *PageHandler) CoursePage(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	courseID := r.PathValue("id")

	course, lessons, err := h.client.GetCourse(r.Context(), sess.AccessToken, courseID)
	if err != nil {
		if api.IsNotFound(err) {
			http.Error(w, "course not found", http.StatusNotFound)
			return
		}
		h.logger.Error("get course", "course_id", courseID, "error", err)
		h.render(w, "error.html", map[string]any{
			"Header": buildHeader(sess),
			"Error":  "Could not load the course. Please try again.",
		})
		return
	}
	if course == nil {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}

	h.render(w, "course.html", map[string]any{
		"Title":   course.Title + " — Bloom",
		"Header":  buildHeader(sess),
		"Course":  course,
		"Lessons": lessons,
		"Premium": sess.User.IsPremium,
	})
}

// LessonPage renders a lesson for consumption. Premium lessons are shown
// with an upsell for free users; the API enforces access on completion.
func (h *PageHandler) LessonPage(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	lessonID := r.PathValue("id")

	lesson, err := h.client.GetLesson(r.Context(), sess.AccessToken, lessonID)
	if err != nil {
		if api.IsNotFound(err) {
			http.Error(w, "lesson not found", http.StatusNotFound)
			return
		}
		h.logger.Error("get lesson", "lesson_id", lessonID, "error", err)
		h.render(w, "error.html", map[string]any{
			"Header": buildHeader(sess),
			"Error":  "Could not load the lesson. Please try again.",
		})
		return
	}
	if lesson == nil {
		http.Error(w, "lesson not found", http.StatusNotFound)
		return
	}

	locked := lesson.Premium && !sess.User.IsPremium
	h.render(w, "lesson.html", map[string]any{
		"Title":  lesson.Title + " — Bloom",
		"Header": buildHeader(sess),
		"Lesson": lesson,
		"Locked": locked,
	})
}

// LessonComplete records a finished lesson, refreshes stats, and notifies
// the session's other tabs.
func (h *PageHandler) LessonComplete(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	lessonID := r.PathValue("id")

	result, err := h.client.CompleteLesson(r.Context(), sess.AccessToken, lessonID)
	if err != nil {
		h.logger.Warn("complete lesson", "lesson_id", lessonID, "error", err)
		h.render(w, "lesson-error", map[string]any{"Error": err.Error()})
		return
	}

	h.mgr.RefreshStats(r.Context(), sess)
	h.hub.BroadcastSession(sess.LocalID, ws.Message{Type: ws.TypeStatsUpdated})

	h.render(w, "lesson-result", map[string]any{
		"Result": result,
		"Header": buildHeader(sess),
	})
}
