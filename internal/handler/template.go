package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/samphillips38/bloom-web-sub001/internal/api"
	"github.com/samphillips38/bloom-web-sub001/internal/progress"
	"github.com/samphillips38/bloom-web-sub001/internal/session"
	"github.com/samphillips38/bloom-web-sub001/internal/ws"
)

// PageHandler renders the protected screens: dashboard, course, lesson,
// profile, and premium. Methods live in pages.go, profile.go, and
// premium.go.
type PageHandler struct {
	client    *api.Client
	mgr       *session.Manager
	hub       *ws.Hub
	templates *template.Template
	logger    *slog.Logger
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"comma": func(n int) string { return humanize.Comma(int64(n)) },
		"reltime": func(v any) string {
			switch t := v.(type) {
			case time.Time:
				if t.IsZero() {
					return ""
				}
				return humanize.Time(t)
			case *time.Time:
				if t == nil || t.IsZero() {
					return ""
				}
				return humanize.Time(*t)
			default:
				return ""
			}
		},
		"shortday": func(t time.Time) string { return t.Format("Mon") },
		"daynum":   func(t time.Time) string { return t.Format("2") },
	}
}

func parseTemplates(glob string) *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs()).ParseGlob(glob))
}

func NewPageHandler(client *api.Client, mgr *session.Manager, hub *ws.Hub, logger *slog.Logger) *PageHandler {
	tmpl := parseTemplates("web/templates/*.html")
	return &PageHandler{
		client:    client,
		mgr:       mgr,
		hub:       hub,
		templates: tmpl,
		logger:    logger,
	}
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data any) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render template", "template", name, "error", err)
	}
}

// headerData builds the layout header: level bar, energy, streak flame.
// Missing stats render as zeroed defaults, never as an error.
type headerData struct {
	User         any
	HasStats     bool
	Level        int
	LevelPercent int
	XP           string
	Energy       int
	EnergyMax    int
	EnergyFull   bool
	Deadline     int64
	Streak       int
}

func buildHeader(sess *session.Session) headerData {
	hd := headerData{User: sess.User}
	stats := sess.Stats
	if stats == nil {
		return hd
	}

	remaining := progress.EnergyRemaining(progress.RefillDeadline(sess.StatsAt, stats.MSUntilNextEnergyRefill), time.Now())

	hd.HasStats = true
	hd.Level = stats.Level
	hd.LevelPercent = progress.LevelPercent(stats.XP, stats.XPForCurrentLevel, stats.XPForNextLevel)
	hd.XP = humanize.Comma(int64(stats.XP))
	hd.Energy = stats.Energy
	hd.EnergyMax = stats.EnergyMax
	hd.EnergyFull = !progress.CountdownActive(stats.Energy, stats.EnergyMax, remaining)
	hd.Deadline = progress.RefillDeadline(sess.StatsAt, stats.MSUntilNextEnergyRefill).UnixMilli()
	hd.Streak = stats.Streak.CurrentStreak
	return hd
}
