/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, the middleware stack and the route table.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request, echoed in error logs
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for a local frontend

ROUTE GROUPS:
  /api/settings, /api/schedule      Configuration
  /api/holidays/*                   Holiday calendar
  /api/attendance/*, /api/days/*    Daily log
  /api/dashboard, /api/projection   Progress
  /*                                Static frontend, if built

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/ojt/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured. allowedOrigins
// feeds the CORS policy.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)
		r.Get("/schedule", h.GetSchedule)
		r.Put("/schedule", h.UpdateSchedule)

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Post("/defaults", h.RestoreDefaultHolidays)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.ListEntries)
			r.Post("/", h.SaveEntry)
			r.Delete("/", h.ResetAttendance)
			r.Delete("/{id}", h.DeleteEntry)
		})

		r.Get("/days/{date}", h.GetDay)
		r.Post("/preview", h.Preview)

		r.Get("/dashboard", h.GetDashboard)
		r.Get("/working-days", h.ListWorkingDays)
		r.Get("/projection", h.GetProjection)
		r.Post("/reset", h.ResetAll)
	})

	if dir, ok := staticDir(); ok {
		fileServer := http.FileServer(http.Dir(dir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			if _, err := os.Stat(filepath.Join(dir, filepath.Clean(r.URL.Path))); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(dir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	}

	return r
}

// staticDir finds a built frontend in ./web/dist or next to the executable.
func staticDir() (string, bool) {
	candidates := []string{"./web/dist"}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "web", "dist"))
	}
	for _, dir := range candidates {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir, true
		}
	}
	return "", false
}
