// Package handler exposes the scheduling services over HTTP. Responses use a
// uniform JSON envelope; planner-facing messages are German, matching the
// validation messages coming out of the engine.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kitawerk/dienstplan/internal/config"
	"github.com/kitawerk/dienstplan/pkg/db"
)

type Handler struct {
	store  db.ScheduleStore
	cfg    *config.Config
	logger *zap.Logger

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, store db.ScheduleStore, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		cfg:    cfg,
		logger: logger,

		Mux: chi.NewRouter(),
	}
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestLogger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Health)

	h.Mux.Route("/api/v1", func(r chi.Router) {
		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.ListSchedules)
			r.Post("/generate", h.GenerateSchedule)
			r.Route("/{week}", func(r chi.Router) {
				r.Get("/", h.GetSchedulesForWeek)
				r.Post("/publish", h.PublishSchedule)
				r.Post("/unpublish", h.UnpublishSchedule)
				r.Post("/archive", h.ArchiveSchedule)
			})
		})
		r.Post("/snapshots/validate", h.ValidateSnapshot)
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
