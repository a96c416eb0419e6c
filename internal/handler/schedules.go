package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kitawerk/dienstplan/pkg/core/model"
	"github.com/kitawerk/dienstplan/pkg/core/services"
	"github.com/kitawerk/dienstplan/pkg/snapshot"
)

// GenerateSchedule runs the engine on the snapshot in the request body and
// stores the result as the week's draft. With ?dryRun=true the schedule is
// computed and returned but not stored.
func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.badRequest(w, r, fmt.Errorf("ungültiger Request-Body: %w", err))
		return
	}

	snap, err := snapshot.Parse(body)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dryRun"))

	schedule, err := services.GenerateSchedule(r.Context(), h.store, h.cfg, h.logger, snap, dryRun)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	message := fmt.Sprintf("Dienstplan für Woche %s erstellt", schedule.Week)
	if dryRun {
		message = fmt.Sprintf("Probelauf für Woche %s abgeschlossen", schedule.Week)
	}
	h.successResponse(w, r, message, schedule)
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.store.GetSchedules(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Dienstpläne geladen", schedules)
}

func (h *Handler) GetSchedulesForWeek(w http.ResponseWriter, r *http.Request) {
	week, err := weekParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedules, err := h.store.GetSchedulesForWeek(r.Context(), week)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, fmt.Sprintf("Dienstpläne für Woche %s geladen", week), schedules)
}

func (h *Handler) PublishSchedule(w http.ResponseWriter, r *http.Request) {
	week, err := weekParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := services.PublishSchedule(r.Context(), h.store, h.logger, week)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	h.successResponse(w, r, fmt.Sprintf("Dienstplan für Woche %s veröffentlicht", week), schedule)
}

func (h *Handler) UnpublishSchedule(w http.ResponseWriter, r *http.Request) {
	week, err := weekParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := services.UnpublishSchedule(r.Context(), h.store, h.logger, week)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	h.successResponse(w, r, fmt.Sprintf("Veröffentlichung für Woche %s zurückgezogen", week), schedule)
}

func (h *Handler) ArchiveSchedule(w http.ResponseWriter, r *http.Request) {
	week, err := weekParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := services.ArchiveSchedule(r.Context(), h.store, h.logger, week)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	h.successResponse(w, r, fmt.Sprintf("Dienstplan für Woche %s archiviert", week), schedule)
}

// weekParam reads the {week} path segment and rejects anything that is not a
// real ISO week before a service gets to see it.
func weekParam(r *http.Request) (string, error) {
	week := chi.URLParam(r, "week")
	if _, err := model.ISOWeekStart(week); err != nil {
		return "", err
	}
	return week, nil
}
