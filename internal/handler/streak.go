package handler

import (
	"net/http"

	"github.com/studybuddy/studybuddy/internal/ctxkeys"
	"github.com/studybuddy/studybuddy/internal/service"
)

type StreakHandler struct {
	streakService *service.StreakService
}

func NewStreakHandler(streakService *service.StreakService) *StreakHandler {
	return &StreakHandler{
		streakService: streakService,
	}
}

type dayRequest struct {
	Date string `json:"date" validate:"required"`
}

type streakResponse struct {
	Streak int `json:"streak"`
}

func (h *StreakHandler) MarkStudied(w http.ResponseWriter, r *http.Request) {
	var req dayRequest
	err := decode(w, r, &req)
	if err != nil {
		fail(w, r, err)
		return
	}

	activity, err := h.streakService.MarkStudied(r.Context(), ctxkeys.UserID(r.Context()), req.Date)
	if err != nil {
		fail(w, r, err)
		return
	}

	success(w, http.StatusOK, activity)
}

func (h *StreakHandler) Forgive(w http.ResponseWriter, r *http.Request) {
	var req dayRequest
	err := decode(w, r, &req)
	if err != nil {
		fail(w, r, err)
		return
	}

	err = h.streakService.ForgiveMissed(r.Context(), ctxkeys.UserID(r.Context()), req.Date)
	if err != nil {
		fail(w, r, err)
		return
	}

	success(w, http.StatusOK, nil)
}

func (h *StreakHandler) Week(w http.ResponseWriter, r *http.Request) {
	view, err := h.streakService.WeekView(r.Context(), ctxkeys.UserID(r.Context()), r.URL.Query().Get("date"))
	if err != nil {
		fail(w, r, err)
		return
	}

	success(w, http.StatusOK, view)
}

func (h *StreakHandler) Current(w http.ResponseWriter, r *http.Request) {
	streak, err := h.streakService.CurrentStreak(r.Context(), ctxkeys.UserID(r.Context()), r.URL.Query().Get("today"))
	if err != nil {
		fail(w, r, err)
		return
	}

	success(w, http.StatusOK, streakResponse{Streak: streak})
}
