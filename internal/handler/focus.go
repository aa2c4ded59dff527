package handler

import (
	"net/http"
	"strconv"

	"github.com/studybuddy/studybuddy/internal/ctxkeys"
	"github.com/studybuddy/studybuddy/internal/service"
	"github.com/studybuddy/studybuddy/internal/validation"
)

type FocusHandler struct {
	focusService *service.FocusService
}

func NewFocusHandler(focusService *service.FocusService) *FocusHandler {
	return &FocusHandler{
		focusService: focusService,
	}
}

type startSessionRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=work short_break long_break"`
	Minutes int    `json:"minutes" validate:"required,min=1,max=180"`
}

type finishSessionRequest struct {
	Interrupted bool `json:"interrupted"`
}

func (h *FocusHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	err := decode(w, r, &req)
	if err != nil {
		fail(w, r, err)
		return
	}

	session, err := h.focusService.Start(r.Context(), ctxkeys.UserID(r.Context()), req.Kind, req.Minutes)
	if err != nil {
		fail(w, r, err)
		return
	}

	success(w, http.StatusCreated, session)
}

func (h *FocusHandler) Finish(w http.ResponseWriter, r *http.Request) {
	var req finishSessionRequest
	// An empty body finishes the session as completed
	if r.ContentLength != 0 {
		err := decode(w, r, &req)
		if err != nil {
			fail(w, r, err)
			return
		}
	}

	session, err := h.focusService.Finish(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"), req.Interrupted)
	if err != nil {
		fail(w, r, err)
		return
	}

	success(w, http.StatusOK, session)
}

func (h *FocusHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fail(w, r, validation.NewError("limit", "must be a number"))
			return
		}
		limit = n
	}

	sessions, err := h.focusService.Sessions(r.Context(), ctxkeys.UserID(r.Context()), limit)
	if err != nil {
		fail(w, r, err)
		return
	}

	success(w, http.StatusOK, sessions)
}

func (h *FocusHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.focusService.Stats(r.Context(), ctxkeys.UserID(r.Context()), r.URL.Query().Get("date"))
	if err != nil {
		fail(w, r, err)
		return
	}

	success(w, http.StatusOK, stats)
}
