package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gajihub/hr-backend-go/internal/domain/timecard"
	"github.com/gajihub/hr-backend-go/internal/handler/http/response"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	timecardsvc "github.com/gajihub/hr-backend-go/internal/service/timecard"
	"github.com/go-chi/chi/v5"
)

type TimecardHandler interface {
	Clock(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	TeamPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Override(w http.ResponseWriter, r *http.Request)
}

type TimecardHandlerImpl struct {
	timecardService *timecardsvc.Service
}

func NewTimecardHandler(timecardService *timecardsvc.Service) TimecardHandler {
	return &TimecardHandlerImpl{timecardService: timecardService}
}

// Clock implements TimecardHandler.
func (h *TimecardHandlerImpl) Clock(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	var req timecard.ClockActionRequest
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Clock decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	file, fileHeader, err := r.FormFile("selfie")
	if err != nil && err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		req.Selfie = data
		req.SelfieFilename = fileHeader.Filename
	}

	result, err := h.timecardService.ClockAction(r.Context(), actor, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock action recorded", timecard.NewTimecardResponse(result))
}

// Today implements TimecardHandler.
func (h *TimecardHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timecardService.TodayStatus(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timecard.NewTimecardResponse(result))
}

// History implements TimecardHandler.
func (h *TimecardHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	filter := timecard.HistoryFilter{Month: month, Year: year}

	result, err := h.timecardService.History(r.Context(), actor, &filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timecard.NewTimecardResponses(result))
}

// TeamPending implements TimecardHandler.
func (h *TimecardHandlerImpl) TeamPending(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timecardService.TeamPending(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timecard.NewTimecardResponses(result))
}

// Approve implements TimecardHandler.
func (h *TimecardHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Timecard ID is required", nil)
		return
	}

	result, err := h.timecardService.Approve(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timecard approved successfully", timecard.NewTimecardResponse(result))
}

// Reject implements TimecardHandler.
func (h *TimecardHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timecard.DecideTimecardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.timecardService.Reject(r.Context(), actor, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timecard rejected", timecard.NewTimecardResponse(result))
}

// Override implements TimecardHandler.
func (h *TimecardHandlerImpl) Override(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timecard.OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Override decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.timecardService.Override(r.Context(), actor, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timecard slots cleared", timecard.NewTimecardResponse(result))
}
