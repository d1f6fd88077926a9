package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gajihub/hr-backend-go/internal/domain/advance"
	"github.com/gajihub/hr-backend-go/internal/handler/http/response"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	advancesvc "github.com/gajihub/hr-backend-go/internal/service/advance"
	"github.com/go-chi/chi/v5"
)

type AdvanceHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MonthlyDeduction(w http.ResponseWriter, r *http.Request)
}

type AdvanceHandlerImpl struct {
	advanceService *advancesvc.Service
}

func NewAdvanceHandler(advanceService *advancesvc.Service) AdvanceHandler {
	return &AdvanceHandlerImpl{advanceService: advanceService}
}

// Record implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req advance.RecordAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Record decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.advanceService.Record(r.Context(), actor, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary advance recorded", advance.NewAdvanceResponse(result))
}

// Cancel implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Advance ID is required", nil)
		return
	}

	result, err := h.advanceService.Cancel(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary advance cancelled", advance.NewAdvanceResponse(result))
}

// List implements AdvanceHandler.
func (h *AdvanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}

	result, err := h.advanceService.ListByEmployee(r.Context(), actor, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, advance.NewAdvanceResponses(result))
}

// MonthlyDeduction implements AdvanceHandler.
func (h *AdvanceHandlerImpl) MonthlyDeduction(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	lines, total, err := h.advanceService.MonthlyDeduction(r.Context(), actor, employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"lines": lines,
		"total": total.StringFixed(2),
	})
}
