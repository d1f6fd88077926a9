package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/gajihub/hr-backend-go/internal/handler/http/response"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	leavesvc "github.com/gajihub/hr-backend-go/internal/service/leave"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	TeamPending(w http.ResponseWriter, r *http.Request)
	MyBalances(w http.ResponseWriter, r *http.Request)
	OpenYear(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	requestService *leavesvc.RequestService
	balanceService *leavesvc.BalanceService
}

func NewLeaveHandler(requestService *leavesvc.RequestService, balanceService *leavesvc.BalanceService) LeaveHandler {
	return &LeaveHandlerImpl{requestService: requestService, balanceService: balanceService}
}

// Submit implements LeaveHandler.
func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
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

	var req leave.SubmitLeaveRequest
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	file, fileHeader, err := r.FormFile("attachment")
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
		req.Attachment = data
		req.AttachmentFilename = fileHeader.Filename
	}

	result, err := h.requestService.Submit(r.Context(), actor, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", leave.NewLeaveRequestResponse(result))
}

func (h *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, decision leave.Decision) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.DecideLeaveRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Decide decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.ID = chi.URLParam(r, "id")
	req.Decision = decision

	result, err := h.requestService.Decide(r.Context(), actor, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Leave request approved successfully"
	if decision == leave.DecisionReject {
		message = "Leave request rejected"
	}
	response.SuccessWithMessage(w, message, leave.NewLeaveRequestResponse(result))
}

// Approve implements LeaveHandler.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.DecisionApprove)
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.DecisionReject)
}

// Cancel implements LeaveHandler.
func (h *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	result, err := h.requestService.Cancel(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", leave.NewLeaveRequestResponse(result))
}

// MyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	result, err := h.requestService.MyRequests(r.Context(), actor, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponses(result))
}

// TeamPending implements LeaveHandler.
func (h *LeaveHandlerImpl) TeamPending(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.requestService.TeamPending(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponses(result))
}

// MyBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) MyBalances(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	result, err := h.balanceService.ListMine(r.Context(), actor, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// OpenYear implements LeaveHandler.
func (h *LeaveHandlerImpl) OpenYear(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req struct {
		EmployeeID string `json:"employee_id"`
		Year       int    `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("OpenYear decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.EmployeeID == "" || req.Year == 0 {
		response.BadRequest(w, "employee_id and year are required", nil)
		return
	}

	if err := h.balanceService.OpenYear(r.Context(), actor.CompanyID, req.EmployeeID, req.Year); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave year opened", nil)
}
