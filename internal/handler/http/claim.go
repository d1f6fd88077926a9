package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/gajihub/hr-backend-go/internal/handler/http/response"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	claimsvc "github.com/gajihub/hr-backend-go/internal/service/claim"
	"github.com/go-chi/chi/v5"
)

type ClaimHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Revert(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	BulkApprove(w http.ResponseWriter, r *http.Request)
	MyClaims(w http.ResponseWriter, r *http.Request)
	TeamPending(w http.ResponseWriter, r *http.Request)
}

type ClaimHandlerImpl struct {
	claimService *claimsvc.Service
}

func NewClaimHandler(claimService *claimsvc.Service) ClaimHandler {
	return &ClaimHandlerImpl{claimService: claimService}
}

// Submit implements ClaimHandler.
func (h *ClaimHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
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

	var req claim.SubmitClaimRequest
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	file, fileHeader, err := r.FormFile("receipt")
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
		req.Receipt = data
		req.ReceiptFilename = fileHeader.Filename
	}

	result, err := h.claimService.Submit(r.Context(), actor, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Claim submitted", claim.NewClaimResponse(result))
}

// Approve implements ClaimHandler.
func (h *ClaimHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	result, err := h.claimService.Approve(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Claim approved successfully", claim.NewClaimResponse(result))
}

// Reject implements ClaimHandler.
func (h *ClaimHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req claim.RejectClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.claimService.Reject(r.Context(), actor, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Claim rejected", claim.NewClaimResponse(result))
}

// Revert implements ClaimHandler.
func (h *ClaimHandlerImpl) Revert(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	result, err := h.claimService.Revert(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Claim reverted to pending", claim.NewClaimResponse(result))
}

// Delete implements ClaimHandler.
func (h *ClaimHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	if err := h.claimService.Delete(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Claim deleted", nil)
}

// BulkApprove implements ClaimHandler.
func (h *ClaimHandlerImpl) BulkApprove(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkApprove decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if len(req.IDs) == 0 {
		response.BadRequest(w, "At least one claim ID is required", nil)
		return
	}

	outcomes := h.claimService.BulkApprove(r.Context(), actor, req.IDs)
	response.Success(w, outcomes)
}

// MyClaims implements ClaimHandler.
func (h *ClaimHandlerImpl) MyClaims(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	result, err := h.claimService.MyClaims(r.Context(), actor, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, claim.NewClaimResponses(result))
}

// TeamPending implements ClaimHandler.
func (h *ClaimHandlerImpl) TeamPending(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.claimService.TeamPending(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, claim.NewClaimResponses(result))
}
