package http

import (
	"net/http"

	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/gajihub/hr-backend-go/internal/domain/company"
	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/gajihub/hr-backend-go/internal/handler/http/response"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	companysvc "github.com/gajihub/hr-backend-go/internal/service/company"
)

type CompanyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	SeedDefaults(w http.ResponseWriter, r *http.Request)
	ListLeaveTypes(w http.ResponseWriter, r *http.Request)
	ListClaimCategories(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService *companysvc.Service
}

func NewCompanyHandler(companyService *companysvc.Service) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// Get implements CompanyHandler.
func (h *CompanyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.companyService.Get(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, company.NewCompanyResponse(result))
}

// SeedDefaults implements CompanyHandler.
func (h *CompanyHandlerImpl) SeedDefaults(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.companyService.SeedDefaults(r.Context(), actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company defaults seeded", nil)
}

// ListLeaveTypes implements CompanyHandler.
func (h *CompanyHandlerImpl) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.companyService.ListLeaveTypes(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveTypeResponses(result))
}

// ListClaimCategories implements CompanyHandler.
func (h *CompanyHandlerImpl) ListClaimCategories(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.companyService.ListClaimCategories(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, claim.NewCategoryRuleResponses(result))
}
