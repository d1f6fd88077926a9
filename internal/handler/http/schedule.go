package http

import (
	"net/http"

	"github.com/gajihub/hr-backend-go/internal/domain/schedule"
	"github.com/gajihub/hr-backend-go/internal/handler/http/response"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/pkg/validator"
	schedulesvc "github.com/gajihub/hr-backend-go/internal/service/schedule"
)

type ScheduleHandler interface {
	MyShifts(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	scheduleService *schedulesvc.Service
}

func NewScheduleHandler(scheduleService *schedulesvc.Service) ScheduleHandler {
	return &ScheduleHandlerImpl{scheduleService: scheduleService}
}

// MyShifts implements ScheduleHandler.
func (h *ScheduleHandlerImpl) MyShifts(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	start, okStart := validator.IsValidDate(r.URL.Query().Get("start"))
	end, okEnd := validator.IsValidDate(r.URL.Query().Get("end"))
	if !okStart || !okEnd || end.Before(start) {
		response.BadRequest(w, "start and end must be YYYY-MM-DD with start <= end", nil)
		return
	}

	result, err := h.scheduleService.MyShifts(r.Context(), actor, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedule.NewShiftResponses(result))
}
