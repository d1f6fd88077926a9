package schedule

import (
	"context"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/schedule"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
)

// Service is the read side of the scheduling collaborator: employees
// can see their own roster, nothing more.
type Service struct {
	shifts schedule.ShiftRepository
}

func NewService(shifts schedule.ShiftRepository) *Service {
	return &Service{shifts: shifts}
}

// MyShifts lists the actor's shifts between two dates inclusive.
func (s *Service) MyShifts(ctx context.Context, actor jwt.Actor, start, end time.Time) ([]schedule.Shift, error) {
	return s.shifts.ListByEmployeeRange(ctx, actor.EmployeeID, start, end)
}
