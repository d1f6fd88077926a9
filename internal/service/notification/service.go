package notification

import (
	"context"
	"log/slog"

	"github.com/gajihub/hr-backend-go/internal/domain/notification"
	"github.com/gajihub/hr-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Service persists notifications. Emit is called after the owning
// transaction commits; failures are logged and never surface to the
// caller.
type Service struct {
	repo   notification.NotificationRepository
	hub    *sse.Hub
	logger *slog.Logger
}

func NewService(repo notification.NotificationRepository, hub *sse.Hub, logger *slog.Logger) *Service {
	return &Service{repo: repo, hub: hub, logger: logger}
}

// Emit stores one notification for one employee, fire-and-forget.
func (s *Service) Emit(ctx context.Context, companyID, employeeID string, typ notification.Type, title, message string, referenceID *string) {
	n := notification.Notification{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		Type:        typ,
		Title:       title,
		Message:     message,
		ReferenceID: referenceID,
	}
	created, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logger.Error("notification emit failed",
			"employee_id", employeeID, "type", string(typ), "error", err)
		return
	}

	s.hub.Publish(employeeID, sse.Event{
		EmployeeID: employeeID,
		Event:      "notification",
		Data:       notification.NewNotificationResponse(created),
	})
}

// Subscribe attaches a live event stream for an employee.
func (s *Service) Subscribe(employeeID string) (chan sse.Event, func()) {
	return s.hub.Subscribe(employeeID)
}

// ListMine returns an employee's notifications, newest first.
func (s *Service) ListMine(ctx context.Context, employeeID string, unreadOnly bool) ([]notification.Notification, error) {
	return s.repo.ListByEmployee(ctx, employeeID, unreadOnly)
}

// MarkRead marks one notification read.
func (s *Service) MarkRead(ctx context.Context, id, employeeID string) error {
	return s.repo.MarkRead(ctx, id, employeeID)
}

// MarkAllRead marks every unread notification read.
func (s *Service) MarkAllRead(ctx context.Context, employeeID string) error {
	return s.repo.MarkAllRead(ctx, employeeID)
}
