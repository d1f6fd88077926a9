package claim

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/gajihub/hr-backend-go/internal/domain/company"
	"github.com/gajihub/hr-backend-go/internal/domain/notification"
	"github.com/gajihub/hr-backend-go/internal/pkg/sse"
	notifsvc "github.com/gajihub/hr-backend-go/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryNotificationRepo struct {
	rows []notification.Notification
}

func (m *memoryNotificationRepo) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	m.rows = append(m.rows, n)
	return n, nil
}

func (m *memoryNotificationRepo) ListByEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]notification.Notification, error) {
	return m.rows, nil
}

func (m *memoryNotificationRepo) MarkRead(ctx context.Context, id string, employeeID string) error {
	return nil
}

func (m *memoryNotificationRepo) MarkAllRead(ctx context.Context, employeeID string) error {
	return nil
}

func TestNotifySubmittedRouting(t *testing.T) {
	repo := &memoryNotificationRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := &Service{notifications: notifsvc.NewService(repo, sse.NewHub(), logger)}
	comp := company.Company{ID: "co1"}

	pending := claim.Claim{
		ID: "c1", EmployeeID: "e1", Category: "meal",
		Amount: dec("12.00"), Status: claim.StatusPending,
	}
	svc.notifySubmitted(context.Background(), comp, pending)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, notification.TypeClaimSubmitted, repo.rows[0].Type)
	assert.Equal(t, "e1", repo.rows[0].EmployeeID)

	auto := claim.Claim{
		ID: "c2", EmployeeID: "e1", Category: "parking",
		Amount: dec("15.00"), Status: claim.StatusApproved, AutoApproved: true,
	}
	svc.notifySubmitted(context.Background(), comp, auto)
	require.Len(t, repo.rows, 2)
	assert.Equal(t, notification.TypeClaimDecided, repo.rows[1].Type)
}
