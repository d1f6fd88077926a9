package postgresql

import (
	"context"

	"github.com/gajihub/hr-backend-go/internal/domain/notification"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

// Create implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (
			id, company_id, employee_id, type, title, message, reference_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		n.ID, n.CompanyID, n.EmployeeID, n.Type, n.Title, n.Message, n.ReferenceID,
	).Scan(&n.CreatedAt)
	if err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

// ListByEmployee implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, type, title, message, reference_id, read_at, created_at
		FROM notifications
		WHERE employee_id = $1 AND ($2 = false OR read_at IS NULL)
		ORDER BY created_at DESC
		LIMIT 100
	`

	rows, err := q.Query(ctx, query, employeeID, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		err := rows.Scan(&n.ID, &n.CompanyID, &n.EmployeeID, &n.Type, &n.Title, &n.Message, &n.ReferenceID, &n.ReadAt, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, id string, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET read_at = now()
		WHERE id = $1 AND employee_id = $2 AND read_at IS NULL
	`
	commandTag, err := q.Exec(ctx, query, id, employeeID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET read_at = now()
		WHERE employee_id = $1 AND read_at IS NULL
	`
	_, err := q.Exec(ctx, query, employeeID)
	return err
}
