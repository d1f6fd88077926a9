package employee

import "context"

// EmployeeRepository is the read side the engine needs; employee CRUD
// itself lives with the external admin surface.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// ManagedOutletIDs returns the outlets a supervisor is assigned to.
	ManagedOutletIDs(ctx context.Context, employeeID string) ([]string, error)

	// ActiveSupervisorsByOutlet returns all active supervisors assigned
	// to an outlet, used for approval-queue notifications.
	ActiveSupervisorsByOutlet(ctx context.Context, outletID string) ([]Employee, error)

	// TeamIDs returns employee ids in the actor's grouping scope: the
	// given outlets (outlet mode) or the given department.
	TeamIDs(ctx context.Context, companyID string, outletIDs []string, departmentID *string) ([]string, error)
}
