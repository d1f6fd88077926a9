package approval

import (
	"github.com/gajihub/hr-backend-go/internal/domain/company"
	"github.com/gajihub/hr-backend-go/internal/domain/employee"
	"github.com/gajihub/hr-backend-go/internal/domain/leave"
)

// Subject is the actor asking to approve something.
type Subject struct {
	EmployeeID     string
	Role           employee.Role
	IsAdmin        bool
	DepartmentID   *string
	ManagedOutlets []string
}

// Target is the employee whose record is being acted on.
type Target struct {
	EmployeeID   string
	Role         employee.Role
	OutletID     *string
	DepartmentID *string
}

// Resolver decides who may approve what. It holds no state and touches
// no storage; callers load the inputs.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// CanAct reports whether the subject may act on the target's records
// under the company's grouping mode. Self-approval is never allowed.
func (r *Resolver) CanAct(mode company.GroupingMode, s Subject, t Target) bool {
	if s.EmployeeID == t.EmployeeID {
		return false
	}
	if s.IsAdmin {
		return true
	}

	switch s.Role {
	case employee.RoleManager:
		return true
	case employee.RoleSupervisor:
		switch mode {
		case company.GroupingOutlet:
			if t.OutletID == nil {
				return false
			}
			for _, id := range s.ManagedOutlets {
				if id == *t.OutletID {
					return true
				}
			}
			return false
		case company.GroupingDepartment:
			return s.DepartmentID != nil && t.DepartmentID != nil &&
				*s.DepartmentID == *t.DepartmentID
		}
	}
	return false
}

// InitialLevel returns the approval level a submission starts at:
// staff submissions in outlet mode start with the supervisor, a
// manager's own submission starts with another manager, everything
// else goes straight to the admin.
func (r *Resolver) InitialLevel(mode company.GroupingMode, submitter employee.Role) int {
	switch {
	case mode == company.GroupingOutlet && submitter == employee.RoleStaff:
		return leave.LevelSupervisor
	case submitter == employee.RoleManager:
		return leave.LevelManager
	default:
		return leave.LevelAdmin
	}
}

// LevelForRole maps an acting role to the approval level it serves.
// Admins act at level 3 regardless of role.
func (r *Resolver) LevelForRole(role employee.Role, isAdmin bool) int {
	if isAdmin {
		return leave.LevelAdmin
	}
	switch role {
	case employee.RoleSupervisor:
		return leave.LevelSupervisor
	case employee.RoleManager:
		return leave.LevelManager
	}
	return 0
}
