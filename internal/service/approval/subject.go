package approval

import "github.com/gajihub/hr-backend-go/internal/domain/employee"

// SubjectFor builds a Subject from a loaded employee row plus the
// admin claim and managed outlet assignments.
func SubjectFor(e employee.Employee, isAdmin bool, managedOutlets []string) Subject {
	return Subject{
		EmployeeID:     e.ID,
		Role:           e.Role,
		IsAdmin:        isAdmin,
		DepartmentID:   e.DepartmentID,
		ManagedOutlets: managedOutlets,
	}
}

// TargetFor builds a Target from a loaded employee row.
func TargetFor(e employee.Employee) Target {
	return Target{
		EmployeeID:   e.ID,
		Role:         e.Role,
		OutletID:     e.OutletID,
		DepartmentID: e.DepartmentID,
	}
}
