package approval

import (
	"testing"

	"github.com/gajihub/hr-backend-go/internal/domain/company"
	"github.com/gajihub/hr-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCanActOutletMode(t *testing.T) {
	r := NewResolver()

	supervisor := Subject{
		EmployeeID:     "sup-1",
		Role:           employee.RoleSupervisor,
		ManagedOutlets: []string{"outlet-a", "outlet-b"},
	}

	assert.True(t, r.CanAct(company.GroupingOutlet, supervisor, Target{
		EmployeeID: "emp-1", Role: employee.RoleStaff, OutletID: strPtr("outlet-a"),
	}))
	assert.False(t, r.CanAct(company.GroupingOutlet, supervisor, Target{
		EmployeeID: "emp-2", Role: employee.RoleStaff, OutletID: strPtr("outlet-c"),
	}), "outlet outside the supervisor's scope")
	assert.False(t, r.CanAct(company.GroupingOutlet, supervisor, Target{
		EmployeeID: "emp-3", Role: employee.RoleStaff,
	}), "target without an outlet")
}

func TestCanActDepartmentMode(t *testing.T) {
	r := NewResolver()

	supervisor := Subject{
		EmployeeID:   "sup-1",
		Role:         employee.RoleSupervisor,
		DepartmentID: strPtr("dept-1"),
	}

	assert.True(t, r.CanAct(company.GroupingDepartment, supervisor, Target{
		EmployeeID: "emp-1", DepartmentID: strPtr("dept-1"),
	}))
	assert.False(t, r.CanAct(company.GroupingDepartment, supervisor, Target{
		EmployeeID: "emp-2", DepartmentID: strPtr("dept-2"),
	}))
}

func TestCanActManagerAndAdmin(t *testing.T) {
	r := NewResolver()

	manager := Subject{EmployeeID: "mgr-1", Role: employee.RoleManager}
	admin := Subject{EmployeeID: "adm-1", Role: employee.RoleStaff, IsAdmin: true}
	target := Target{EmployeeID: "emp-1", OutletID: strPtr("outlet-x")}

	assert.True(t, r.CanAct(company.GroupingOutlet, manager, target))
	assert.True(t, r.CanAct(company.GroupingDepartment, manager, target))
	assert.True(t, r.CanAct(company.GroupingOutlet, admin, target))
}

func TestCanActNeverSelf(t *testing.T) {
	r := NewResolver()

	self := Subject{EmployeeID: "emp-1", Role: employee.RoleManager, IsAdmin: true}
	assert.False(t, r.CanAct(company.GroupingOutlet, self, Target{EmployeeID: "emp-1"}))
}

func TestInitialLevel(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, 1, r.InitialLevel(company.GroupingOutlet, employee.RoleStaff))
	assert.Equal(t, 2, r.InitialLevel(company.GroupingOutlet, employee.RoleManager))
	assert.Equal(t, 2, r.InitialLevel(company.GroupingDepartment, employee.RoleManager))
	assert.Equal(t, 3, r.InitialLevel(company.GroupingDepartment, employee.RoleStaff))
	assert.Equal(t, 3, r.InitialLevel(company.GroupingOutlet, employee.RoleSupervisor))
}

func TestLevelForRole(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, 1, r.LevelForRole(employee.RoleSupervisor, false))
	assert.Equal(t, 2, r.LevelForRole(employee.RoleManager, false))
	assert.Equal(t, 3, r.LevelForRole(employee.RoleStaff, true))
	assert.Equal(t, 0, r.LevelForRole(employee.RoleStaff, false))
}
