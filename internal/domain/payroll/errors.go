package payroll

import "errors"

var (
	// ErrLinkedToPayroll guards every mutate on a row a payroll item
	// has frozen. Shared across timecards, leave and claims.
	ErrLinkedToPayroll = errors.New("record is linked to a payroll item")

	ErrPayrollItemNotFound = errors.New("payroll item not found")
	ErrAlreadyLinked       = errors.New("a payroll item already exists for this employee and month")
)
