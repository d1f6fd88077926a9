package company

import "errors"

var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrGroupingModeLocked  = errors.New("grouping mode cannot change after the first employee record")
	ErrInvalidGroupingMode = errors.New("grouping mode must be outlet or department")
)
