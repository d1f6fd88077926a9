package advance

import "errors"

var (
	ErrAdvanceNotFound   = errors.New("salary advance not found")
	ErrNotActive         = errors.New("salary advance is not active")
	ErrOverDeduction     = errors.New("deduction exceeds remaining advance amount")
	ErrRefundExceedsPaid = errors.New("refund exceeds deducted total")
)
