package claim

import "errors"

var (
	ErrClaimNotFound    = errors.New("claim not found")
	ErrCategoryNotFound = errors.New("claim category not configured")
	ErrDuplicateReceipt = errors.New("a claim with the same receipt already exists")
	ErrNotPending       = errors.New("claim is not pending")
	ErrNotProcessed     = errors.New("only approved or rejected claims can be reverted")
	ErrReceiptRequired  = errors.New("this category requires a receipt")
	ErrRejectionReason  = errors.New("rejection requires a reason")
)
