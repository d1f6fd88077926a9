package claim

import (
	"context"
	"fmt"

	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/gajihub/hr-backend-go/internal/domain/company"
	"github.com/gajihub/hr-backend-go/internal/domain/employee"
	"github.com/gajihub/hr-backend-go/internal/domain/notification"
	"github.com/gajihub/hr-backend-go/internal/domain/payroll"
	"github.com/gajihub/hr-backend-go/internal/pkg/clock"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/pkg/validator"
	"github.com/gajihub/hr-backend-go/internal/repository/postgresql"
	"github.com/gajihub/hr-backend-go/internal/service/approval"
	"github.com/gajihub/hr-backend-go/internal/service/file"
	notifsvc "github.com/gajihub/hr-backend-go/internal/service/notification"
)

type Service struct {
	db            *database.DB
	claims        claim.ClaimRepository
	categories    claim.CategoryRuleRepository
	employees     employee.EmployeeRepository
	companies     company.CompanyRepository
	files         *file.Service
	notifications *notifsvc.Service
	resolver      *approval.Resolver

	clockFor func(timezone string) clock.Clock
}

func NewService(
	db *database.DB,
	claims claim.ClaimRepository,
	categories claim.CategoryRuleRepository,
	employees employee.EmployeeRepository,
	companies company.CompanyRepository,
	files *file.Service,
	notifications *notifsvc.Service,
	resolver *approval.Resolver,
) *Service {
	return &Service{
		db:            db,
		claims:        claims,
		categories:    categories,
		employees:     employees,
		companies:     companies,
		files:         files,
		notifications: notifications,
		resolver:      resolver,
		clockFor:      clock.New,
	}
}

// Submit validates a claim against its category rules and AI signals
// and persists it with its disposition applied.
func (s *Service) Submit(ctx context.Context, actor jwt.Actor, req *claim.SubmitClaimRequest) (claim.Claim, error) {
	if err := req.Validate(); err != nil {
		return claim.Claim{}, err
	}

	emp, err := s.employees.GetByID(ctx, actor.EmployeeID, actor.CompanyID)
	if err != nil {
		return claim.Claim{}, err
	}
	if emp.Status != employee.StatusActive {
		return claim.Claim{}, employee.ErrEmployeeInactive
	}

	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return claim.Claim{}, err
	}

	rule, err := s.categories.GetByCategory(ctx, comp.ID, req.Category)
	if err != nil {
		return claim.Claim{}, err
	}

	if rule.ReceiptRequired && len(req.Receipt) == 0 {
		return claim.Claim{}, claim.ErrReceiptRequired
	}

	if req.AI != nil && req.AI.ReceiptHash != "" {
		exists, err := s.claims.ExistsByReceiptHash(ctx, emp.ID, req.AI.ReceiptHash)
		if err != nil {
			return claim.Claim{}, err
		}
		if exists {
			return claim.Claim{}, claim.ErrDuplicateReceipt
		}
	}

	disposition := Evaluate(rule, req.ParsedAmount, req.AI, comp.AutoApproveThreshold, comp.MismatchTolerance)

	var receiptURL *string
	if len(req.Receipt) > 0 {
		url, err := s.files.Upload(ctx, req.Receipt, "receipts", req.ReceiptFilename)
		if err != nil {
			return claim.Claim{}, err
		}
		receiptURL = &url
	}

	date, _ := validator.IsValidDate(req.Date)
	c := claim.Claim{
		EmployeeID:            emp.ID,
		CompanyID:             comp.ID,
		Date:                  date,
		Category:              rule.Category,
		Amount:                disposition.Amount,
		SubmittedAmount:       req.ParsedAmount,
		ReceiptURL:            receiptURL,
		AmountMismatchIgnored: disposition.MismatchIgnored,
		Status:                disposition.Status,
		PendingReason:         disposition.PendingReason,
		AutoApproved:          disposition.AutoApproved,
	}
	if req.AI != nil {
		c.AIExtractedAmount = req.AI.Extracted
		confidence := claim.Confidence(req.AI.Confidence)
		c.AIConfidence = &confidence
		if req.AI.ReceiptHash != "" {
			hash := req.AI.ReceiptHash
			c.ReceiptHash = &hash
		}
	}
	if disposition.AutoApproved {
		now := s.clockFor(comp.Timezone).Now()
		c.ApprovedAt = &now
	}

	created, err := s.claims.Create(ctx, c)
	if err != nil {
		return claim.Claim{}, err
	}

	s.notifySubmitted(ctx, comp, created)
	return created, nil
}

func (s *Service) notifySubmitted(ctx context.Context, comp company.Company, c claim.Claim) {
	amount := c.Amount.StringFixed(2)
	if c.AutoApproved {
		s.notifications.Emit(ctx, comp.ID, c.EmployeeID, notification.TypeClaimDecided,
			"Claim auto-approved",
			fmt.Sprintf("Your %s claim of %s was approved automatically.", c.Category, amount),
			&c.ID)
		return
	}
	s.notifications.Emit(ctx, comp.ID, c.EmployeeID, notification.TypeClaimSubmitted,
		"Claim submitted",
		fmt.Sprintf("Your %s claim of %s is awaiting review.", c.Category, amount),
		&c.ID)
}

// Approve marks a pending claim approved.
func (s *Service) Approve(ctx context.Context, actor jwt.Actor, id string) (claim.Claim, error) {
	return s.decide(ctx, actor, id, claim.StatusApproved, nil)
}

// Reject marks a pending claim rejected with a reason.
func (s *Service) Reject(ctx context.Context, actor jwt.Actor, req *claim.RejectClaimRequest) (claim.Claim, error) {
	if err := req.Validate(); err != nil {
		return claim.Claim{}, err
	}
	return s.decide(ctx, actor, req.ID, claim.StatusRejected, &req.Reason)
}

func (s *Service) decide(ctx context.Context, actor jwt.Actor, id string, decision claim.Status, reason *string) (claim.Claim, error) {
	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return claim.Claim{}, err
	}

	var result claim.Claim
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		c, err := s.claims.GetByIDForUpdate(txCtx, id, actor.CompanyID)
		if err != nil {
			return err
		}
		if c.Linked() {
			return payroll.ErrLinkedToPayroll
		}
		if c.Status != claim.StatusPending {
			return claim.ErrNotPending
		}
		if err := s.authorize(txCtx, comp, actor, c.EmployeeID); err != nil {
			return err
		}

		now := s.clockFor(comp.Timezone).Now()
		c.Status = decision
		c.PendingReason = nil
		c.ApprovedBy = &actor.EmployeeID
		c.ApprovedAt = &now
		c.RejectionReason = reason

		if err := s.claims.Update(txCtx, c); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return claim.Claim{}, err
	}

	verb := "approved"
	if decision == claim.StatusRejected {
		verb = "rejected"
	}
	s.notifications.Emit(ctx, comp.ID, result.EmployeeID, notification.TypeClaimDecided,
		"Claim "+verb,
		fmt.Sprintf("Your %s claim of %s was %s.", result.Category, result.Amount.StringFixed(2), verb),
		&result.ID)
	return result, nil
}

// Revert puts an approved or rejected claim back to pending, only
// while it is not linked to payroll.
func (s *Service) Revert(ctx context.Context, actor jwt.Actor, id string) (claim.Claim, error) {
	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return claim.Claim{}, err
	}

	var result claim.Claim
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		c, err := s.claims.GetByIDForUpdate(txCtx, id, actor.CompanyID)
		if err != nil {
			return err
		}
		if c.Linked() {
			return payroll.ErrLinkedToPayroll
		}
		if c.Status == claim.StatusPending {
			return claim.ErrNotProcessed
		}
		if err := s.authorize(txCtx, comp, actor, c.EmployeeID); err != nil {
			return err
		}

		reason := "reverted for re-review"
		c.Status = claim.StatusPending
		c.PendingReason = &reason
		c.AutoApproved = false
		c.ApprovedBy = nil
		c.ApprovedAt = nil
		c.RejectionReason = nil

		if err := s.claims.Update(txCtx, c); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return claim.Claim{}, err
	}

	s.notifications.Emit(ctx, comp.ID, result.EmployeeID, notification.TypeClaimDecided,
		"Claim reverted",
		fmt.Sprintf("Your %s claim of %s was put back under review.", result.Category, result.Amount.StringFixed(2)),
		&result.ID)
	return result, nil
}

// Delete removes an unlinked claim; the requester may delete their own
// pending claim, approvers anything unlinked.
func (s *Service) Delete(ctx context.Context, actor jwt.Actor, id string) error {
	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return err
	}

	var receiptURL *string
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		c, err := s.claims.GetByIDForUpdate(txCtx, id, actor.CompanyID)
		if err != nil {
			return err
		}
		if c.Linked() {
			return payroll.ErrLinkedToPayroll
		}
		if c.EmployeeID != actor.EmployeeID || c.Status != claim.StatusPending {
			if err := s.authorize(txCtx, comp, actor, c.EmployeeID); err != nil {
				return err
			}
		}
		receiptURL = c.ReceiptURL
		return s.claims.Delete(txCtx, id, actor.CompanyID)
	})
	if err != nil {
		return err
	}

	if receiptURL != nil {
		s.files.Delete(ctx, *receiptURL)
	}
	return nil
}

// BulkApprove approves each claim independently and reports per-id
// outcomes; linked or non-pending rows are skipped, not failed.
func (s *Service) BulkApprove(ctx context.Context, actor jwt.Actor, ids []string) []claim.BulkOutcome {
	outcomes := make([]claim.BulkOutcome, 0, len(ids))
	for _, id := range ids {
		_, err := s.Approve(ctx, actor, id)
		switch {
		case err == nil:
			outcomes = append(outcomes, claim.BulkOutcome{ID: id, Status: "approved"})
		case err == payroll.ErrLinkedToPayroll || err == claim.ErrNotPending:
			outcomes = append(outcomes, claim.BulkOutcome{ID: id, Status: "skipped", Detail: err.Error()})
		default:
			outcomes = append(outcomes, claim.BulkOutcome{ID: id, Status: "failed", Detail: err.Error()})
		}
	}
	return outcomes
}

// MyClaims lists the actor's claims for one month.
func (s *Service) MyClaims(ctx context.Context, actor jwt.Actor, month, year int) ([]claim.Claim, error) {
	if !validator.IsValidMonth(month) || year < 2000 || year > 2100 {
		return nil, validator.ValidationErrors{{Field: "month", Message: "invalid month or year"}}
	}
	return s.claims.ListByEmployee(ctx, actor.EmployeeID, month, year)
}

// TeamPending lists pending claims in the actor's approval scope.
func (s *Service) TeamPending(ctx context.Context, actor jwt.Actor) ([]claim.Claim, error) {
	emp, err := s.employees.GetByID(ctx, actor.EmployeeID, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	var outlets []string
	if emp.Role == employee.RoleSupervisor {
		if outlets, err = s.employees.ManagedOutletIDs(ctx, emp.ID); err != nil {
			return nil, err
		}
	}
	ids, err := s.employees.TeamIDs(ctx, actor.CompanyID, outlets, emp.DepartmentID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.claims.ListPendingByEmployeeIDs(ctx, actor.CompanyID, ids)
}

func (s *Service) authorize(ctx context.Context, comp company.Company, actor jwt.Actor, targetEmployeeID string) error {
	subjectEmp, err := s.employees.GetByID(ctx, actor.EmployeeID, actor.CompanyID)
	if err != nil {
		return err
	}
	targetEmp, err := s.employees.GetByID(ctx, targetEmployeeID, actor.CompanyID)
	if err != nil {
		return err
	}
	var managed []string
	if subjectEmp.Role == employee.RoleSupervisor {
		if managed, err = s.employees.ManagedOutletIDs(ctx, subjectEmp.ID); err != nil {
			return err
		}
	}
	if !s.resolver.CanAct(comp.GroupingMode, approval.SubjectFor(subjectEmp, actor.IsAdmin, managed), approval.TargetFor(targetEmp)) {
		return approval.ErrNotPermitted
	}
	return nil
}
