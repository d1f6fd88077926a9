package company

import (
	"context"

	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/gajihub/hr-backend-go/internal/domain/company"
	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/gajihub/hr-backend-go/internal/fixtures"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/repository/postgresql"
)

type Service struct {
	db         *database.DB
	companies  company.CompanyRepository
	leaveTypes leave.LeaveTypeRepository
	categories claim.CategoryRuleRepository
}

func NewService(
	db *database.DB,
	companies company.CompanyRepository,
	leaveTypes leave.LeaveTypeRepository,
	categories claim.CategoryRuleRepository,
) *Service {
	return &Service{db: db, companies: companies, leaveTypes: leaveTypes, categories: categories}
}

// Get returns the actor's company profile.
func (s *Service) Get(ctx context.Context, actor jwt.Actor) (company.Company, error) {
	return s.companies.GetByID(ctx, actor.CompanyID)
}

// SeedDefaults inserts the statutory leave types and default claim
// categories the company does not have yet. Safe to call repeatedly;
// existing codes and categories are left alone.
func (s *Service) SeedDefaults(ctx context.Context, actor jwt.Actor) error {
	if _, err := s.companies.GetByID(ctx, actor.CompanyID); err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existingTypes, err := s.leaveTypes.ListByCompany(txCtx, actor.CompanyID)
		if err != nil {
			return err
		}
		haveCode := make(map[string]bool, len(existingTypes))
		for _, lt := range existingTypes {
			haveCode[lt.Code] = true
		}
		for _, lt := range fixtures.DefaultLeaveTypes(actor.CompanyID) {
			if haveCode[lt.Code] {
				continue
			}
			if _, err := s.leaveTypes.Create(txCtx, lt); err != nil {
				return err
			}
		}

		existingRules, err := s.categories.ListByCompany(txCtx, actor.CompanyID)
		if err != nil {
			return err
		}
		haveCategory := make(map[string]bool, len(existingRules))
		for _, rule := range existingRules {
			haveCategory[rule.Category] = true
		}
		for _, rule := range fixtures.DefaultClaimCategories(actor.CompanyID) {
			if haveCategory[rule.Category] {
				continue
			}
			if _, err := s.categories.Create(txCtx, rule); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListLeaveTypes returns the company's leave policies.
func (s *Service) ListLeaveTypes(ctx context.Context, actor jwt.Actor) ([]leave.LeaveType, error) {
	return s.leaveTypes.ListByCompany(ctx, actor.CompanyID)
}

// ListClaimCategories returns the company's claim category rules.
func (s *Service) ListClaimCategories(ctx context.Context, actor jwt.Actor) ([]claim.CategoryRule, error) {
	return s.categories.ListByCompany(ctx, actor.CompanyID)
}
