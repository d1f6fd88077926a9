package fixtures

import (
	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

func intPtr(i int) *int             { return &i }
func strPtr(s string) *string       { return &s }
func float64Ptr(f float64) *float64 { return &f }

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// DefaultLeaveTypes returns the Malaysian Employment Act leave policies
// seeded for every new company. Admins can edit them afterwards.
func DefaultLeaveTypes(companyID string) []leave.LeaveType {
	return []leave.LeaveType{
		{
			CompanyID:      companyID,
			Code:           "ANNUAL",
			Name:           "Annual Leave",
			IsPaid:         true,
			CarriesForward: true,
			CarryForwardCap: float64Ptr(5),
			DefaultDays:    8,
			Steps: []leave.EntitlementStep{
				{MinYears: 0, Days: 8},
				{MinYears: 2, Days: 12},
				{MinYears: 5, Days: 16},
			},
		},
		{
			CompanyID:          companyID,
			Code:               "SICK",
			Name:               "Sick Leave",
			IsPaid:             true,
			RequiresAttachment: true,
			DefaultDays:        14,
			Steps: []leave.EntitlementStep{
				{MinYears: 0, Days: 14},
				{MinYears: 2, Days: 18},
				{MinYears: 5, Days: 22},
			},
		},
		{
			CompanyID:          companyID,
			Code:               "HOSPITALIZATION",
			Name:               "Hospitalization Leave",
			IsPaid:             true,
			RequiresAttachment: true,
			DefaultDays:        60,
		},
		{
			CompanyID:         companyID,
			Code:              "MATERNITY",
			Name:              "Maternity Leave",
			IsPaid:            true,
			IsConsecutive:     true,
			GenderRestriction: strPtr("female"),
			MinServiceDays:    intPtr(90),
			DefaultDays:       98,
		},
		{
			CompanyID:             companyID,
			Code:                  "PATERNITY",
			Name:                  "Paternity Leave",
			IsPaid:                true,
			IsConsecutive:         true,
			GenderRestriction:     strPtr("male"),
			MinServiceDays:        intPtr(365),
			MaxOccurrencesPerYear: intPtr(1),
			DefaultDays:           7,
		},
		{
			CompanyID:   companyID,
			Code:        "UNPAID",
			Name:        "Unpaid Leave",
			IsPaid:      false,
			DefaultDays: 0,
		},
		{
			CompanyID:             companyID,
			Code:                  "MARRIAGE",
			Name:                  "Marriage Leave",
			IsPaid:                true,
			MaxOccurrencesPerYear: intPtr(1),
			DefaultDays:           3,
		},
		{
			CompanyID:             companyID,
			Code:                  "COMPASSIONATE",
			Name:                  "Compassionate Leave",
			IsPaid:                true,
			MaxOccurrencesPerYear: intPtr(3),
			DefaultDays:           3,
		},
	}
}

// DefaultClaimCategories returns the expense categories and caps seeded
// for every new company.
func DefaultClaimCategories(companyID string) []claim.CategoryRule {
	return []claim.CategoryRule{
		{
			CompanyID:       companyID,
			Category:        "meal",
			MaxAmount:       decimalPtr("30.00"),
			AutoCap:         true,
			ReceiptRequired: true,
		},
		{
			CompanyID:       companyID,
			Category:        "parking",
			MaxAmount:       decimalPtr("20.00"),
			AutoCap:         true,
			ReceiptRequired: false,
		},
		{
			CompanyID:       companyID,
			Category:        "fuel",
			MaxAmount:       decimalPtr("150.00"),
			AutoCap:         false,
			ReceiptRequired: true,
		},
		{
			CompanyID:       companyID,
			Category:        "toll",
			MaxAmount:       decimalPtr("50.00"),
			AutoCap:         true,
			ReceiptRequired: false,
		},
		{
			CompanyID:       companyID,
			Category:        "other",
			ReceiptRequired: true,
		},
	}
}
