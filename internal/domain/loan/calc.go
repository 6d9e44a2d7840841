package loan

import (
	"fmt"
	"math"
)

const (
	minApplicantAge = 21
	maxApplicantAge = 60

	// EMI at the category's minimum tenure may not exceed this share of
	// the applicant's monthly income.
	maxIncomeShare = 0.5
)

// ComputeEMI returns the equated monthly installment for an amortizing
// loan, rounded to the nearest whole currency unit:
//
//	emi = P * r * (1+r)^n / ((1+r)^n - 1),  r = annualRatePercent/100/12
//
// A zero rate degenerates to an even split of the principal over the
// tenure (the annuity formula divides by zero there).
func ComputeEMI(principal int64, annualRatePercent float64, tenureMonths int) int64 {
	if tenureMonths <= 0 || principal <= 0 {
		return 0
	}
	r := annualRatePercent / 100 / 12
	if r == 0 {
		return int64(math.Round(float64(principal) / float64(tenureMonths)))
	}
	factor := math.Pow(1+r, float64(tenureMonths))
	emi := float64(principal) * r * factor / (factor - 1)
	return int64(math.Round(emi))
}

type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// CheckEligibility applies the acceptance rules in order; the first
// failing rule decides the reason.
func CheckEligibility(amount, monthlyIncome int64, cfg CategoryConfig, applicantAge int) Eligibility {
	if applicantAge < minApplicantAge || applicantAge > maxApplicantAge {
		return Eligibility{Reason: fmt.Sprintf("age must be between %d-%d years", minApplicantAge, maxApplicantAge)}
	}
	if amount < cfg.MinAmount || amount > cfg.MaxAmount {
		return Eligibility{Reason: fmt.Sprintf("amount must be between %d - %d", cfg.MinAmount, cfg.MaxAmount)}
	}
	emi := ComputeEMI(amount, cfg.InterestRate, cfg.MinTenure)
	if float64(emi) > float64(monthlyIncome)*maxIncomeShare {
		return Eligibility{Reason: fmt.Sprintf("monthly EMI (%d) exceeds 50%% of income", emi)}
	}
	return Eligibility{Eligible: true}
}
