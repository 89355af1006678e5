package loan

import (
	"finch/internal/config"
	"finch/internal/models"
)

// TypeTerms holds the fixed terms of one loan product.
type TypeTerms struct {
	BaseRate     float64 // annual rate, percent
	MaxPrincipal float64
}

// Policy holds every tunable of the quote calculation. The rate
// adjustment thresholds started life as demo values, so they are kept
// configurable rather than baked in as literals.
type Policy struct {
	Types map[string]TypeTerms

	MinPrincipal    float64
	MinTenureMonths int
	MaxTenureMonths int

	// A principal at or above the threshold earns a rate discount;
	// a tenure at or above its threshold pays a surcharge. Both are in
	// percentage points.
	LargePrincipalThreshold float64
	LargePrincipalDiscount  float64
	LongTenureThreshold     int
	LongTenureSurcharge     float64
}

// DefaultPolicy returns the built-in product table and thresholds.
func DefaultPolicy() Policy {
	return Policy{
		Types: map[string]TypeTerms{
			models.LoanTypePersonal:  {BaseRate: 9.5, MaxPrincipal: 1_500_000},
			models.LoanTypeHome:      {BaseRate: 8.2, MaxPrincipal: 10_000_000},
			models.LoanTypeEducation: {BaseRate: 7.5, MaxPrincipal: 2_500_000},
			models.LoanTypeVehicle:   {BaseRate: 8.9, MaxPrincipal: 3_000_000},
			models.LoanTypeBusiness:  {BaseRate: 10.5, MaxPrincipal: 5_000_000},
		},
		MinPrincipal:            10_000,
		MinTenureMonths:         6,
		MaxTenureMonths:         360,
		LargePrincipalThreshold: 500_000,
		LargePrincipalDiscount:  0.3,
		LongTenureThreshold:     48,
		LongTenureSurcharge:     0.5,
	}
}

// PolicyFromEnv returns the default policy with thresholds overridden
// from the environment where set.
func PolicyFromEnv() Policy {
	p := DefaultPolicy()
	p.MinPrincipal = config.GetFloatEnv("LOAN_MIN_PRINCIPAL", p.MinPrincipal)
	p.MinTenureMonths = config.GetIntEnv("LOAN_MIN_TENURE_MONTHS", p.MinTenureMonths)
	p.MaxTenureMonths = config.GetIntEnv("LOAN_MAX_TENURE_MONTHS", p.MaxTenureMonths)
	p.LargePrincipalThreshold = config.GetFloatEnv("LOAN_LARGE_PRINCIPAL_THRESHOLD", p.LargePrincipalThreshold)
	p.LargePrincipalDiscount = config.GetFloatEnv("LOAN_LARGE_PRINCIPAL_DISCOUNT", p.LargePrincipalDiscount)
	p.LongTenureThreshold = config.GetIntEnv("LOAN_LONG_TENURE_THRESHOLD", p.LongTenureThreshold)
	p.LongTenureSurcharge = config.GetFloatEnv("LOAN_LONG_TENURE_SURCHARGE", p.LongTenureSurcharge)
	return p
}

// TermsFor looks up the terms for a loan type.
func (p Policy) TermsFor(loanType string) (TypeTerms, bool) {
	terms, ok := p.Types[loanType]
	return terms, ok
}

// ClampPrincipal caps a principal at the selected type's maximum. It is
// applied whenever the type changes under an existing principal.
func (p Policy) ClampPrincipal(loanType string, principal float64) float64 {
	terms, ok := p.Types[loanType]
	if !ok {
		return principal
	}
	if principal > terms.MaxPrincipal {
		return terms.MaxPrincipal
	}
	return principal
}
