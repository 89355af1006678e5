package loan

import (
	"math"
)

// Quote is the full set of derived figures for one loan input. It is
// ephemeral: every field recomputes from (type, principal, tenure) and
// nothing here is ever stored independently of those inputs.
type Quote struct {
	LoanType           string  `json:"loan_type"`
	Principal          float64 `json:"principal"`
	TenureMonths       int     `json:"tenure_months"`
	EffectiveRate      float64 `json:"effective_rate"`
	MonthlyInstallment float64 `json:"monthly_installment"`
	TotalInterest      float64 `json:"total_interest"`
	TotalPayable       float64 `json:"total_payable"`
}

// EffectiveRate derives the annual rate for the given inputs: the base
// rate of the type, discounted for large principals, surcharged for
// long tenures, rounded to two decimals.
func (p Policy) EffectiveRate(loanType string, principal float64, tenureMonths int) (float64, error) {
	terms, ok := p.TermsFor(loanType)
	if !ok {
		return 0, ErrUnknownLoanType
	}

	rate := terms.BaseRate
	if principal >= p.LargePrincipalThreshold {
		rate -= p.LargePrincipalDiscount
	}
	if tenureMonths >= p.LongTenureThreshold {
		rate += p.LongTenureSurcharge
	}
	return roundTo2Decimals(rate), nil
}

// ComputeQuote derives every display figure from the three inputs. The
// principal is clamped to the type's maximum first, so switching to a
// type with a smaller cap pulls an oversized principal down. Purely
// arithmetic: no side effects, re-run on every input change.
func (p Policy) ComputeQuote(loanType string, principal float64, tenureMonths int) (Quote, error) {
	terms, ok := p.TermsFor(loanType)
	if !ok {
		return Quote{}, ErrUnknownLoanType
	}
	if principal > terms.MaxPrincipal {
		principal = terms.MaxPrincipal
	}
	if principal < p.MinPrincipal {
		return Quote{}, ErrPrincipalTooSmall
	}
	if tenureMonths < p.MinTenureMonths || tenureMonths > p.MaxTenureMonths {
		return Quote{}, ErrTenureOutOfRange
	}

	rate, err := p.EffectiveRate(loanType, principal, tenureMonths)
	if err != nil {
		return Quote{}, err
	}

	installment := monthlyInstallment(principal, rate, tenureMonths)
	totalPayable := installment * float64(tenureMonths)
	totalInterest := totalPayable - principal

	return Quote{
		LoanType:           loanType,
		Principal:          principal,
		TenureMonths:       tenureMonths,
		EffectiveRate:      rate,
		MonthlyInstallment: installment,
		TotalInterest:      totalInterest,
		TotalPayable:       totalPayable,
	}, nil
}

// monthlyInstallment amortizes the principal over the tenure at the
// annual rate, rounding to the nearest whole currency unit. A zero rate
// or zero tenure yields zero, guarding the division.
func monthlyInstallment(principal, annualRate float64, tenureMonths int) float64 {
	if annualRate == 0 || tenureMonths == 0 {
		return 0
	}
	r := annualRate / (12 * 100)
	n := float64(tenureMonths)
	factor := math.Pow(1+r, n)
	return math.Round(principal * r * factor / (factor - 1))
}

func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}
