package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/date"
	customError "github.com/segyhp/lending-engine/pkg/errors"
	"github.com/segyhp/lending-engine/pkg/utils"
)

// CalculateAccruedInterest returns one interval of interest on an installment
// loan's current balance: balance × rate / 100, rounded to the cent.
func CalculateAccruedInterest(loan *domain.Loan) (decimal.Decimal, error) {
	if loan.LoanType != domain.LoanTypeInstallment {
		return decimal.Zero, customError.WrapInvalidOperation("calculateAccruedInterest", string(loan.LoanType))
	}

	if !loan.InterestRate.IsPositive() || !loan.CurrentBalance.IsPositive() {
		return decimal.Zero, nil
	}

	return utils.RoundCurrency(utils.PercentOf(loan.CurrentBalance, loan.InterestRate)), nil
}

// CalculateBulletAccrual walks a bullet loan's payment history up to asOf.
//
// Interest accrues on the principal outstanding during each span between
// payments, counted in complete cadences from the previous payment (or the
// start date). Payments dated after asOf are ignored. The input slice is
// not modified.
func CalculateBulletAccrual(loan *domain.Loan, payments []*domain.Payment, asOf date.Date) (domain.InterestSummary, error) {
	if loan.LoanType != domain.LoanTypeBullet {
		return domain.InterestSummary{}, customError.WrapInvalidOperation("calculateBulletAccrual", string(loan.LoanType))
	}

	summary := domain.InterestSummary{
		TotalInterestAccrued: decimal.Zero,
		TotalInterestPaid:    decimal.Zero,
		PendingInterest:      decimal.Zero,
	}
	if !loan.InterestRate.IsPositive() || !loan.PrincipalAmount.IsPositive() {
		return summary, nil
	}

	cadence := loan.Cadence().OrDefault()
	principal := loan.PrincipalAmount
	cursor := loan.StartDate
	accrued := decimal.Zero
	paidInterest := decimal.Zero

	for _, p := range sortedByDate(payments) {
		if p.PaymentDate.After(asOf) {
			break
		}
		intervals := IntervalsElapsed(cursor, p.PaymentDate, cadence)
		accrued = accrued.Add(utils.PercentOf(principal, loan.InterestRate).Mul(decimal.NewFromInt(int64(intervals))))
		paidInterest = paidInterest.Add(p.InterestAmount)
		principal = principal.Sub(p.PrincipalAmount)
		cursor = p.PaymentDate
	}

	intervals := IntervalsElapsed(cursor, asOf, cadence)
	accrued = accrued.Add(utils.PercentOf(principal, loan.InterestRate).Mul(decimal.NewFromInt(int64(intervals))))

	summary.TotalInterestAccrued = utils.RoundCurrency(accrued)
	summary.TotalInterestPaid = utils.RoundCurrency(paidInterest)
	summary.PendingInterest = utils.RoundCurrency(accrued.Sub(paidInterest))
	return summary, nil
}

// sortedByDate returns a copy ordered by payment date, oldest first, keeping
// the input order for payments on the same day.
func sortedByDate(payments []*domain.Payment) []*domain.Payment {
	sorted := make([]*domain.Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PaymentDate.Before(sorted[j].PaymentDate)
	})
	return sorted
}
