package finance

import (
	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/internal/domain"
	customError "github.com/segyhp/lending-engine/pkg/errors"
	"github.com/segyhp/lending-engine/pkg/utils"
)

// ApplyPayment splits an installment payment: accrued interest is covered
// first and the rest reduces principal.
func ApplyPayment(loan *domain.Loan, paymentAmount decimal.Decimal) (domain.PaymentApplication, error) {
	if loan.LoanType != domain.LoanTypeInstallment {
		return domain.PaymentApplication{}, customError.WrapInvalidOperation("applyPayment", string(loan.LoanType))
	}

	accruedInterest, err := CalculateAccruedInterest(loan)
	if err != nil {
		return domain.PaymentApplication{}, err
	}

	interestPaid := utils.MinDecimal(paymentAmount, accruedInterest)
	principalPaid := paymentAmount.Sub(interestPaid)

	return settle(loan.CurrentBalance, principalPaid, interestPaid), nil
}

// ApplyBulletLoanPayment applies a split the caller has already decided.
func ApplyBulletLoanPayment(currentBalance, interestAmount, principalAmount decimal.Decimal) domain.PaymentApplication {
	return settle(currentBalance, principalAmount, interestAmount)
}

// settle takes the new balance from the rounded principal so the balance
// always moves by exactly the principal that gets stored.
func settle(currentBalance, principalPaid, interestPaid decimal.Decimal) domain.PaymentApplication {
	principalPaid = utils.RoundCurrency(principalPaid)
	newBalance := currentBalance.Sub(principalPaid)
	isPaidOff := utils.IsPaidOff(newBalance)
	if isPaidOff {
		newBalance = decimal.Zero
	}

	return domain.PaymentApplication{
		NewBalance:    utils.RoundCurrency(newBalance),
		PrincipalPaid: principalPaid,
		InterestPaid:  utils.RoundCurrency(interestPaid),
		IsPaidOff:     isPaidOff,
	}
}
