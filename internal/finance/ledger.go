package finance

import (
	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/utils"
)

// BalanceAfterEdit adjusts a balance by the change in one payment's principal.
func BalanceAfterEdit(balance, oldPrincipal, newPrincipal decimal.Decimal) decimal.Decimal {
	return utils.FloorAtZero(balance.Sub(newPrincipal.Sub(oldPrincipal)))
}

// BalanceAfterDebit removes principal from a balance.
func BalanceAfterDebit(balance, principal decimal.Decimal) decimal.Decimal {
	return utils.FloorAtZero(balance.Sub(principal))
}

// BalanceAfterRemoval gives back the principal of a payment that no longer
// applies to the loan.
func BalanceAfterRemoval(balance, principal decimal.Decimal) decimal.Decimal {
	return balance.Add(principal)
}

// RemainingPrincipal is the loan's principal minus every payment's principal,
// floored at zero. It is what the stored balance should equal.
func RemainingPrincipal(loan *domain.Loan, payments []*domain.Payment) decimal.Decimal {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.PrincipalAmount)
	}
	return utils.FloorAtZero(loan.PrincipalAmount.Sub(paid))
}
