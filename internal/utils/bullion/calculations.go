package bullion

import (
	"fmt"

	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	goldDivisor   = decimal.NewFromInt(10)   // gold forms are priced per 10g
	silverDivisor = decimal.NewFromInt(1000) // silver forms are priced per kg
)

// UnitDivisor returns the pricing divisor for a denomination: rates quote
// money per 10 grams for gold forms and per kilogram for silver forms.
func UnitDivisor(d domain.Denomination) decimal.Decimal {
	if d.GoldForm() {
		return goldDivisor
	}
	return silverDivisor
}

// PureWeight computes the fine-metal weight of a lot:
// weight * touch / 100, with the gold-lot cut deducted from the touch first.
// A lot without a touch counts at its gross weight.
func PureWeight(weight decimal.Decimal, touch, cut *decimal.Decimal) decimal.Decimal {
	if touch == nil {
		return weight
	}
	effective := *touch
	if cut != nil {
		effective = effective.Sub(*cut)
	}
	return weight.Mul(effective).Div(hundred)
}

// EntrySubtotal derives the signed money value of an entry. This is the only
// place in the system that turns an entry kind into a sign: positive means
// the merchant receives value, negative means the merchant gives value.
func EntrySubtotal(e domain.TransactionEntry) (decimal.Decimal, error) {
	switch e.Kind {
	case domain.EntrySell:
		return metalValue(e), nil
	case domain.EntryPurchase:
		return metalValue(e).Neg(), nil
	case domain.EntryMoney:
		if e.MoneyType == domain.MoneyGive {
			return e.Amount.Neg(), nil
		}
		return e.Amount, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown entry kind %q", e.Kind)
	}
}

// metalValue is the unsigned money value of a metal entry: pure weight scaled
// by the quoted price for the denomination's pricing unit.
func metalValue(e domain.TransactionEntry) decimal.Decimal {
	pure := PureWeight(e.Weight, e.Touch, e.Cut)
	return pure.Mul(e.Price).Div(UnitDivisor(e.ItemType))
}

// MetalDelta derives the signed per-denomination weight effect of a
// metal-only entry on a customer's metal balance: a sell reduces what the
// customer holds with the merchant, a purchase increases it.
func MetalDelta(e domain.TransactionEntry) (decimal.Decimal, error) {
	pure := e.PureWeight
	if pure.IsZero() {
		pure = PureWeight(e.Weight, e.Touch, e.Cut)
	}
	switch e.Kind {
	case domain.EntrySell:
		return pure.Neg(), nil
	case domain.EntryPurchase:
		return pure, nil
	default:
		return decimal.Zero, fmt.Errorf("entry kind %q has no metal effect", e.Kind)
	}
}

// FinalBalance computes the signed delta a transaction imposes on the
// customer's money balance at save time.
//
// Money-only transactions settle at their net amount, except against the wash
// customer, which always nets to zero. Otherwise the formula is deliberately
// asymmetric: on a sell (net >= 0) the customer's payment and any discount
// both reduce what they still owe; on a purchase the merchant's payment and
// any extra both reduce what the merchant still owes. The final negation
// aligns the result with the stored balance's sign convention.
func FinalBalance(netAmount, amountPaid, discountExtra decimal.Decimal, moneyOnly, washCustomer bool) decimal.Decimal {
	if moneyOnly {
		if washCustomer {
			return decimal.Zero
		}
		return netAmount
	}
	if netAmount.Sign() >= 0 {
		return netAmount.Sub(amountPaid).Sub(discountExtra).Neg()
	}
	return amountPaid.Sub(netAmount.Abs()).Sub(discountExtra).Neg()
}

// RateCutCredit converts a metal weight into money at a quoted rate using the
// denomination's pricing unit.
func RateCutCredit(d domain.Denomination, weight, rate decimal.Decimal) decimal.Decimal {
	return weight.Div(UnitDivisor(d)).Mul(rate)
}
