package dto

import (
	"github.com/shopspring/decimal"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
)

// Stored rule values are NUMERIC, which keeps nine fractional digits.
const moneyPrecision = 9

func moneyFromDecimal(d decimal.Decimal) *domain.Money {
	return domain.NewMoneyFromRat(d.Rat())
}

func optionalMoney(d *decimal.Decimal) *domain.Money {
	if d == nil {
		return nil
	}
	return moneyFromDecimal(*d)
}

func decimalFromMoney(m *domain.Money) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	rat := m.Rat()
	return decimal.NewFromBigInt(rat.Num(), 0).DivRound(decimal.NewFromBigInt(rat.Denom(), 0), moneyPrecision)
}
