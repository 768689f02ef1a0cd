package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Currency string

const CurrencyINR Currency = "INR"

// MinorUnits сумма в минимальных единицах валюты (пайсы для INR).
type MinorUnits int64

const minorUnitsPerMajor = 100

// maxMinorUnits ограничение сверху, чтобы значение гарантированно помещалось в int64 и в float64 без потерь.
const maxMinorUnits = int64(1) << 53

// ToMinorUnits переводит сумму в основных единицах валюты в минимальные. Единственное место,
// где выполняется такое преобразование. Возвращает ErrInvalidAmount для неположительных сумм,
// сумм точнее одной минимальной единицы и слишком больших сумм.
func ToMinorUnits(major decimal.Decimal) (MinorUnits, error) {
	if !major.IsPositive() {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, major.String())
	}

	minor := major.Mul(decimal.NewFromInt(minorUnitsPerMajor))
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: %s has more than two fractional digits", ErrInvalidAmount, major.String())
	}
	if minor.GreaterThan(decimal.NewFromInt(maxMinorUnits)) {
		return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidAmount, major.String())
	}
	return MinorUnits(minor.IntPart()), nil
}

// Major возвращает сумму в основных единицах валюты.
func (m MinorUnits) Major() decimal.Decimal {
	return decimal.New(int64(m), -2) //nolint:mnd
}
