package parcel

import (
	"errors"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const weightScale = 3

var (
	ErrWeightIsNotConstructed = errors.New("Weight must be created via NewWeight")

	// MaxWeight is the heaviest parcel a branch accepts, in kilograms.
	MaxWeight = decimal.NewFromInt(1000)

	// MinWeight is the smallest stored weight, one gram.
	MinWeight = decimal.New(1, -weightScale)
)

// Weight is the booked parcel weight in kilograms, kept to gram precision.
type Weight struct { //nolint:recvcheck //using for validation
	kg    decimal.Decimal
	guard guard.ConstructorGuard
}

// NewWeight requires 0 < kg <= MaxWeight and rounds to grams. A positive weight
// below half a gram is kept as MinWeight rather than rounded away.
func NewWeight(kg decimal.Decimal) (Weight, error) {
	if !kg.IsPositive() || kg.GreaterThan(MaxWeight) {
		return Weight{}, errs.NewValueIsOutOfRangeError("weight", kg.String(), "0 (exclusive)", MaxWeight.String())
	}

	rounded := kg.Round(weightScale)
	if rounded.LessThan(MinWeight) {
		rounded = MinWeight
	}
	return Weight{kg: rounded, guard: guard.NewConstructorGuard()}, nil
}

// WeightFromFloat is a convenience for transport layers that decode JSON numbers.
func WeightFromFloat(kg float64) (Weight, error) {
	return NewWeight(decimal.NewFromFloat(kg))
}

func (w Weight) Kilograms() decimal.Decimal {
	return w.kg
}

func (w Weight) String() string {
	return w.kg.StringFixed(weightScale)
}

func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}
