package split

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/ledger"
)

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense based on specified percentages for each participant
// =============================================================================

var hundred = decimal.NewFromInt(100)

// PercentageStrategy implements the Strategy interface for percentage-based splits.
type PercentageStrategy struct{}

// Type returns the split type identifier.
func (s *PercentageStrategy) Type() Type {
	return TypePercentage
}

// Validate checks that every participant carries a percentage in [0, 100]
// and that the percentages sum to 100 within a cent of tolerance.
func (s *PercentageStrategy) Validate(totalAmount decimal.Decimal, participants []Input) error {
	if err := validateCommon(totalAmount, participants); err != nil {
		return err
	}

	sum := decimal.Zero
	for _, p := range participants {
		if p.Percentage == nil {
			return ErrMissingPercentage
		}
		if p.Percentage.IsNegative() || p.Percentage.GreaterThan(hundred) {
			return ErrPercentageOutOfRange
		}
		sum = sum.Add(*p.Percentage)
	}
	if sum.Sub(hundred).Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
		return ErrInvalidPercentages
	}

	return nil
}

// Calculate divides the total amount based on each participant's percentage.
// Rounded shares can drift off the total by a few cents; each share is
// capped at the undistributed remainder and the last participant takes
// whatever is left, so the shares sum exactly and stay non-negative even
// when rounding over-allocates on small totals.
func (s *PercentageStrategy) Calculate(totalAmount decimal.Decimal, participants []Input) (map[ledger.Participant]decimal.Decimal, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	shares := make(map[ledger.Participant]decimal.Decimal, len(participants))
	remaining := totalAmount
	for i, p := range participants {
		if i == len(participants)-1 {
			shares[p.Name] = remaining
			break
		}
		amount := totalAmount.Mul(*p.Percentage).DivRound(hundred, 2)
		if amount.GreaterThan(remaining) {
			amount = remaining
		}
		shares[p.Name] = amount
		remaining = remaining.Sub(amount)
	}

	return shares, nil
}
