package split

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/ledger"
)

// =============================================================================
// EXACT SPLIT STRATEGY
// Each participant owes a specific exact amount (must sum to total)
// =============================================================================

// ExactStrategy implements the Strategy interface for exact amount splits.
type ExactStrategy struct{}

// Type returns the split type identifier.
func (s *ExactStrategy) Type() Type {
	return TypeExact
}

// Validate checks that every participant carries a non-negative amount and
// that the amounts sum to the total within the ledger's tolerance.
func (s *ExactStrategy) Validate(totalAmount decimal.Decimal, participants []Input) error {
	if err := validateCommon(totalAmount, participants); err != nil {
		return err
	}

	sum := decimal.Zero
	for _, p := range participants {
		if p.Amount == nil {
			return ErrMissingExactAmount
		}
		if p.Amount.IsNegative() {
			return ErrNegativeAmount
		}
		sum = sum.Add(*p.Amount)
	}
	if sum.Sub(totalAmount).Abs().GreaterThan(ledger.SumTolerance) {
		return ErrInvalidExactAmounts
	}

	return nil
}

// Calculate returns the amounts exactly as specified.
func (s *ExactStrategy) Calculate(totalAmount decimal.Decimal, participants []Input) (map[ledger.Participant]decimal.Decimal, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	shares := make(map[ledger.Participant]decimal.Decimal, len(participants))
	for _, p := range participants {
		shares[p.Name] = *p.Amount
	}

	return shares, nil
}
