package split

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/ledger"
)

// =============================================================================
// EVEN SPLIT STRATEGY
// Divides the expense equally among all participants
// =============================================================================

// EvenStrategy implements the Strategy interface for even splits.
type EvenStrategy struct{}

// Type returns the split type identifier.
func (s *EvenStrategy) Type() Type {
	return TypeEven
}

// Validate checks if the inputs are valid for an even split.
func (s *EvenStrategy) Validate(totalAmount decimal.Decimal, participants []Input) error {
	return validateCommon(totalAmount, participants)
}

// Calculate divides the total amount evenly among all participants. The
// division truncates at cent precision and the remainder lands on the first
// participant, so the shares always sum exactly to the total.
func (s *EvenStrategy) Calculate(totalAmount decimal.Decimal, participants []Input) (map[ledger.Participant]decimal.Decimal, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	count := decimal.NewFromInt(int64(len(participants)))
	share := totalAmount.DivRound(count, 2)

	// The rounded shares can over- or under-shoot the total by a few
	// cents; the first participant absorbs the difference.
	remainder := totalAmount.Sub(share.Mul(count))

	shares := make(map[ledger.Participant]decimal.Decimal, len(participants))
	for i, p := range participants {
		amount := share
		if i == 0 {
			amount = amount.Add(remainder)
		}
		shares[p.Name] = amount
	}

	return shares, nil
}
