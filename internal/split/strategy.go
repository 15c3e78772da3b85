// Package split computes per-participant share maps for a new expense.
// Every participant appears in the result, the payer included: an expense's
// split details always sum to its full amount, and the payer's own share
// simply nets to zero downstream.
package split

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/ledger"
)

// Type identifies a split strategy.
type Type string

const (
	TypeEven       Type = "EVEN"
	TypeExact      Type = "EXACT"
	TypePercentage Type = "PERCENTAGE"
)

// Input describes one participant's part in a split request.
type Input struct {
	Name       ledger.Participant
	Amount     *decimal.Decimal // For EXACT splits
	Percentage *decimal.Decimal // For PERCENTAGE splits
}

// Strategy computes the share owed by each participant toward an expense.
type Strategy interface {
	// Calculate returns a share per participant summing to totalAmount.
	Calculate(totalAmount decimal.Decimal, participants []Input) (map[ledger.Participant]decimal.Decimal, error)

	// Type returns the identifier for this strategy.
	Type() Type

	// Validate checks if the inputs are valid for this strategy.
	Validate(totalAmount decimal.Decimal, participants []Input) error
}

// Factory creates split strategies based on the requested type.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given type.
func (f *Factory) Create(t Type) (Strategy, error) {
	switch t {
	case TypeEven:
		return &EvenStrategy{}, nil
	case TypeExact:
		return &ExactStrategy{}, nil
	case TypePercentage:
		return &PercentageStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", t)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests).
func (f *Factory) CreateFromString(t string) (Strategy, error) {
	return f.Create(Type(t))
}

var (
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrDuplicateParticipant = errors.New("participants must be unique")
	ErrMissingExactAmount   = errors.New("exact amount required for all participants")
	ErrInvalidExactAmounts  = errors.New("exact amounts must sum to total amount")
	ErrMissingPercentage    = errors.New("percentage value required for all participants")
	ErrInvalidPercentages   = errors.New("percentages must sum to 100")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
)

// validateCommon runs the checks shared by every strategy.
func validateCommon(totalAmount decimal.Decimal, participants []Input) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount.IsNegative() {
		return ErrNegativeAmount
	}
	seen := make(map[ledger.Participant]bool, len(participants))
	for _, p := range participants {
		if seen[p.Name] {
			return ErrDuplicateParticipant
		}
		seen[p.Name] = true
	}
	return nil
}
