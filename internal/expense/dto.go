package expense

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/split"
)

// SplitParticipant is one participant's part in an expense creation request.
type SplitParticipant struct {
	Name       string   `json:"name"`
	Amount     *float64 `json:"amount,omitempty"`     // For EXACT split
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
}

// ToSplitInput converts to the split package's input type.
func (p *SplitParticipant) ToSplitInput() split.Input {
	in := split.Input{Name: ledger.Participant(p.Name)}
	if p.Amount != nil {
		amount := decimal.NewFromFloat(*p.Amount)
		in.Amount = &amount
	}
	if p.Percentage != nil {
		pct := decimal.NewFromFloat(*p.Percentage)
		in.Percentage = &pct
	}
	return in
}

// CreateExpenseRequest represents the request to create an expense.
type CreateExpenseRequest struct {
	GroupID      string              `json:"group_id"`
	Description  string              `json:"description,omitempty"`
	Amount       float64             `json:"amount"`
	Payer        string              `json:"payer"`
	SplitType    string              `json:"split_type"` // EVEN, EXACT, PERCENTAGE
	Participants []*SplitParticipant `json:"participants"`
}

// ExpenseResponse represents the response for an expense. It reuses the
// ledger's stable document field names and adds the sync flag.
type ExpenseResponse struct {
	ledger.Document
	Synced bool `json:"synced"`
}

// ToResponse converts an expense record to its response DTO.
func ToResponse(rec ledger.ExpenseRecord, synced bool) *ExpenseResponse {
	return &ExpenseResponse{Document: rec.ToDocument(), Synced: synced}
}
