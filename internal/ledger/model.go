package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Participant identifies a person within a group. The display name doubles
// as the key; group membership guarantees uniqueness.
type Participant string

// Valid reports whether the participant name is usable as a key.
func (p Participant) Valid() bool {
	return p != ""
}

// ExpenseRecord is an immutable fact about one payment event. Records are
// created once and never edited; the only mutation the ledger supports is
// deletion.
type ExpenseRecord struct {
	ID           string
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
	Payer        Participant
	Participants []Participant
	SplitDetails map[Participant]decimal.Decimal
}

// SumTolerance is the accepted absolute difference between an expense's
// amount and the sum of its split details.
var SumTolerance = decimal.New(1, -6) // 1e-6

// NewExpenseRecord assembles a record with a fresh ID and creation timestamp.
func NewExpenseRecord(amount decimal.Decimal, description string, payer Participant, participants []Participant, splitDetails map[Participant]decimal.Decimal) ExpenseRecord {
	return ExpenseRecord{
		ID:           uuid.NewString(),
		Amount:       amount,
		Date:         time.Now().UTC(),
		Description:  description,
		Payer:        payer,
		Participants: participants,
		SplitDetails: splitDetails,
	}
}

// Validate checks the record's invariants: positive amount, a payer, a
// non-empty participant set, every split key a member of the participant
// set, and split details summing to the amount within SumTolerance.
func (r ExpenseRecord) Validate() error {
	if !r.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if !r.Payer.Valid() {
		return &ValidationError{Field: "payer", Reason: "must not be empty"}
	}
	if len(r.Participants) == 0 {
		return &ValidationError{Field: "participants", Reason: "must not be empty"}
	}

	members := make(map[Participant]bool, len(r.Participants))
	for _, p := range r.Participants {
		if !p.Valid() {
			return &ValidationError{Field: "participants", Reason: "must not contain empty names"}
		}
		members[p] = true
	}

	sum := decimal.Zero
	for p, share := range r.SplitDetails {
		if !members[p] {
			return &ValidationError{Field: "splitDetails", Reason: "split for " + string(p) + " is not a participant"}
		}
		if share.IsNegative() {
			return &ValidationError{Field: "splitDetails", Reason: "share for " + string(p) + " is negative"}
		}
		sum = sum.Add(share)
	}
	if sum.Sub(r.Amount).Abs().GreaterThan(SumTolerance) {
		return &ValidationError{Field: "splitDetails", Reason: "shares sum to " + sum.String() + ", expected " + r.Amount.String()}
	}

	return nil
}

// Document is the stable serialized form of an ExpenseRecord, used both for
// the document store and for HTTP payloads. Field names are part of the
// persistence contract and must not change.
type Document struct {
	ID           string             `json:"id"`
	Amount       float64            `json:"amount"`
	Date         string             `json:"date"`
	Description  *string            `json:"description"`
	SplitDetails map[string]float64 `json:"splitDetails"`
	Participants []string           `json:"participants"`
	Payer        string             `json:"payer"`
}

// ToDocument converts the record to its serialized form.
func (r ExpenseRecord) ToDocument() Document {
	doc := Document{
		ID:           r.ID,
		Amount:       r.Amount.InexactFloat64(),
		Date:         r.Date.Format(time.RFC3339Nano),
		SplitDetails: make(map[string]float64, len(r.SplitDetails)),
		Participants: make([]string, len(r.Participants)),
		Payer:        string(r.Payer),
	}
	if r.Description != "" {
		desc := r.Description
		doc.Description = &desc
	}
	for p, share := range r.SplitDetails {
		doc.SplitDetails[string(p)] = share.InexactFloat64()
	}
	for i, p := range r.Participants {
		doc.Participants[i] = string(p)
	}
	return doc
}

// ToRecord converts the serialized form back into an ExpenseRecord.
func (d Document) ToRecord() (ExpenseRecord, error) {
	date, err := time.Parse(time.RFC3339Nano, d.Date)
	if err != nil {
		return ExpenseRecord{}, &ValidationError{Field: "date", Reason: "not a valid RFC 3339 timestamp"}
	}

	rec := ExpenseRecord{
		ID:           d.ID,
		Amount:       decimal.NewFromFloat(d.Amount),
		Date:         date,
		Payer:        Participant(d.Payer),
		Participants: make([]Participant, len(d.Participants)),
		SplitDetails: make(map[Participant]decimal.Decimal, len(d.SplitDetails)),
	}
	if d.Description != nil {
		rec.Description = *d.Description
	}
	for i, p := range d.Participants {
		rec.Participants[i] = Participant(p)
	}
	for p, share := range d.SplitDetails {
		rec.SplitDetails[Participant(p)] = decimal.NewFromFloat(share)
	}
	return rec, rec.Validate()
}
