package balance

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/ledger"
)

// NetBalance is a participant's aggregate signed position across the group.
// Positive means the participant is owed money, negative means they owe.
type NetBalance struct {
	Participant ledger.Participant
	Amount      decimal.Decimal
}

// OweStatement is a directional, positive-amount debt between two
// participants. For any pair of participants at most one statement exists
// at a time; mutual debts are always netted into one direction or nothing.
type OweStatement struct {
	Debtor   ledger.Participant
	Creditor ledger.Participant
	Amount   decimal.Decimal
}

// String renders the statement with the amount rounded to cents. Rounding
// happens only here, never during accumulation.
func (s OweStatement) String() string {
	return fmt.Sprintf("%s owes %s %s", s.Debtor, s.Creditor, s.Amount.StringFixed(2))
}

// Snapshot is an immutable view of the engine's derived state.
type Snapshot struct {
	Balances   []NetBalance
	Statements []OweStatement
}

func sortBalances(balances []NetBalance) {
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].Participant < balances[j].Participant
	})
}

func sortStatements(statements []OweStatement) {
	sort.Slice(statements, func(i, j int) bool {
		if statements[i].Debtor != statements[j].Debtor {
			return statements[i].Debtor < statements[j].Debtor
		}
		return statements[i].Creditor < statements[j].Creditor
	})
}
