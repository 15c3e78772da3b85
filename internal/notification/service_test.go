package notification

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/balance"
)

func snapshotWithStatement() balance.Snapshot {
	return balance.Snapshot{
		Statements: []balance.OweStatement{
			{Debtor: "Bob", Creditor: "Alice", Amount: decimal.NewFromInt(10)},
		},
	}
}

func TestBalancesChangedRecordsEvent(t *testing.T) {
	svc := NewService()

	svc.BalancesChanged("trip", snapshotWithStatement())

	events := svc.ListByGroup("trip")
	require.Len(t, events, 1)
	assert.Equal(t, "trip", events[0].GroupID)
	assert.Equal(t, []string{"Bob owes Alice 10.00"}, events[0].Statements)
}

func TestSettledGroupMessage(t *testing.T) {
	svc := NewService()

	svc.BalancesChanged("trip", balance.Snapshot{})

	events := svc.ListByGroup("trip")
	require.Len(t, events, 1)
	assert.Equal(t, "Everyone is settled up", events[0].Message)
}

func TestFeedsAreScopedPerGroup(t *testing.T) {
	svc := NewService()

	svc.BalancesChanged("trip", snapshotWithStatement())

	assert.Len(t, svc.ListByGroup("trip"), 1)
	assert.Empty(t, svc.ListByGroup("flat"))
}

func TestFeedIsBounded(t *testing.T) {
	svc := NewService()

	for i := 0; i < maxEvents+25; i++ {
		svc.BalancesChanged("trip", balance.Snapshot{
			Statements: []balance.OweStatement{
				{Debtor: "Bob", Creditor: "Alice", Amount: decimal.NewFromInt(int64(i + 1))},
			},
		})
	}

	events := svc.ListByGroup("trip")
	require.Len(t, events, maxEvents)

	// The oldest events fell off; the newest one is last.
	last := events[len(events)-1]
	assert.Equal(t, []string{fmt.Sprintf("Bob owes Alice %d.00", maxEvents+25)}, last.Statements)
}
