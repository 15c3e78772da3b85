package expense

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/balance"
	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/ledger/memory"
	"github.com/splitledger/splitledger/internal/split"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(store ledger.Store, observers ...balance.Observer) *Service {
	return NewService(store, split.NewFactory(), testLogger(), observers...)
}

func evenRequest(groupID, payer string, amount float64, names ...string) *CreateExpenseRequest {
	participants := make([]*SplitParticipant, len(names))
	for i, n := range names {
		participants[i] = &SplitParticipant{Name: n}
	}
	return &CreateExpenseRequest{
		GroupID:      groupID,
		Amount:       amount,
		Payer:        payer,
		SplitType:    "EVEN",
		Participants: participants,
	}
}

func TestCreateExpenseEvenSplit(t *testing.T) {
	svc := newTestService(memory.NewStore())

	rec, synced, err := svc.CreateExpense(context.Background(),
		evenRequest("trip", "Alice", 30, "Alice", "Bob", "Carol"))
	require.NoError(t, err)
	assert.True(t, synced)
	assert.NotEmpty(t, rec.ID)

	snap, err := svc.Snapshot(context.Background(), "trip")
	require.NoError(t, err)
	require.Len(t, snap.Statements, 2)
	assert.Equal(t, "Bob owes Alice 10.00", snap.Statements[0].String())
	assert.Equal(t, "Carol owes Alice 10.00", snap.Statements[1].String())
}

func TestCreateExpenseRejectsBadSplitType(t *testing.T) {
	svc := newTestService(memory.NewStore())

	_, _, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		GroupID:      "trip",
		Amount:       30,
		Payer:        "Alice",
		SplitType:    "HALFSIES",
		Participants: []*SplitParticipant{{Name: "Alice"}},
	})
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestCreateExpenseExactSplit(t *testing.T) {
	svc := newTestService(memory.NewStore())

	a, b := 12.5, 17.5
	_, _, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		GroupID:   "trip",
		Amount:    30,
		Payer:     "Alice",
		SplitType: "EXACT",
		Participants: []*SplitParticipant{
			{Name: "Alice", Amount: &a},
			{Name: "Bob", Amount: &b},
		},
	})
	require.NoError(t, err)

	snap, err := svc.Snapshot(context.Background(), "trip")
	require.NoError(t, err)
	require.Len(t, snap.Statements, 1)
	assert.Equal(t, "Bob owes Alice 17.50", snap.Statements[0].String())
}

func TestDeleteLastExpenseClearsBalances(t *testing.T) {
	svc := newTestService(memory.NewStore())

	rec, _, err := svc.CreateExpense(context.Background(),
		evenRequest("trip", "Alice", 30, "Alice", "Bob", "Carol"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExpense(context.Background(), "trip", rec.ID))

	snap, err := svc.Snapshot(context.Background(), "trip")
	require.NoError(t, err)
	assert.Empty(t, snap.Statements)
	assert.Empty(t, snap.Balances)
}

func TestDeleteUnknownExpense(t *testing.T) {
	svc := newTestService(memory.NewStore())

	err := svc.DeleteExpense(context.Background(), "trip", "missing")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestMutualDebtsNetAcrossExpenses(t *testing.T) {
	svc := newTestService(memory.NewStore())
	ctx := context.Background()

	_, _, err := svc.CreateExpense(ctx, evenRequest("trip", "Alice", 30, "Alice", "Bob", "Carol"))
	require.NoError(t, err)
	_, _, err = svc.CreateExpense(ctx, evenRequest("trip", "Bob", 30, "Alice", "Bob", "Carol"))
	require.NoError(t, err)

	snap, err := svc.Snapshot(ctx, "trip")
	require.NoError(t, err)
	require.Len(t, snap.Statements, 2)
	assert.Equal(t, "Carol owes Alice 10.00", snap.Statements[0].String())
	assert.Equal(t, "Carol owes Bob 10.00", snap.Statements[1].String())
}

func TestGroupsAreIsolated(t *testing.T) {
	svc := newTestService(memory.NewStore())
	ctx := context.Background()

	_, _, err := svc.CreateExpense(ctx, evenRequest("trip", "Alice", 30, "Alice", "Bob"))
	require.NoError(t, err)

	snap, err := svc.Snapshot(ctx, "flat")
	require.NoError(t, err)
	assert.Empty(t, snap.Statements)
	assert.Empty(t, snap.Balances)
}

func TestSessionReloadsFromStore(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	first := newTestService(store)
	_, _, err := first.CreateExpense(ctx, evenRequest("trip", "Alice", 30, "Alice", "Bob", "Carol"))
	require.NoError(t, err)

	// A fresh service over the same store rebuilds identical state.
	second := newTestService(store)
	snap, err := second.Snapshot(ctx, "trip")
	require.NoError(t, err)
	require.Len(t, snap.Statements, 2)
	assert.Equal(t, "Bob owes Alice 10.00", snap.Statements[0].String())

	records, err := second.ListExpenses(ctx, "trip")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// failingStore rejects writes after it is switched off.
type failingStore struct {
	*memory.Store
	down bool
}

func (s *failingStore) SaveExpense(ctx context.Context, groupID string, rec ledger.ExpenseRecord) error {
	if s.down {
		return errors.New("store down")
	}
	return s.Store.SaveExpense(ctx, groupID, rec)
}

func TestCreateExpenseSurvivesStoreFailure(t *testing.T) {
	store := &failingStore{Store: memory.NewStore(), down: true}
	svc := newTestService(store)
	ctx := context.Background()

	rec, synced, err := svc.CreateExpense(ctx, evenRequest("trip", "Alice", 30, "Alice", "Bob"))
	require.NoError(t, err)
	assert.False(t, synced)
	assert.True(t, svc.Unsynced(ctx, "trip", rec.ID))

	// Balances still reflect the optimistic local record.
	snap, err := svc.Snapshot(ctx, "trip")
	require.NoError(t, err)
	require.Len(t, snap.Statements, 1)
	assert.Equal(t, "Bob owes Alice 15.00", snap.Statements[0].String())
}

func TestObserversReceiveBalanceChanges(t *testing.T) {
	obs := &countingObserver{}
	svc := newTestService(memory.NewStore(), obs)

	_, _, err := svc.CreateExpense(context.Background(),
		evenRequest("trip", "Alice", 30, "Alice", "Bob"))
	require.NoError(t, err)

	// One notification for the initial load, one for the addition.
	assert.Equal(t, 2, obs.count)
}

type countingObserver struct {
	count int
}

func (o *countingObserver) BalancesChanged(string, balance.Snapshot) { o.count++ }
