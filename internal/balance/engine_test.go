package balance

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/ledger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// expenseEven builds a record splitting amount evenly across participants,
// payer included.
func expenseEven(payer string, amount string, participants ...string) ledger.ExpenseRecord {
	total := dec(amount)
	count := decimal.NewFromInt(int64(len(participants)))
	share := total.DivRound(count, 2)

	names := make([]ledger.Participant, len(participants))
	shares := make(map[ledger.Participant]decimal.Decimal, len(participants))
	for i, p := range participants {
		names[i] = ledger.Participant(p)
		shares[names[i]] = share
	}
	// Remainder on the first participant so shares sum exactly.
	shares[names[0]] = shares[names[0]].Add(total.Sub(share.Mul(count)))

	return ledger.NewExpenseRecord(total, "", ledger.Participant(payer), names, shares)
}

func expenseExact(payer string, amount string, shares map[string]string) ledger.ExpenseRecord {
	total := dec(amount)
	names := make([]ledger.Participant, 0, len(shares))
	split := make(map[ledger.Participant]decimal.Decimal, len(shares))
	for p, s := range shares {
		names = append(names, ledger.Participant(p))
		split[ledger.Participant(p)] = dec(s)
	}
	return ledger.NewExpenseRecord(total, "", ledger.Participant(payer), names, split)
}

func statementStrings(snap Snapshot) []string {
	out := make([]string, len(snap.Statements))
	for i, s := range snap.Statements {
		out[i] = s.String()
	}
	return out
}

func TestSingleExpenseEvenSplit(t *testing.T) {
	snap := Compute([]ledger.ExpenseRecord{
		expenseEven("Alice", "30", "Alice", "Bob", "Carol"),
	})

	assert.Equal(t, []string{
		"Bob owes Alice 10.00",
		"Carol owes Alice 10.00",
	}, statementStrings(snap))
}

func TestMutualDebtsNetToOneDirection(t *testing.T) {
	// Alice pays 30 for all three, then Bob pays 30 for the same three.
	// Alice and Bob are square; Carol owes each of them 10.
	snap := Compute([]ledger.ExpenseRecord{
		expenseEven("Alice", "30", "Alice", "Bob", "Carol"),
		expenseEven("Bob", "30", "Alice", "Bob", "Carol"),
	})

	assert.Equal(t, []string{
		"Carol owes Alice 10.00",
		"Carol owes Bob 10.00",
	}, statementStrings(snap))

	for _, b := range snap.Balances {
		switch b.Participant {
		case "Alice", "Bob":
			assert.True(t, b.Amount.Equal(dec("10")), "%s should be owed 10, got %s", b.Participant, b.Amount)
		case "Carol":
			assert.True(t, b.Amount.Equal(dec("-20")), "Carol should owe 20, got %s", b.Amount)
		}
	}
}

func TestUnevenMutualDebtNetsToDifference(t *testing.T) {
	snap := Compute([]ledger.ExpenseRecord{
		expenseExact("Alice", "30", map[string]string{"Alice": "10", "Bob": "20"}),
		expenseExact("Bob", "10", map[string]string{"Bob": "5", "Alice": "5"}),
	})

	assert.Equal(t, []string{"Bob owes Alice 15.00"}, statementStrings(snap))
}

func TestPerfectOffsetEmitsNoStatement(t *testing.T) {
	snap := Compute([]ledger.ExpenseRecord{
		expenseExact("Alice", "20", map[string]string{"Alice": "10", "Bob": "10"}),
		expenseExact("Bob", "20", map[string]string{"Bob": "10", "Alice": "10"}),
	})

	assert.Empty(t, snap.Statements, "friends who are square must not appear")
	for _, b := range snap.Balances {
		assert.True(t, b.Amount.IsZero(), "%s should be settled, got %s", b.Participant, b.Amount)
	}
}

func TestPayerSelfShareHasNoNetEffect(t *testing.T) {
	with := Compute([]ledger.ExpenseRecord{
		expenseExact("Alice", "30", map[string]string{"Alice": "10", "Bob": "10", "Carol": "10"}),
	})
	without := Compute([]ledger.ExpenseRecord{
		expenseExact("Alice", "20", map[string]string{"Bob": "10", "Carol": "10"}),
	})

	assert.Equal(t, statementStrings(with), statementStrings(without))
}

func TestNoSelfDebtAndNoMutualPairs(t *testing.T) {
	records := randomRecords(rand.New(rand.NewPCG(7, 11)), 200)
	snap := Compute(records)

	seen := make(map[[2]ledger.Participant]bool)
	for _, s := range snap.Statements {
		assert.NotEqual(t, s.Debtor, s.Creditor, "self-debt emitted")
		assert.True(t, s.Amount.IsPositive(), "non-positive statement amount")

		pair := [2]ledger.Participant{s.Debtor, s.Creditor}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}
		assert.False(t, seen[pair], "pair %v appears twice", pair)
		seen[pair] = true
	}
}

func TestConservation(t *testing.T) {
	records := randomRecords(rand.New(rand.NewPCG(3, 9)), 500)
	snap := Compute(records)

	sum := decimal.Zero
	for _, b := range snap.Balances {
		sum = sum.Add(b.Amount)
	}
	assert.True(t, sum.Abs().LessThanOrEqual(dec("0.000001")),
		"net balances must sum to zero, got %s", sum)
}

func TestPermutationInvariance(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	records := randomRecords(rng, 50)
	want := Compute(records)

	for trial := 0; trial < 10; trial++ {
		shuffled := append([]ledger.ExpenseRecord(nil), records...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := Compute(shuffled)
		assert.Equal(t, statementStrings(want), statementStrings(got))
		assert.Equal(t, want.Balances, got.Balances)
	}
}

func TestIdempotentRecomputation(t *testing.T) {
	records := randomRecords(rand.New(rand.NewPCG(5, 6)), 80)

	eng := NewEngine("g")
	eng.LedgerReset(records)
	first := eng.Snapshot()
	eng.LedgerReset(records)
	second := eng.Snapshot()

	assert.Equal(t, first, second)
}

func TestIncrementalMatchesFullRecompute(t *testing.T) {
	records := randomRecords(rand.New(rand.NewPCG(13, 37)), 120)

	incremental := NewEngine("g")
	for i, rec := range records {
		incremental.ExpenseAdded(rec)

		full := Compute(records[:i+1])
		require.Equal(t, full.Balances, incremental.Snapshot().Balances, "diverged after record %d", i)
		require.Equal(t, full.Statements, incremental.Snapshot().Statements, "diverged after record %d", i)
	}
}

func TestSnapshotIsDetachedFromEngineState(t *testing.T) {
	eng := NewEngine("g")
	eng.ExpenseAdded(expenseEven("Alice", "30", "Alice", "Bob", "Carol"))

	snap := eng.Snapshot()
	snap.Statements[0].Amount = dec("999")
	snap.Balances[0].Amount = dec("999")

	fresh := eng.Snapshot()
	assert.True(t, fresh.Statements[0].Amount.Equal(dec("10")))
}

func TestObserverNotifiedOnEveryChange(t *testing.T) {
	eng := NewEngine("trip")
	obs := &recordingObserver{}
	eng.AddObserver(obs)

	eng.ExpenseAdded(expenseEven("Alice", "30", "Alice", "Bob"))
	eng.LedgerReset(nil)

	require.Len(t, obs.calls, 2)
	assert.Equal(t, "trip", obs.calls[0].groupID)
	assert.Len(t, obs.calls[0].snap.Statements, 1)
	assert.Empty(t, obs.calls[1].snap.Statements)
}

type recordingObserver struct {
	calls []struct {
		groupID string
		snap    Snapshot
	}
}

func (o *recordingObserver) BalancesChanged(groupID string, snap Snapshot) {
	o.calls = append(o.calls, struct {
		groupID string
		snap    Snapshot
	}{groupID, snap})
}

// randomRecords generates valid even-split expenses over a fixed roster.
func randomRecords(rng *rand.Rand, n int) []ledger.ExpenseRecord {
	roster := []string{"Alice", "Bob", "Carol", "Dave", "Erin"}

	records := make([]ledger.ExpenseRecord, 0, n)
	for i := 0; i < n; i++ {
		shuffled := append([]string(nil), roster...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		count := 2 + rng.IntN(len(shuffled)-1)
		participants := shuffled[:count]
		payer := participants[rng.IntN(count)]
		amount := decimal.NewFromInt(int64(1 + rng.IntN(10000))).Div(decimal.NewFromInt(100))

		records = append(records, expenseEven(payer, amount.String(), participants...))
	}
	return records
}
