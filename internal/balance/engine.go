// Package balance derives net positions and owe statements from a group's
// expense records. The engine is a cached pure function of ledger contents:
// additions are folded in incrementally, removals rebuild from scratch, and
// both paths share one netting implementation.
package balance

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/ledger"
)

// Observer is notified whenever the engine's derived state changes.
type Observer interface {
	BalancesChanged(groupID string, snap Snapshot)
}

// Engine holds the cached derived state for one group. It implements
// ledger.Listener so a ledger keeps it current automatically.
type Engine struct {
	groupID   string
	observers []Observer

	mu         sync.RWMutex
	balances   map[ledger.Participant]decimal.Decimal
	netOwed    map[ledger.Participant]map[ledger.Participant]decimal.Decimal
	statements []OweStatement
}

// NewEngine creates an engine with empty derived state.
func NewEngine(groupID string) *Engine {
	e := &Engine{groupID: groupID}
	e.reset()
	return e
}

// AddObserver registers an observer. Not safe to call concurrently with
// ledger mutations; register during wiring.
func (e *Engine) AddObserver(obs Observer) {
	e.observers = append(e.observers, obs)
}

// ExpenseAdded folds a single new record into the cached maps and re-nets.
// Part of the ledger.Listener interface.
func (e *Engine) ExpenseAdded(rec ledger.ExpenseRecord) {
	e.mu.Lock()
	e.apply(rec)
	e.statements = net(e.netOwed)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snap)
}

// LedgerReset discards the cache and rebuilds from the full record set.
// Part of the ledger.Listener interface.
func (e *Engine) LedgerReset(records []ledger.ExpenseRecord) {
	e.mu.Lock()
	e.reset()
	for _, rec := range records {
		e.apply(rec)
	}
	e.statements = net(e.netOwed)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snap)
}

// Snapshot returns an immutable copy of the current derived state, sorted
// by participant name for stable output.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

// apply folds one record into balances and netOwed. The payer fronted the
// money, so every other participant's share moves their position down and
// the payer's up. A payer's own share is self-owed and has no net effect.
// Caller holds the lock.
func (e *Engine) apply(rec ledger.ExpenseRecord) {
	for _, p := range rec.Participants {
		if _, ok := e.balances[p]; !ok {
			e.balances[p] = decimal.Zero
		}
	}

	for debtor, share := range rec.SplitDetails {
		if debtor == rec.Payer || share.IsZero() {
			continue
		}
		e.balances[debtor] = e.balances[debtor].Sub(share)
		e.balances[rec.Payer] = e.balances[rec.Payer].Add(share)

		owed := e.netOwed[debtor]
		if owed == nil {
			owed = make(map[ledger.Participant]decimal.Decimal)
			e.netOwed[debtor] = owed
		}
		owed[rec.Payer] = owed[rec.Payer].Add(share)
	}
}

// net collapses the gross debt matrix into owe statements. This is the only
// netting implementation; both the add path and the rebuild path use it.
// For each unordered pair the forward and reverse totals cancel: a positive
// difference emits one directional statement, an exact offset emits nothing.
func net(netOwed map[ledger.Participant]map[ledger.Participant]decimal.Decimal) []OweStatement {
	var statements []OweStatement
	for debtor, owed := range netOwed {
		for creditor, fwd := range owed {
			// Visit each unordered pair once. Pairs where only the
			// reverse entry exists are handled from the other side.
			if debtor > creditor && netOwed[creditor][debtor].IsPositive() {
				continue
			}

			diff := fwd.Sub(netOwed[creditor][debtor])
			switch {
			case diff.IsPositive():
				statements = append(statements, OweStatement{Debtor: debtor, Creditor: creditor, Amount: diff})
			case diff.IsNegative():
				statements = append(statements, OweStatement{Debtor: creditor, Creditor: debtor, Amount: diff.Neg()})
			}
		}
	}
	sortStatements(statements)
	return statements
}

// Caller holds the lock.
func (e *Engine) reset() {
	e.balances = make(map[ledger.Participant]decimal.Decimal)
	e.netOwed = make(map[ledger.Participant]map[ledger.Participant]decimal.Decimal)
	e.statements = nil
}

// Caller holds the lock.
func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		Balances:   make([]NetBalance, 0, len(e.balances)),
		Statements: make([]OweStatement, len(e.statements)),
	}
	for p, amount := range e.balances {
		snap.Balances = append(snap.Balances, NetBalance{Participant: p, Amount: amount})
	}
	sortBalances(snap.Balances)
	copy(snap.Statements, e.statements)
	return snap
}

func (e *Engine) notify(snap Snapshot) {
	for _, obs := range e.observers {
		obs.BalancesChanged(e.groupID, snap)
	}
}

// Compute runs a full recomputation over a record set without touching any
// cached state. It is the canonical ground truth the cached paths are
// tested against.
func Compute(records []ledger.ExpenseRecord) Snapshot {
	e := NewEngine("")
	e.LedgerReset(records)
	return e.Snapshot()
}
