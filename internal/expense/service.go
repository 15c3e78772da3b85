package expense

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/balance"
	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/split"
)

// Service orchestrates expense creation and deletion. It keeps one ledger
// and one balance engine per group, loading the ledger from the store the
// first time a group is touched in this process.
type Service struct {
	store     ledger.Store
	factory   *split.Factory
	observers []balance.Observer
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// session is the in-memory state for one group.
type session struct {
	ledger *ledger.Ledger
	engine *balance.Engine
}

// NewService creates a new expense service with dependencies injected.
// Observers are attached to every group engine the service creates.
func NewService(store ledger.Store, factory *split.Factory, logger *slog.Logger, observers ...balance.Observer) *Service {
	return &Service{
		store:     store,
		factory:   factory,
		observers: observers,
		logger:    logger,
		sessions:  make(map[string]*session),
	}
}

// CreateExpense computes the split with the requested strategy, assembles
// an expense record, and appends it to the group's ledger. The returned
// bool reports whether the record reached the store; on a persistence
// failure the record is retained in memory and flagged unsynced.
func (s *Service) CreateExpense(ctx context.Context, req *CreateExpenseRequest) (ledger.ExpenseRecord, bool, error) {
	strategy, err := s.factory.CreateFromString(req.SplitType)
	if err != nil {
		return ledger.ExpenseRecord{}, false, &ledger.ValidationError{Field: "split_type", Reason: err.Error()}
	}

	inputs := make([]split.Input, len(req.Participants))
	participants := make([]ledger.Participant, len(req.Participants))
	for i, p := range req.Participants {
		inputs[i] = p.ToSplitInput()
		participants[i] = ledger.Participant(p.Name)
	}

	amount := decimal.NewFromFloat(req.Amount)
	shares, err := strategy.Calculate(amount, inputs)
	if err != nil {
		return ledger.ExpenseRecord{}, false, &ledger.ValidationError{Field: "participants", Reason: err.Error()}
	}

	rec := ledger.NewExpenseRecord(amount, req.Description, ledger.Participant(req.Payer), participants, shares)

	sess, err := s.session(ctx, req.GroupID)
	if err != nil {
		return ledger.ExpenseRecord{}, false, err
	}

	if err := sess.ledger.Add(ctx, rec); err != nil {
		if errors.Is(err, ledger.ErrPersistence) {
			s.logger.Warn("expense saved locally but not persisted",
				"group", req.GroupID, "expense", rec.ID, "err", err)
			return rec, false, nil
		}
		return ledger.ExpenseRecord{}, false, err
	}
	return rec, true, nil
}

// DeleteExpense removes an expense from the group's ledger, which triggers
// a full balance recomputation. Returns ledger.ErrNotFound for unknown ids.
func (s *Service) DeleteExpense(ctx context.Context, groupID, id string) error {
	sess, err := s.session(ctx, groupID)
	if err != nil {
		return err
	}

	if err := sess.ledger.Remove(ctx, id); err != nil {
		if errors.Is(err, ledger.ErrPersistence) {
			s.logger.Warn("expense removed locally but store delete failed",
				"group", groupID, "expense", id, "err", err)
			return nil
		}
		return err
	}
	return nil
}

// ListExpenses returns the group's expenses sorted by date, newest first.
func (s *Service) ListExpenses(ctx context.Context, groupID string) ([]ledger.ExpenseRecord, error) {
	sess, err := s.session(ctx, groupID)
	if err != nil {
		return nil, err
	}

	records := sess.ledger.All()
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

// GetExpense returns a single expense record.
func (s *Service) GetExpense(ctx context.Context, groupID, id string) (ledger.ExpenseRecord, error) {
	sess, err := s.session(ctx, groupID)
	if err != nil {
		return ledger.ExpenseRecord{}, err
	}
	return sess.ledger.Get(id)
}

// Unsynced reports whether the given expense failed to persist.
func (s *Service) Unsynced(ctx context.Context, groupID, id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[groupID]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return sess.ledger.Unsynced(id)
}

// Snapshot returns the group's current derived balances and owe statements.
func (s *Service) Snapshot(ctx context.Context, groupID string) (balance.Snapshot, error) {
	sess, err := s.session(ctx, groupID)
	if err != nil {
		return balance.Snapshot{}, err
	}
	return sess.engine.Snapshot(), nil
}

// session returns the group's ledger/engine pair, creating and loading it
// on first use.
func (s *Service) session(ctx context.Context, groupID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[groupID]; ok {
		return sess, nil
	}

	led := ledger.New(groupID, s.store)
	eng := balance.NewEngine(groupID)
	for _, obs := range s.observers {
		eng.AddObserver(obs)
	}
	led.SetListener(eng)

	if err := led.Load(ctx); err != nil {
		return nil, err
	}

	sess := &session{ledger: led, engine: eng}
	s.sessions[groupID] = sess
	return sess, nil
}
