package notification

import (
	"fmt"
	"sync"
	"time"

	"github.com/splitledger/splitledger/internal/balance"
)

// Feed capacity per group; older events fall off.
const maxEvents = 100

// Service keeps a bounded activity feed per group. It implements
// balance.Observer, so every balance change lands here automatically.
type Service struct {
	mu     sync.RWMutex
	events map[string][]Event
}

// NewService creates an empty notification service.
func NewService() *Service {
	return &Service{events: make(map[string][]Event)}
}

// BalancesChanged records a feed event for the group. Part of the
// balance.Observer interface.
func (s *Service) BalancesChanged(groupID string, snap balance.Snapshot) {
	statements := make([]string, len(snap.Statements))
	for i, st := range snap.Statements {
		statements[i] = st.String()
	}

	var message string
	if len(statements) == 0 {
		message = "Everyone is settled up"
	} else {
		message = fmt.Sprintf("Balances updated: %d open debt(s)", len(statements))
	}

	event := Event{
		GroupID:    groupID,
		Message:    message,
		Statements: statements,
		At:         time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	feed := append(s.events[groupID], event)
	if len(feed) > maxEvents {
		feed = feed[len(feed)-maxEvents:]
	}
	s.events[groupID] = feed
}

// ListByGroup returns the group's feed, newest last.
func (s *Service) ListByGroup(groupID string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event(nil), s.events[groupID]...)
}
