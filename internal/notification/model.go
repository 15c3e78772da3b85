package notification

import "time"

// Event is one entry in a group's activity feed, recorded whenever the
// group's balances change.
type Event struct {
	GroupID    string    `json:"group_id"`
	Message    string    `json:"message"`
	Statements []string  `json:"statements"`
	At         time.Time `json:"at"`
}
