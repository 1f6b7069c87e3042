package realtime

import (
	"context"
	"sync"
	"time"
)

const (
	TableRequests     = "requests"
	TableRequestItems = "request_items"

	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Event describes a committed change to a watched table. Consumers refetch
// on any event; no payload diffing is carried.
type Event struct {
	Table    string    `json:"table"`
	Action   string    `json:"action"`
	RowID    string    `json:"row_id"`
	BranchID string    `json:"branch_id,omitempty"`
	At       time.Time `json:"at"`
}

// Subscription delivers events for the tables it was opened with. Close
// must be called when the consuming view deactivates; events stop and the
// channel is released.
type Subscription struct {
	C chan Event

	closeOnce sync.Once
	cancel    func()
}

func (s *Subscription) Close() {
	s.closeOnce.Do(s.cancel)
}

type (
	Broker interface {
		Publish(ctx context.Context, event Event) error
		Subscribe(ctx context.Context, tables ...string) (*Subscription, error)
	}
)
