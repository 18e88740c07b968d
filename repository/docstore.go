package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection names for per-user synced data.
const (
	ColTasks      = "tasks"
	ColProofs     = "proofs"
	ColJournal    = "journal"
	ColTodos      = "todos"
	ColExpenses   = "expenses"
	ColChallenges = "challenges"
	ColSessions   = "sessions"
)

// Snapshot is the complete current contents of one user's sub-collection.
// Subscribers always receive the whole snapshot, never a diff; consumers
// replace their local state wholesale on each delivery.
type Snapshot []bson.Raw

// DocStore abstracts the remote realtime document store. Writes are
// last-writer-wins; snapshot delivery is at-least-once and ordered only
// within a single subscription.
type DocStore interface {
	// Put writes the full document at (collection, userID, docID).
	Put(ctx context.Context, userID, collection, docID string, doc interface{}) error

	// SetMerge patches only the given fields, creating the document if absent.
	SetMerge(ctx context.Context, userID, collection, docID string, fields map[string]interface{}) error

	// Delete removes the document.
	Delete(ctx context.Context, userID, collection, docID string) error

	// Load fetches the current snapshot once.
	Load(ctx context.Context, userID, collection string) (Snapshot, error)

	// Subscribe delivers the full snapshot on every remote change until the
	// context is cancelled or the returned stop function is called. One
	// initial snapshot is delivered on attach.
	Subscribe(ctx context.Context, userID, collection string, onSnapshot func(Snapshot)) (stop func(), err error)
}
