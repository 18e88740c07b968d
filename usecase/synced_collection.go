package usecase

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"main/repository"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Record is any synced document carrying its own string id.
type Record interface {
	GetID() string
}

// recordPtr ties the collection's pointer type to its struct type.
type recordPtr[T any] interface {
	*T
	Record
}

// Notifier receives user-visible success/error/info signals. The engine
// owns no presentation; callers decide what a "toast" looks like.
type Notifier func(message, kind string)

const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyInfo    = "info"
)

const writeRetryDelay = 200 * time.Millisecond

// SyncedCollection mirrors one user's remote sub-collection into a local
// typed cache. Writes are optimistic and fire-and-forget: the cache changes
// only when the subscription delivers the next full snapshot, which also
// reconciles writes from other devices. Sensitive fields are encrypted on
// the way out and decrypted on the way in.
type SyncedCollection[T any, PT recordPtr[T]] struct {
	store     repository.DocStore
	codec     *services.FieldCodec
	name      string
	userID    string
	sensitive []string
	notify    Notifier

	// SortLess, when set, orders every delivered snapshot.
	SortLess func(a, b PT) bool
	// OnSnapshot, when set, runs after each cache replacement with the new
	// contents (backup persistence, overdue sweeps).
	OnSnapshot func([]PT)

	mu    sync.RWMutex
	cache []PT
	stop  func()
}

func NewSyncedCollection[T any, PT recordPtr[T]](
	store repository.DocStore,
	codec *services.FieldCodec,
	name, userID string,
	sensitive []string,
	notify Notifier,
) *SyncedCollection[T, PT] {
	if notify == nil {
		notify = func(string, string) {}
	}
	return &SyncedCollection[T, PT]{
		store:     store,
		codec:     codec,
		name:      name,
		userID:    userID,
		sensitive: sensitive,
		notify:    notify,
	}
}

// Preload seeds the cache before the subscription attaches, typically from
// the local backup, so readers see data during the connection window. The
// first remote snapshot overwrites it.
func (sc *SyncedCollection[T, PT]) Preload(records []PT) {
	sc.mu.Lock()
	sc.cache = append([]PT(nil), records...)
	sc.mu.Unlock()
}

// Start attaches the remote subscription.
func (sc *SyncedCollection[T, PT]) Start(ctx context.Context) error {
	stop, err := sc.store.Subscribe(ctx, sc.userID, sc.name, sc.applySnapshot)
	if err != nil {
		return err
	}
	sc.stop = stop
	return nil
}

// Stop tears down the subscription. Safe to call when never started.
func (sc *SyncedCollection[T, PT]) Stop() {
	if sc.stop != nil {
		sc.stop()
		sc.stop = nil
	}
}

// applySnapshot decodes, decrypts, sorts and wholesale-replaces the cache.
func (sc *SyncedCollection[T, PT]) applySnapshot(snap repository.Snapshot) {
	records := make([]PT, 0, len(snap))
	for _, raw := range snap {
		rec := PT(new(T))
		if err := bson.Unmarshal(raw, rec); err != nil {
			log.Printf("skipping undecodable %s document: %v", sc.name, err)
			continue
		}
		sc.codec.DecryptFields(rec, sc.userID, sc.sensitive...)
		records = append(records, rec)
	}

	if sc.SortLess != nil {
		sort.SliceStable(records, func(i, j int) bool {
			return sc.SortLess(records[i], records[j])
		})
	}

	sc.mu.Lock()
	sc.cache = records
	sc.mu.Unlock()

	utils.TrackSnapshot(sc.name)

	if sc.OnSnapshot != nil {
		sc.OnSnapshot(records)
	}
}

// Create encrypts the sensitive fields of a copy and writes it remotely.
// The local cache is untouched until the subscription reflects the change.
func (sc *SyncedCollection[T, PT]) Create(ctx context.Context, rec PT) error {
	return sc.write(ctx, rec)
}

// Update writes the fully-updated record to its existing key. There are no
// merge semantics here; callers pass the whole record.
func (sc *SyncedCollection[T, PT]) Update(ctx context.Context, rec PT) error {
	return sc.write(ctx, rec)
}

func (sc *SyncedCollection[T, PT]) write(ctx context.Context, rec PT) error {
	enc := *rec // copy so the caller's record stays plaintext
	encPtr := PT(&enc)
	sc.codec.EncryptFields(encPtr, sc.userID, sc.sensitive...)

	err := sc.store.Put(ctx, sc.userID, sc.name, rec.GetID(), encPtr)
	if err != nil {
		// One bounded retry before surfacing the failure.
		time.Sleep(writeRetryDelay)
		err = sc.store.Put(ctx, sc.userID, sc.name, rec.GetID(), encPtr)
	}
	if err != nil {
		utils.TrackError("sync", sc.name+"_write_failed")
		sc.notify("Could not save your changes. They will reappear once reconnected.", NotifyError)
		return err
	}
	return nil
}

// Merge patches a subset of fields on the remote document (settings-like
// records and session heartbeats).
func (sc *SyncedCollection[T, PT]) Merge(ctx context.Context, docID string, fields map[string]interface{}) error {
	err := sc.store.SetMerge(ctx, sc.userID, sc.name, docID, fields)
	if err != nil {
		time.Sleep(writeRetryDelay)
		err = sc.store.SetMerge(ctx, sc.userID, sc.name, docID, fields)
	}
	if err != nil {
		utils.TrackError("sync", sc.name+"_merge_failed")
		sc.notify("Could not save your changes. They will reappear once reconnected.", NotifyError)
		return err
	}
	return nil
}

// Delete removes the remote document; the subscription removes it locally.
func (sc *SyncedCollection[T, PT]) Delete(ctx context.Context, docID string) error {
	err := sc.store.Delete(ctx, sc.userID, sc.name, docID)
	if err != nil {
		time.Sleep(writeRetryDelay)
		err = sc.store.Delete(ctx, sc.userID, sc.name, docID)
	}
	if err != nil {
		utils.TrackError("sync", sc.name+"_delete_failed")
		sc.notify("Could not delete the record.", NotifyError)
		return err
	}
	return nil
}

// Snapshot returns a copy of the current local cache.
func (sc *SyncedCollection[T, PT]) Snapshot() []PT {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return append([]PT(nil), sc.cache...)
}

// Get finds one cached record by id.
func (sc *SyncedCollection[T, PT]) Get(id string) (PT, bool) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	for _, rec := range sc.cache {
		if rec.GetID() == id {
			return rec, true
		}
	}
	var zero PT
	return zero, false
}
