package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

// UserSpace is the authenticated-session-scoped set of synced collections
// for one user. It is created on login and torn down on logout; all
// subscriptions die with it.
type UserSpace struct {
	UserID string

	Tasks      *SyncedCollection[model.Task, *model.Task]
	Proofs     *SyncedCollection[model.Proof, *model.Proof]
	Journal    *SyncedCollection[model.JournalEntry, *model.JournalEntry]
	Todos      *SyncedCollection[model.Todo, *model.Todo]
	Expenses   *SyncedCollection[model.Expense, *model.Expense]
	Challenges *SyncedCollection[model.Challenge, *model.Challenge]
	Sessions   *SyncedCollection[model.Session, *model.Session]

	Notifications *NotificationLog

	mu       sync.RWMutex
	settings model.Settings
	profile  model.Profile

	cancel context.CancelFunc
}

// Settings returns the cached settings object.
func (s *UserSpace) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *UserSpace) SetSettings(settings model.Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

// Profile returns the cached decrypted profile.
func (s *UserSpace) Profile() model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *UserSpace) SetProfile(profile model.Profile) {
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
}

// SpaceManager owns the live user spaces, keyed by user id.
type SpaceManager struct {
	store  repository.DocStore
	codec  *services.FieldCodec
	backup *repository.BackupStore
	clock  *services.TrustedClock

	mu     sync.Mutex
	spaces map[string]*UserSpace
}

func NewSpaceManager(store repository.DocStore, codec *services.FieldCodec, backup *repository.BackupStore, clock *services.TrustedClock) *SpaceManager {
	return &SpaceManager{
		store:  store,
		codec:  codec,
		backup: backup,
		clock:  clock,
		spaces: make(map[string]*UserSpace),
	}
}

// Get returns the live space for a user, if any.
func (m *SpaceManager) Get(userID string) (*UserSpace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	space, ok := m.spaces[userID]
	return space, ok
}

// Open creates (or returns) the user's space and records the device
// session. The local backup is loaded before any subscription attaches so
// reads are non-empty during the connection window; the first remote
// snapshot overwrites it.
func (m *SpaceManager) Open(ctx context.Context, user *model.User, deviceID, deviceName string) (*UserSpace, error) {
	m.mu.Lock()
	space, exists := m.spaces[user.UserID]
	m.mu.Unlock()

	if !exists {
		built, err := m.buildSpace(user)
		if err != nil {
			return nil, err
		}
		// A concurrent login can register a space while ours was still
		// building. Only the registered space keeps its subscriptions; the
		// loser is torn down here, not left dangling until logout.
		m.mu.Lock()
		if winner, ok := m.spaces[user.UserID]; ok {
			m.mu.Unlock()
			stopSpace(built)
			space = winner
		} else {
			m.spaces[user.UserID] = built
			m.mu.Unlock()
			utils.ActiveSpaces.Inc()
			space = built
		}
	}

	// Session record keyed by device id: repeated logins from the same
	// device merge into one record.
	err := space.Sessions.Merge(ctx, deviceID, map[string]interface{}{
		"device_name": deviceName,
		"last_active": m.clock.Now(),
	})
	if err != nil {
		log.Printf("session record write failed for %s: %v", user.UserID, err)
	}

	return space, nil
}

func (m *SpaceManager) buildSpace(user *model.User) (*UserSpace, error) {
	spaceCtx, cancel := context.WithCancel(context.Background())

	space := &UserSpace{
		UserID:        user.UserID,
		Notifications: NewNotificationLog(50),
		settings:      user.Settings,
		profile:       user.Profile,
		cancel:        cancel,
	}
	notify := space.Notifications.Notify

	uid := user.UserID
	space.Tasks = NewSyncedCollection[model.Task](m.store, m.codec, repository.ColTasks, uid, model.TaskSensitiveFields, notify)
	space.Proofs = NewSyncedCollection[model.Proof](m.store, m.codec, repository.ColProofs, uid, model.ProofSensitiveFields, notify)
	space.Journal = NewSyncedCollection[model.JournalEntry](m.store, m.codec, repository.ColJournal, uid, model.JournalSensitiveFields, notify)
	space.Todos = NewSyncedCollection[model.Todo](m.store, m.codec, repository.ColTodos, uid, model.TodoSensitiveFields, notify)
	space.Expenses = NewSyncedCollection[model.Expense](m.store, m.codec, repository.ColExpenses, uid, model.ExpenseSensitiveFields, notify)
	space.Challenges = NewSyncedCollection[model.Challenge](m.store, m.codec, repository.ColChallenges, uid, model.ChallengeSensitiveFields, notify)
	space.Sessions = NewSyncedCollection[model.Session](m.store, m.codec, repository.ColSessions, uid, nil, notify)

	// Per-entity snapshot sort rules: journal and expenses newest-first,
	// sessions most recently active first.
	space.Journal.SortLess = func(a, b *model.JournalEntry) bool { return a.Date > b.Date }
	space.Expenses.SortLess = func(a, b *model.Expense) bool { return a.Date > b.Date }
	space.Sessions.SortLess = func(a, b *model.Session) bool { return a.LastActive.After(b.LastActive) }

	// Tasks mirror to the local backup after every snapshot.
	space.Tasks.OnSnapshot = func(tasks []*model.Task) {
		m.saveBackup(space, tasks)
	}

	// Challenges whose window elapsed incomplete are swept to Failed.
	space.Challenges.OnSnapshot = func(challenges []*model.Challenge) {
		m.sweepOverdueChallenges(spaceCtx, space, challenges)
	}

	// Preload the backup before attaching subscriptions.
	if m.backup != nil {
		if blob, err := m.backup.Load(spaceCtx, uid); err == nil && blob != nil {
			space.Tasks.Preload(blob.Tasks)
			space.SetSettings(blob.Settings)
		}
	}

	collections := []interface{ Start(context.Context) error }{
		space.Tasks, space.Proofs, space.Journal, space.Todos,
		space.Expenses, space.Challenges, space.Sessions,
	}
	for _, col := range collections {
		if err := col.Start(spaceCtx); err != nil {
			cancel()
			return nil, err
		}
	}

	return space, nil
}

func (m *SpaceManager) saveBackup(space *UserSpace, tasks []*model.Task) {
	if m.backup == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	blob := &repository.BackupBlob{
		Tasks:    tasks,
		Settings: space.Settings(),
		Profile:  space.Profile(),
	}
	if err := m.backup.Save(ctx, space.UserID, blob); err != nil {
		log.Printf("backup save failed for %s: %v", space.UserID, err)
	}
}

// SaveBackup rewrites the backup blob from the current caches, used after
// settings or profile changes.
func (m *SpaceManager) SaveBackup(space *UserSpace) {
	m.saveBackup(space, space.Tasks.Snapshot())
}

func (m *SpaceManager) sweepOverdueChallenges(ctx context.Context, space *UserSpace, challenges []*model.Challenge) {
	today := m.clock.Today()
	for _, c := range challenges {
		if c.Status != model.ChallengeActive {
			continue
		}
		if ChallengeWindowElapsed(c, today) && len(c.Progress) < c.Duration {
			updated := *c
			updated.Status = model.ChallengeFailed
			if err := space.Challenges.Update(ctx, &updated); err == nil {
				space.Notifications.Notify("Quest window elapsed. Marked as failed.", NotifyInfo)
			}
		}
	}
}

// CloseDevice deletes the device's session record; when it was the last
// active session the whole space is torn down.
func (m *SpaceManager) CloseDevice(ctx context.Context, userID, deviceID string) {
	space, ok := m.Get(userID)
	if !ok {
		return
	}
	if err := space.Sessions.Delete(ctx, deviceID); err != nil {
		log.Printf("session delete failed for %s: %v", userID, err)
	}
	remaining := 0
	for _, s := range space.Sessions.Snapshot() {
		if s.SessionID != deviceID {
			remaining++
		}
	}
	if remaining == 0 {
		m.Close(userID)
	}
}

// Close tears down a user's space and all of its subscriptions.
func (m *SpaceManager) Close(userID string) {
	m.mu.Lock()
	space, ok := m.spaces[userID]
	if ok {
		delete(m.spaces, userID)
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	stopSpace(space)
	utils.ActiveSpaces.Dec()
}

func stopSpace(space *UserSpace) {
	space.Tasks.Stop()
	space.Proofs.Stop()
	space.Journal.Stop()
	space.Todos.Stop()
	space.Expenses.Stop()
	space.Challenges.Stop()
	space.Sessions.Stop()
	space.cancel()
}
