package usecase

import (
	"context"
	"errors"
	"strings"

	"main/model"
	"main/services"
	"main/utils"
)

type JournalService struct {
	manager *SpaceManager
	clock   *services.TrustedClock
}

func NewJournalService(manager *SpaceManager, clock *services.TrustedClock) *JournalService {
	return &JournalService{manager: manager, clock: clock}
}

func (svc *JournalService) space(userID string) (*UserSpace, error) {
	space, ok := svc.manager.Get(userID)
	if !ok {
		return nil, errors.New("no active session for user")
	}
	return space, nil
}

// GetUserJournal returns the cached entries, newest first.
func (svc *JournalService) GetUserJournal(userID string) ([]*model.JournalEntry, error) {
	space, err := svc.space(userID)
	if err != nil {
		return nil, err
	}
	return space.Journal.Snapshot(), nil
}

func (svc *JournalService) CreateEntry(ctx context.Context, userID string, entry *model.JournalEntry) error {
	space, err := svc.space(userID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(entry.Subject) == "" {
		return errors.New("journal subject is required")
	}

	if entry.EntryID == "" {
		entry.EntryID = utils.GenerateID()
	}
	entry.UserID = userID
	if entry.Date == "" {
		entry.Date = svc.clock.Today()
	}
	entry.CreatedAt = svc.clock.Now()

	if err := space.Journal.Create(ctx, entry); err != nil {
		return err
	}
	space.Notifications.Notify("Journal entry saved.", NotifySuccess)
	return nil
}

func (svc *JournalService) UpdateEntry(ctx context.Context, userID string, entry *model.JournalEntry) error {
	space, err := svc.space(userID)
	if err != nil {
		return err
	}
	existing, ok := space.Journal.Get(entry.EntryID)
	if !ok {
		return errors.New("journal entry not found")
	}
	entry.UserID = userID
	entry.CreatedAt = existing.CreatedAt

	if err := space.Journal.Update(ctx, entry); err != nil {
		return err
	}
	space.Notifications.Notify("Journal updated.", NotifySuccess)
	return nil
}

func (svc *JournalService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	space, err := svc.space(userID)
	if err != nil {
		return err
	}
	if _, ok := space.Journal.Get(entryID); !ok {
		return errors.New("journal entry not found")
	}
	if err := space.Journal.Delete(ctx, entryID); err != nil {
		return err
	}
	space.Notifications.Notify("Entry deleted.", NotifyInfo)
	return nil
}
