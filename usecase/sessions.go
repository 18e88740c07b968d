package usecase

import (
	"context"
	"errors"

	"main/model"
)

type SessionsService struct {
	manager *SpaceManager
}

func NewSessionsService(manager *SpaceManager) *SessionsService {
	return &SessionsService{manager: manager}
}

// GetActiveSessions lists the user's device sessions, most recently active
// first, flagging the caller's own device.
func (svc *SessionsService) GetActiveSessions(userID, currentDeviceID string) ([]*model.Session, error) {
	space, ok := svc.manager.Get(userID)
	if !ok {
		return nil, errors.New("no active session for user")
	}

	sessions := space.Sessions.Snapshot()
	for _, s := range sessions {
		s.IsCurrent = s.SessionID == currentDeviceID
	}
	return sessions, nil
}

// LogoutAll removes every session record and tears the space down.
func (svc *SessionsService) LogoutAll(ctx context.Context, userID string) error {
	space, ok := svc.manager.Get(userID)
	if !ok {
		return errors.New("no active session for user")
	}

	for _, s := range space.Sessions.Snapshot() {
		if err := space.Sessions.Delete(ctx, s.SessionID); err != nil {
			return err
		}
	}
	svc.manager.Close(userID)
	return nil
}
