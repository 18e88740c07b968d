package usecase

import (
	"context"
	"errors"
	"strings"

	"main/model"
	"main/services"
	"main/utils"
)

type ChallengesService struct {
	manager *SpaceManager
	clock   *services.TrustedClock
}

func NewChallengesService(manager *SpaceManager, clock *services.TrustedClock) *ChallengesService {
	return &ChallengesService{manager: manager, clock: clock}
}

func (svc *ChallengesService) space(userID string) (*UserSpace, error) {
	space, ok := svc.manager.Get(userID)
	if !ok {
		return nil, errors.New("no active session for user")
	}
	return space, nil
}

// ChallengeView pairs a challenge with its derived display numbers.
type ChallengeView struct {
	*model.Challenge
	ProgressPercent int  `json:"progress_percent"`
	DaysLeft        int  `json:"days_left"`
	DoneToday       bool `json:"done_today"`
}

// GetUserChallenges returns all cached challenges with derived progress.
func (svc *ChallengesService) GetUserChallenges(userID string) ([]ChallengeView, error) {
	space, err := svc.space(userID)
	if err != nil {
		return nil, err
	}

	today := svc.clock.Today()
	challenges := space.Challenges.Snapshot()
	views := make([]ChallengeView, 0, len(challenges))
	for _, c := range challenges {
		views = append(views, ChallengeView{
			Challenge:       c,
			ProgressPercent: ChallengeProgressPercent(c),
			DaysLeft:        ChallengeDaysLeft(c, today),
			DoneToday:       c.HasProgress(today),
		})
	}
	return views, nil
}

// CreateChallenge admits a new challenge unless an Active one already
// claims the title or linked task. Rejection happens before any state is
// written.
func (svc *ChallengesService) CreateChallenge(ctx context.Context, userID string, c *model.Challenge) error {
	space, err := svc.space(userID)
	if err != nil {
		return err
	}

	if strings.TrimSpace(c.Title) == "" {
		return errors.New("challenge title is required")
	}
	if !model.ValidChallengeDuration(c.Duration) {
		return errors.New("challenge duration must be one of 3, 7, 21 or 30 days")
	}
	if c.LinkedTaskID != "" {
		// The link is a weak reference, but creating against a task the
		// user does not own is rejected outright.
		if _, ok := space.Tasks.Get(c.LinkedTaskID); !ok {
			return errors.New("linked task not found")
		}
	}
	if IsDuplicateChallenge(space.Challenges.Snapshot(), c.Title, c.LinkedTaskID) {
		utils.TrackError("validation", "duplicate_challenge")
		space.Notifications.Notify("This quest is already active! Complete it first.", NotifyError)
		return errors.New("an active challenge with this title or linked task already exists")
	}

	if c.ChallengeID == "" {
		c.ChallengeID = utils.GenerateID()
	}
	c.UserID = userID
	c.Status = model.ChallengeActive
	c.Progress = []string{}
	c.RescueUsed = false
	if c.StartDate == "" {
		c.StartDate = svc.clock.Today()
	}

	if err := space.Challenges.Create(ctx, c); err != nil {
		return err
	}
	space.Notifications.Notify("New Quest Started!", NotifySuccess)
	return nil
}

// MarkToday credits the trusted today on the challenge. Calling it again
// the same day is a no-op.
func (svc *ChallengesService) MarkToday(ctx context.Context, userID, challengeID string) (*ChallengeView, error) {
	space, err := svc.space(userID)
	if err != nil {
		return nil, err
	}
	c, ok := space.Challenges.Get(challengeID)
	if !ok {
		return nil, errors.New("challenge not found")
	}

	today := svc.clock.Today()
	updated := *c
	if MarkChallengeToday(&updated, today) {
		if err := space.Challenges.Update(ctx, &updated); err != nil {
			return nil, err
		}
		if updated.Status == model.ChallengeCompleted {
			space.Notifications.Notify("Quest Completed!", NotifySuccess)
		} else {
			space.Notifications.Notify("Progress Recorded!", NotifySuccess)
		}
	}

	return &ChallengeView{
		Challenge:       &updated,
		ProgressPercent: ChallengeProgressPercent(&updated),
		DaysLeft:        ChallengeDaysLeft(&updated, today),
		DoneToday:       updated.HasProgress(today),
	}, nil
}

// UseRescue forgives yesterday, at most once per challenge.
func (svc *ChallengesService) UseRescue(ctx context.Context, userID, challengeID string) (*model.Challenge, error) {
	space, err := svc.space(userID)
	if err != nil {
		return nil, err
	}
	c, ok := space.Challenges.Get(challengeID)
	if !ok {
		return nil, errors.New("challenge not found")
	}
	if c.RescueUsed {
		return nil, errors.New("rescue already used on this challenge")
	}

	updated := *c
	if UseChallengeRescue(&updated, svc.clock.Yesterday()) {
		if err := space.Challenges.Update(ctx, &updated); err != nil {
			return nil, err
		}
		space.Notifications.Notify("Yesterday rescued. Streak intact!", NotifyInfo)
	}
	return &updated, nil
}

// DeleteChallenge removes the challenge remotely.
func (svc *ChallengesService) DeleteChallenge(ctx context.Context, userID, challengeID string) error {
	space, err := svc.space(userID)
	if err != nil {
		return err
	}
	if _, ok := space.Challenges.Get(challengeID); !ok {
		return errors.New("challenge not found")
	}
	if err := space.Challenges.Delete(ctx, challengeID); err != nil {
		return err
	}
	space.Notifications.Notify("Quest Removed.", NotifyInfo)
	return nil
}
