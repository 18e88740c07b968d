package usecase

import (
	"errors"

	"main/model"
)

type InsightsService struct {
	manager *SpaceManager
}

func NewInsightsService(manager *SpaceManager) *InsightsService {
	return &InsightsService{manager: manager}
}

// GetUserInsights aggregates progress numbers across the cached collections.
func (svc *InsightsService) GetUserInsights(userID string) (*model.InsightStats, error) {
	space, ok := svc.manager.Get(userID)
	if !ok {
		return nil, errors.New("no active session for user")
	}

	stats := &model.InsightStats{}

	for _, t := range space.Tasks.Snapshot() {
		stats.TaskStats.Total++
		if t.Type == model.TaskTypeHabit {
			stats.TaskStats.Habits++
		} else {
			stats.TaskStats.Goals++
		}
		stats.TaskStats.CompletionsAll += len(t.CompletedDates)
		if t.MaxStreaks > stats.TaskStats.BestStreak {
			stats.TaskStats.BestStreak = t.MaxStreaks
			stats.TaskStats.BestStreakTask = t.Name
		}
	}

	for _, c := range space.Challenges.Snapshot() {
		switch c.Status {
		case model.ChallengeActive:
			stats.ChallengeStats.Active++
		case model.ChallengeCompleted:
			stats.ChallengeStats.Completed++
		case model.ChallengeFailed:
			stats.ChallengeStats.Failed++
		}
	}

	stats.ExpenseStats.ByCategory = make(map[string]float64)
	for _, e := range space.Expenses.Snapshot() {
		stats.ExpenseStats.Total += e.Amount
		stats.ExpenseStats.ByCategory[e.Category] += e.Amount
	}

	stats.JournalEntries = len(space.Journal.Snapshot())

	for _, t := range space.Todos.Snapshot() {
		if !t.Completed {
			stats.PendingTodos++
		}
	}

	return stats, nil
}
