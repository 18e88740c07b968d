package usecase

import (
	"context"
	"testing"

	"main/model"
	"main/repository"
	"main/services"
)

func TestGetUserInsights(t *testing.T) {
	store := newFakeDocStore()
	manager := newTestManager(store)
	clock := services.NewTrustedClock("", "")
	ctx := context.Background()

	if _, err := manager.Open(ctx, testUser(), "device-1", "test"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	tasksService := NewTasksService(manager, clock)
	challengesService := NewChallengesService(manager, clock)
	expensesService := NewExpensesService(manager, clock)
	todosService := NewTodosService(manager, clock)
	insightsService := NewInsightsService(manager)

	habit := &model.Task{Name: "Meditate", Type: model.TaskTypeHabit}
	goal := &model.Task{Name: "Save 10k", Type: model.TaskTypeGoal}
	for _, task := range []*model.Task{habit, goal} {
		if err := tasksService.CreateTask(ctx, "user-1", task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	store.deliver(repository.ColTasks)
	if _, err := tasksService.MarkComplete(ctx, "user-1", habit.TaskID, "", ""); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	store.deliver(repository.ColTasks)

	if err := challengesService.CreateChallenge(ctx, "user-1", &model.Challenge{Title: "No Sugar", Duration: 7}); err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}
	store.deliver(repository.ColChallenges)

	for _, e := range []*model.Expense{
		{Amount: 12.50, Category: "Food"},
		{Amount: 7.50, Category: "Food"},
		{Amount: 30, Category: "Transport"},
	} {
		if err := expensesService.CreateExpense(ctx, "user-1", e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}
	store.deliver(repository.ColExpenses)

	if err := todosService.CreateTodo(ctx, "user-1", &model.Todo{Text: "Buy groceries"}); err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}
	store.deliver(repository.ColTodos)

	stats, err := insightsService.GetUserInsights("user-1")
	if err != nil {
		t.Fatalf("GetUserInsights failed: %v", err)
	}

	if stats.TaskStats.Total != 2 || stats.TaskStats.Habits != 1 || stats.TaskStats.Goals != 1 {
		t.Errorf("task split wrong: %+v", stats.TaskStats)
	}
	if stats.TaskStats.CompletionsAll != 1 {
		t.Errorf("expected 1 completion, got %d", stats.TaskStats.CompletionsAll)
	}
	if stats.TaskStats.BestStreak != 1 || stats.TaskStats.BestStreakTask != "Meditate" {
		t.Errorf("best streak wrong: %+v", stats.TaskStats)
	}
	if stats.ChallengeStats.Active != 1 {
		t.Errorf("expected 1 active challenge, got %+v", stats.ChallengeStats)
	}
	if stats.ExpenseStats.Total != 50 {
		t.Errorf("expected total 50, got %v", stats.ExpenseStats.Total)
	}
	if stats.ExpenseStats.ByCategory["Food"] != 20 {
		t.Errorf("expected Food 20, got %v", stats.ExpenseStats.ByCategory["Food"])
	}
	if stats.PendingTodos != 1 {
		t.Errorf("expected 1 pending todo, got %d", stats.PendingTodos)
	}
}
