package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"main/model"
	"main/repository"
	"main/services"

	"go.mongodb.org/mongo-driver/bson"
)

func newTestManager(store *fakeDocStore) *SpaceManager {
	codec := services.NewFieldCodec("test-app-secret")
	clock := services.NewTrustedClock("", "")
	return NewSpaceManager(store, codec, nil, clock)
}

func testUser() *model.User {
	return &model.User{
		UserID:   "user-1",
		Email:    "one@example.com",
		Name:     "One",
		Settings: model.DefaultSettings(),
		Profile:  model.Profile{Bio: "New Member"},
	}
}

func TestSpaceManagerOpen(t *testing.T) {
	store := newFakeDocStore()
	manager := newTestManager(store)
	ctx := context.Background()

	space, err := manager.Open(ctx, testUser(), "device-1", "Chrome on macOS")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	t.Run("Space Is Registered", func(t *testing.T) {
		got, ok := manager.Get("user-1")
		if !ok || got != space {
			t.Error("space should be retrievable after Open")
		}
	})

	t.Run("Session Record Written", func(t *testing.T) {
		var session model.Session
		if err := bson.Unmarshal(store.rawDoc(t, repository.ColSessions, "device-1"), &session); err != nil {
			t.Fatalf("unmarshal session: %v", err)
		}
		if session.DeviceName != "Chrome on macOS" {
			t.Errorf("device name not recorded: %+v", session)
		}
	})

	t.Run("Reopening Reuses The Space", func(t *testing.T) {
		again, err := manager.Open(ctx, testUser(), "device-2", "Firefox on Linux")
		if err != nil {
			t.Fatalf("second Open failed: %v", err)
		}
		if again != space {
			t.Error("same user should get the same space")
		}
	})

	t.Run("Close Tears Down", func(t *testing.T) {
		manager.Close("user-1")
		if _, ok := manager.Get("user-1"); ok {
			t.Error("space should be gone after Close")
		}
	})
}

func TestSpaceManagerOpenConcurrent(t *testing.T) {
	store := newFakeDocStore()
	manager := newTestManager(store)

	// Hold both logins inside the space build at the same moment, so each
	// has already passed the exists-check before either registers.
	var barrier sync.WaitGroup
	barrier.Add(2)
	store.onSubscribe = func(collection string) {
		if collection == repository.ColTasks {
			barrier.Done()
			barrier.Wait()
		}
	}

	var wg sync.WaitGroup
	spaces := make([]*UserSpace, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			space, err := manager.Open(context.Background(), testUser(), fmt.Sprintf("device-%d", i+1), "test")
			if err != nil {
				t.Errorf("Open failed: %v", err)
				return
			}
			spaces[i] = space
		}(i)
	}
	wg.Wait()

	if spaces[0] == nil || spaces[1] == nil {
		t.Fatal("both Opens should return a space")
	}
	if spaces[0] != spaces[1] {
		t.Fatal("concurrent Opens for one user must converge on a single space")
	}
	if got, ok := manager.Get("user-1"); !ok || got != spaces[0] {
		t.Error("registered space differs from the one both Opens returned")
	}

	// The losing build's subscriptions must be stopped, leaving exactly one
	// subscription per collection.
	if got := store.activeSubs(); got != 7 {
		t.Errorf("expected 7 live subscriptions, got %d", got)
	}
}

func TestSpaceManagerCloseDevice(t *testing.T) {
	store := newFakeDocStore()
	manager := newTestManager(store)
	ctx := context.Background()

	if _, err := manager.Open(ctx, testUser(), "device-1", "Chrome on macOS"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := manager.Open(ctx, testUser(), "device-2", "Safari on iOS"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	store.deliver(repository.ColSessions)

	manager.CloseDevice(ctx, "user-1", "device-1")
	if _, ok := manager.Get("user-1"); !ok {
		t.Fatal("space should survive while another session remains")
	}

	store.deliver(repository.ColSessions)
	manager.CloseDevice(ctx, "user-1", "device-2")
	if _, ok := manager.Get("user-1"); ok {
		t.Error("space should close with the last session")
	}
}

func TestTasksServiceMarkComplete(t *testing.T) {
	store := newFakeDocStore()
	manager := newTestManager(store)
	clock := services.NewTrustedClock("", "")
	tasksService := NewTasksService(manager, clock)
	ctx := context.Background()

	if _, err := manager.Open(ctx, testUser(), "device-1", "test"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	task := &model.Task{Name: "Meditate", Type: model.TaskTypeHabit, Category: model.CategoryHealth}
	if err := tasksService.CreateTask(ctx, "user-1", task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	store.deliver(repository.ColTasks)

	updated, err := tasksService.MarkComplete(ctx, "user-1", task.TaskID, "felt great", "")
	if err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if updated.Streaks != 1 || updated.MaxStreaks != 1 {
		t.Errorf("first completion should start the streak, got (%d, %d)", updated.Streaks, updated.MaxStreaks)
	}
	if !updated.HasCompleted(clock.Today()) {
		t.Error("today should be recorded")
	}

	store.deliver(repository.ColTasks)
	store.deliver(repository.ColProofs)

	t.Run("Second Mark Same Day Rejected", func(t *testing.T) {
		if _, err := tasksService.MarkComplete(ctx, "user-1", task.TaskID, "", ""); err == nil {
			t.Error("expected rejection for double completion")
		}
	})

	t.Run("Proof Recorded", func(t *testing.T) {
		proofs, err := tasksService.GetTaskProofs("user-1", task.TaskID)
		if err != nil {
			t.Fatalf("GetTaskProofs failed: %v", err)
		}
		if len(proofs) != 1 {
			t.Fatalf("expected 1 proof, got %d", len(proofs))
		}
		if proofs[0].Remark != "felt great" || proofs[0].Date != clock.Today() {
			t.Errorf("unexpected proof: %+v", proofs[0])
		}
	})
}

func TestChallengesServiceAdmissionAndRescue(t *testing.T) {
	store := newFakeDocStore()
	manager := newTestManager(store)
	clock := services.NewTrustedClock("", "")
	challengesService := NewChallengesService(manager, clock)
	ctx := context.Background()

	if _, err := manager.Open(ctx, testUser(), "device-1", "test"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	challenge := &model.Challenge{Title: "No Sugar", Duration: 7}
	if err := challengesService.CreateChallenge(ctx, "user-1", challenge); err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}
	if challenge.StartDate != clock.Today() {
		t.Errorf("start date should default to today, got %q", challenge.StartDate)
	}
	store.deliver(repository.ColChallenges)

	t.Run("Duplicate Title Rejected", func(t *testing.T) {
		dup := &model.Challenge{Title: "  no sugar ", Duration: 7}
		if err := challengesService.CreateChallenge(ctx, "user-1", dup); err == nil {
			t.Error("duplicate active title should be rejected")
		}
	})

	t.Run("Invalid Duration Rejected", func(t *testing.T) {
		bad := &model.Challenge{Title: "Odd", Duration: 5}
		if err := challengesService.CreateChallenge(ctx, "user-1", bad); err == nil {
			t.Error("duration 5 should be rejected")
		}
	})

	t.Run("Mark Today Then Rescue Yesterday", func(t *testing.T) {
		view, err := challengesService.MarkToday(ctx, "user-1", challenge.ChallengeID)
		if err != nil {
			t.Fatalf("MarkToday failed: %v", err)
		}
		if !view.DoneToday || len(view.Progress) != 1 {
			t.Errorf("unexpected view: %+v", view)
		}
		store.deliver(repository.ColChallenges)

		rescued, err := challengesService.UseRescue(ctx, "user-1", challenge.ChallengeID)
		if err != nil {
			t.Fatalf("UseRescue failed: %v", err)
		}
		if !rescued.RescueUsed || !rescued.HasProgress(clock.Yesterday()) {
			t.Errorf("rescue did not credit yesterday: %+v", rescued)
		}
		store.deliver(repository.ColChallenges)

		if _, err := challengesService.UseRescue(ctx, "user-1", challenge.ChallengeID); err == nil {
			t.Error("second rescue should be refused")
		}
	})

	t.Run("Notifications Logged", func(t *testing.T) {
		space, _ := manager.Get("user-1")
		if len(space.Notifications.Recent()) == 0 {
			t.Error("expected notifications from the challenge flow")
		}
	})
}

func TestSweepOverdueChallenges(t *testing.T) {
	store := newFakeDocStore()
	manager := newTestManager(store)
	clock := services.NewTrustedClock("", "")
	challengesService := NewChallengesService(manager, clock)
	ctx := context.Background()

	if _, err := manager.Open(ctx, testUser(), "device-1", "test"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// A 3-day challenge that started ten days ago with no progress.
	start := time.Now().UTC().AddDate(0, 0, -10).Format("2006-01-02")
	overdue := &model.Challenge{Title: "Forgotten", Duration: 3, StartDate: start}
	if err := challengesService.CreateChallenge(ctx, "user-1", overdue); err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}

	// Delivering the snapshot triggers the sweep, which writes the Failed
	// status back; the next delivery reflects it in the cache.
	store.deliver(repository.ColChallenges)
	store.deliver(repository.ColChallenges)

	views, err := challengesService.GetUserChallenges("user-1")
	if err != nil {
		t.Fatalf("GetUserChallenges failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 challenge, got %d", len(views))
	}
	if views[0].Status != model.ChallengeFailed {
		t.Errorf("expected Failed after sweep, got %s", views[0].Status)
	}
	if views[0].DaysLeft != 0 {
		t.Errorf("expected 0 days left, got %d", views[0].DaysLeft)
	}
}
