package usecase

import (
	"testing"

	"main/model"
)

func activeChallenge(title string, duration int, start string) *model.Challenge {
	return &model.Challenge{
		ChallengeID: "ch-1",
		Title:       title,
		Duration:    duration,
		StartDate:   start,
		Status:      model.ChallengeActive,
		Progress:    []string{},
	}
}

func TestIsDuplicateChallenge(t *testing.T) {
	existing := []*model.Challenge{
		{Title: "No Sugar", Status: model.ChallengeActive, LinkedTaskID: "task-1"},
		{Title: "Old Quest", Status: model.ChallengeCompleted, LinkedTaskID: "task-2"},
	}

	tests := []struct {
		name         string
		title        string
		linkedTaskID string
		want         bool
	}{
		{"Exact Title Match", "No Sugar", "", true},
		{"Case Insensitive Title Match", "  no sugar  ", "", true},
		{"Same Linked Task", "Different Title", "task-1", true},
		{"Completed Challenges Do Not Block", "Old Quest", "", false},
		{"Completed Linked Task Does Not Block", "Fresh", "task-2", false},
		{"New Title And Task", "Cold Showers", "task-9", false},
		{"Empty Linked Task Is Not A Match", "Cold Showers", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDuplicateChallenge(existing, tc.title, tc.linkedTaskID); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMarkChallengeToday(t *testing.T) {
	t.Run("Credits A New Day", func(t *testing.T) {
		c := activeChallenge("No Sugar", 7, "2026-03-01")
		if !MarkChallengeToday(c, "2026-03-01") {
			t.Fatal("expected change")
		}
		if len(c.Progress) != 1 || c.Status != model.ChallengeActive {
			t.Errorf("unexpected state: %+v", c)
		}
	})

	t.Run("Idempotent Per Day", func(t *testing.T) {
		c := activeChallenge("No Sugar", 7, "2026-03-01")
		MarkChallengeToday(c, "2026-03-01")
		if MarkChallengeToday(c, "2026-03-01") {
			t.Error("second mark on the same day should be a no-op")
		}
		if len(c.Progress) != 1 {
			t.Errorf("progress grew on duplicate mark: %v", c.Progress)
		}
	})

	t.Run("Completes Exactly At Duration", func(t *testing.T) {
		c := activeChallenge("Sprint", 3, "2026-03-01")
		MarkChallengeToday(c, "2026-03-01")
		MarkChallengeToday(c, "2026-03-02")
		if c.Status != model.ChallengeActive {
			t.Fatal("should still be active at 2 of 3")
		}
		MarkChallengeToday(c, "2026-03-03")
		if c.Status != model.ChallengeCompleted {
			t.Errorf("expected Completed, got %s", c.Status)
		}
	})

	t.Run("Completed Challenge Rejects Further Marks", func(t *testing.T) {
		c := activeChallenge("Sprint", 3, "2026-03-01")
		for _, d := range []string{"2026-03-01", "2026-03-02", "2026-03-03"} {
			MarkChallengeToday(c, d)
		}
		if MarkChallengeToday(c, "2026-03-04") {
			t.Error("completed challenge should not accept marks")
		}
		if c.Status != model.ChallengeCompleted {
			t.Errorf("status regressed to %s", c.Status)
		}
	})

	t.Run("Failed Challenge Rejects Marks", func(t *testing.T) {
		c := activeChallenge("Sprint", 3, "2026-03-01")
		c.Status = model.ChallengeFailed
		if MarkChallengeToday(c, "2026-03-02") {
			t.Error("failed challenge should not accept marks")
		}
	})
}

func TestUseChallengeRescue(t *testing.T) {
	t.Run("Credits Yesterday Once", func(t *testing.T) {
		c := activeChallenge("No Sugar", 7, "2026-03-01")
		MarkChallengeToday(c, "2026-03-01")

		if !UseChallengeRescue(c, "2026-03-02") {
			t.Fatal("first rescue should succeed")
		}
		if !c.RescueUsed || !c.HasProgress("2026-03-02") {
			t.Errorf("unexpected state: %+v", c)
		}

		if UseChallengeRescue(c, "2026-03-03") {
			t.Error("second rescue should be refused")
		}
	})

	t.Run("Not Consumed When Yesterday Already Credited", func(t *testing.T) {
		c := activeChallenge("No Sugar", 7, "2026-03-01")
		MarkChallengeToday(c, "2026-03-01")

		if UseChallengeRescue(c, "2026-03-01") {
			t.Error("rescue on an already-credited day should report no change")
		}
		if c.RescueUsed {
			t.Error("rescue should not be consumed when nothing was added")
		}
	})

	t.Run("Refused On Inactive Challenge", func(t *testing.T) {
		c := activeChallenge("No Sugar", 7, "2026-03-01")
		c.Status = model.ChallengeFailed
		if UseChallengeRescue(c, "2026-03-02") {
			t.Error("rescue on a failed challenge should be refused")
		}
	})

	t.Run("Rescue Can Complete A Challenge Via Mark", func(t *testing.T) {
		c := activeChallenge("Sprint", 3, "2026-03-01")
		MarkChallengeToday(c, "2026-03-01")
		UseChallengeRescue(c, "2026-03-02")
		MarkChallengeToday(c, "2026-03-03")
		if c.Status != model.ChallengeCompleted {
			t.Errorf("expected Completed, got %s", c.Status)
		}
	})
}

func TestChallengeProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		duration int
		want     int
	}{
		{"Empty", 0, 7, 0},
		{"One Of Three Rounds To 33", 1, 3, 33},
		{"Two Of Three Rounds To 67", 2, 3, 67},
		{"Complete", 7, 7, 100},
		{"Zero Duration Guard", 3, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &model.Challenge{Duration: tc.duration}
			for i := 0; i < tc.progress; i++ {
				c.Progress = append(c.Progress, "d")
			}
			if got := ChallengeProgressPercent(c); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestChallengeDaysLeft(t *testing.T) {
	c := activeChallenge("Sprint", 7, "2026-03-01")

	tests := []struct {
		name  string
		today string
		want  int
	}{
		{"On Start Day", "2026-03-01", 7},
		{"Midway", "2026-03-04", 4},
		{"Last Day", "2026-03-07", 1},
		{"Day After Window", "2026-03-08", 0},
		{"Long After Window", "2026-04-01", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ChallengeDaysLeft(c, tc.today); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}

	if !ChallengeWindowElapsed(c, "2026-03-08") {
		t.Error("window should be elapsed the day after the last day")
	}
	if ChallengeWindowElapsed(c, "2026-03-07") {
		t.Error("window should not be elapsed on the last day")
	}
}

func TestChallengeSevenDayRun(t *testing.T) {
	// A full week marked day by day ends Completed at 100% with zero days
	// left past the window.
	c := activeChallenge("Cold Showers", 7, "2026-03-02")
	days := []string{
		"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05",
		"2026-03-06", "2026-03-07", "2026-03-08",
	}
	for i, d := range days {
		if !MarkChallengeToday(c, d) {
			t.Fatalf("day %d should be credited", i+1)
		}
	}
	if c.Status != model.ChallengeCompleted {
		t.Errorf("expected Completed, got %s", c.Status)
	}
	if got := ChallengeProgressPercent(c); got != 100 {
		t.Errorf("expected 100%%, got %d%%", got)
	}
}
