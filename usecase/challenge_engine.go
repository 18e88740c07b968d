package usecase

import (
	"math"
	"strings"
	"time"

	"main/model"
)

// IsDuplicateChallenge reports whether an Active challenge already claims
// the same title (case-insensitive) or the same linked task. This is the
// sole admission rule guarding against duplicate concurrent commitments.
func IsDuplicateChallenge(challenges []*model.Challenge, title, linkedTaskID string) bool {
	title = strings.ToLower(strings.TrimSpace(title))
	for _, c := range challenges {
		if c.Status != model.ChallengeActive {
			continue
		}
		if strings.ToLower(strings.TrimSpace(c.Title)) == title {
			return true
		}
		if linkedTaskID != "" && c.LinkedTaskID == linkedTaskID {
			return true
		}
	}
	return false
}

// MarkChallengeToday credits today on the challenge. It is idempotent: a
// date already in progress is a no-op and the function reports false.
// Reaching the full duration transitions the challenge to Completed.
func MarkChallengeToday(c *model.Challenge, today string) bool {
	if c.Status != model.ChallengeActive {
		return false
	}
	if c.HasProgress(today) {
		return false
	}
	c.Progress = append(c.Progress, today)
	if len(c.Progress) >= c.Duration {
		c.Status = model.ChallengeCompleted
	}
	return true
}

// UseChallengeRescue retroactively credits yesterday, at most once per
// challenge. The rescue is only consumed when it actually adds a day.
func UseChallengeRescue(c *model.Challenge, yesterday string) bool {
	if c.RescueUsed || c.Status != model.ChallengeActive {
		return false
	}
	if c.HasProgress(yesterday) {
		return false
	}
	c.Progress = append(c.Progress, yesterday)
	c.RescueUsed = true
	return true
}

// ChallengeProgressPercent is the rounded completion percentage.
func ChallengeProgressPercent(c *model.Challenge) int {
	if c.Duration <= 0 {
		return 0
	}
	return int(math.Round(float64(len(c.Progress)) / float64(c.Duration) * 100))
}

// ChallengeDaysLeft counts the remaining days in the window, today
// inclusive. A fully elapsed window yields 0.
func ChallengeDaysLeft(c *model.Challenge, today string) int {
	start, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return 0
	}
	now, err := time.Parse("2006-01-02", today)
	if err != nil {
		return 0
	}
	end := start.AddDate(0, 0, c.Duration-1)
	diff := int(end.Sub(now).Hours() / 24)
	if diff+1 < 0 {
		return 0
	}
	return diff + 1
}

// ChallengeWindowElapsed reports whether today lies strictly past the
// challenge's last day.
func ChallengeWindowElapsed(c *model.Challenge, today string) bool {
	return ChallengeDaysLeft(c, today) == 0
}
