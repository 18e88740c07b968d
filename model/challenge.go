package model

type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "Active"
	ChallengeCompleted ChallengeStatus = "Completed"
	ChallengeFailed    ChallengeStatus = "Failed"
)

// ChallengeDurations are the only accepted challenge lengths, in days.
var ChallengeDurations = []int{3, 7, 21, 30}

// Challenge is a time-boxed commitment. Progress holds unique ISO date
// strings in append order. Status only ever moves Active -> Completed or
// Active -> Failed, never back.
type Challenge struct {
	ChallengeID  string          `bson:"_id,omitempty" json:"id"`
	UserID       string          `bson:"user_id" json:"user_id"`
	Title        string          `bson:"title" json:"title" binding:"required"`
	Description  string          `bson:"description,omitempty" json:"description,omitempty"`
	Duration     int             `bson:"duration" json:"duration"`
	StartDate    string          `bson:"start_date" json:"start_date"`
	LinkedTaskID string          `bson:"linked_task_id,omitempty" json:"linked_task_id,omitempty"`
	Status       ChallengeStatus `bson:"status" json:"status"`
	Progress     []string        `bson:"progress" json:"progress"`
	RescueUsed   bool            `bson:"rescue_used" json:"rescue_used"`
}

func (c *Challenge) GetID() string { return c.ChallengeID }

// HasProgress reports whether the given date is already credited.
func (c *Challenge) HasProgress(date string) bool {
	for _, d := range c.Progress {
		if d == date {
			return true
		}
	}
	return false
}

func ValidChallengeDuration(days int) bool {
	for _, d := range ChallengeDurations {
		if d == days {
			return true
		}
	}
	return false
}

var ChallengeSensitiveFields = []string{"Title", "Description"}
