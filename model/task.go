package model

import "time"

type TaskType string
type Category string

const (
	TaskTypeHabit TaskType = "Habit"
	TaskTypeGoal  TaskType = "Goal"

	CategoryWealth   Category = "Wealth"
	CategoryHealth   Category = "Health"
	CategoryPersonal Category = "Personal"
	CategoryCareer   Category = "Career"
	CategoryOther    Category = "Other"
)

// Task is a habit or goal definition. CompletedDates holds unique ISO date
// strings (YYYY-MM-DD) in chronological append order; Streaks counts the
// current run of consecutive days and MaxStreaks never decreases.
type Task struct {
	TaskID         string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	Name           string    `bson:"name" json:"name" binding:"required"`
	Type           TaskType  `bson:"type" json:"type"`
	Category       Category  `bson:"category" json:"category"`
	Why            string    `bson:"why" json:"why"`
	Penalty        string    `bson:"penalty" json:"penalty"`
	StartDate      string    `bson:"start_date" json:"start_date"`
	EndDate        string    `bson:"end_date" json:"end_date"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	Streaks        int       `bson:"streaks" json:"streaks"`
	MaxStreaks     int       `bson:"max_streaks" json:"max_streaks"`
	CompletedDates []string  `bson:"completed_dates" json:"completed_dates"`
}

func (t *Task) GetID() string { return t.TaskID }

// HasCompleted reports whether the given date is already recorded.
func (t *Task) HasCompleted(date string) bool {
	for _, d := range t.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// TaskSensitiveFields lists the task attributes encrypted at rest.
var TaskSensitiveFields = []string{"Name", "Why", "Penalty"}
