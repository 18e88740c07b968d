package model

// InsightStats aggregates a user's progress for the insights view.
type InsightStats struct {
	TaskStats struct {
		Total          int    `json:"total"`
		Habits         int    `json:"habits"`
		Goals          int    `json:"goals"`
		CompletionsAll int    `json:"completions_all"`
		BestStreak     int    `json:"best_streak"`
		BestStreakTask string `json:"best_streak_task,omitempty"`
	} `json:"task_stats"`
	ChallengeStats struct {
		Active    int `json:"active"`
		Completed int `json:"completed"`
		Failed    int `json:"failed"`
	} `json:"challenge_stats"`
	ExpenseStats struct {
		Total      float64            `json:"total"`
		ByCategory map[string]float64 `json:"by_category,omitempty"`
	} `json:"expense_stats"`
	JournalEntries int `json:"journal_entries"`
	PendingTodos   int `json:"pending_todos"`
}
