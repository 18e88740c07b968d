package model

type Expense struct {
	ExpenseID   string  `bson:"_id,omitempty" json:"id"`
	UserID      string  `bson:"user_id" json:"user_id"`
	Amount      float64 `bson:"amount" json:"amount"`
	Category    string  `bson:"category" json:"category"`
	Description string  `bson:"description" json:"description"`
	Date        string  `bson:"date" json:"date"`
}

func (e *Expense) GetID() string { return e.ExpenseID }

var ExpenseSensitiveFields = []string{"Description"}
