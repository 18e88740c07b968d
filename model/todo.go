package model

import "time"

type Todo struct {
	TodoID    string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Text      string    `bson:"text" json:"text" binding:"required"`
	Completed bool      `bson:"completed" json:"completed"`
	DueDate   string    `bson:"due_date,omitempty" json:"due_date,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (t *Todo) GetID() string { return t.TodoID }

var TodoSensitiveFields = []string{"Text"}
