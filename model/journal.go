package model

import "time"

type JournalEntry struct {
	EntryID   string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Date      string    `bson:"date" json:"date"`
	Subject   string    `bson:"subject" json:"subject" binding:"required"`
	Content   string    `bson:"content" json:"content"`
	Mood      string    `bson:"mood,omitempty" json:"mood,omitempty"`
	Images    []string  `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (e *JournalEntry) GetID() string { return e.EntryID }

var JournalSensitiveFields = []string{"Subject", "Content"}
