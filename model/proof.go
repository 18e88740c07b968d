package model

import "time"

// Proof is an immutable record of one task completion event. By convention
// at most one proof exists per (task, date); this is not enforced by an
// index.
type Proof struct {
	ProofID   string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	TaskID    string    `bson:"task_id" json:"task_id"`
	Date      string    `bson:"date" json:"date"`
	Remark    string    `bson:"remark" json:"remark"`
	ImageURL  string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

func (p *Proof) GetID() string { return p.ProofID }

var ProofSensitiveFields = []string{"Remark"}
