package model

import "time"

// Session is one device's presence record. The document id is the device id
// so a repeated login from the same device merges into the same record.
// Sessions carry no TTL; they are deleted on logout from that device.
type Session struct {
	SessionID  string    `bson:"_id,omitempty" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	DeviceName string    `bson:"device_name" json:"device_name"`
	LastActive time.Time `bson:"last_active" json:"last_active"`
	IsCurrent  bool      `bson:"-" json:"is_current"`
}

func (s *Session) GetID() string { return s.SessionID }
