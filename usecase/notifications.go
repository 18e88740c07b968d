package usecase

import (
	"sync"
	"time"

	"main/utils"
)

// Notification is one user-visible event, the backend analogue of a toast.
type Notification struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Kind    string    `json:"kind"`
	At      time.Time `json:"at"`
}

// NotificationLog keeps the most recent notifications for one user.
type NotificationLog struct {
	mu    sync.Mutex
	items []Notification
	limit int
}

func NewNotificationLog(limit int) *NotificationLog {
	if limit <= 0 {
		limit = 50
	}
	return &NotificationLog{limit: limit}
}

// Notify implements the Notifier callback.
func (l *NotificationLog) Notify(message, kind string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, Notification{
		ID:      utils.GenerateID(),
		Message: message,
		Kind:    kind,
		At:      time.Now(),
	})
	if len(l.items) > l.limit {
		l.items = l.items[len(l.items)-l.limit:]
	}
}

// Recent returns the stored notifications, newest last.
func (l *NotificationLog) Recent() []Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Notification(nil), l.items...)
}
