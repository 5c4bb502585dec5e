package entity

import "time"

// ClaimLock marks an in-flight claim of a user on an event. The key is
// "<event_id>:<user_id>".
type ClaimLock struct {
	LockKey   string `gorm:"primarykey"`
	Owner     string
	CreatedAt time.Time `gorm:"index"`
}
