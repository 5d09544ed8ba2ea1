package model

import "time"

// CarLock is an advisory lock held for the duration of one booking-creation
// attempt. The car ID is the document key, so a second concurrent insert for
// the same car fails with a duplicate key error. ExpiresAt backs a TTL index
// that reaps locks orphaned by a crashed process.
type CarLock struct {
	CarID     string    `bson:"_id" json:"car_id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
