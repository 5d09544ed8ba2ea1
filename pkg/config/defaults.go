package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "sofcar"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	// Booking-abuse quota: 5 submissions per origin per hour.
	DefaultRateLimitRequests = 5
	DefaultRateLimitWindow   = 1 * time.Hour

	// Rental policy window.
	DefaultMinRentalDays         = 5
	DefaultMaxRentalDays         = 30
	DefaultMaxAdvanceBookingDays = 90

	DefaultDefaultDepositAmount = 500.00

	DefaultCarLockTTL = 10 * time.Second

	DefaultNotifyTopic    = "sofcar.notifications"
	DefaultNotifyDLQTopic = "sofcar.notifications.dlq"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
	MaxPaginationLimit     = 500
)
