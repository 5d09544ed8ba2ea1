package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvAdminToken = "ADMIN_TOKEN"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvMinRentalDays         = "MIN_RENTAL_DAYS"
	EnvMaxRentalDays         = "MAX_RENTAL_DAYS"
	EnvMaxAdvanceBookingDays = "MAX_ADVANCE_BOOKING_DAYS"
	EnvDefaultDepositAmount  = "DEFAULT_DEPOSIT_AMOUNT"

	EnvCarLockTTL = "CAR_LOCK_TTL"

	EnvNotifyTopic    = "NOTIFY_TOPIC"
	EnvNotifyDLQTopic = "NOTIFY_DLQ_TOPIC"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
