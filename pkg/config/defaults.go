package config

import "time"

const (
	BackendCSV   = "csv"
	BackendMongo = "mongo"

	DefaultPort = "8080"

	DefaultLogLevel = "info"

	DefaultLedgerBackend = BackendCSV
	DefaultLedgerFile    = "bookings.csv"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "podquest"
	DefaultMongoConnTimeout  = 10 * time.Second

	// Meeting slots are a fixed hour plus a turnover buffer during which
	// the pod is still considered occupied.
	DefaultMeetingDurationMin = 60
	DefaultBufferDurationMin  = 10

	DefaultKafkaTopic = "podquest.reservations"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)
