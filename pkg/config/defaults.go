package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "innkeeper"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	// Longest stay a single booking may cover.
	DefaultMaxStayDays = 365

	// Shortest billable stay, in fractional days. Day-use bookings
	// with equal check-in and check-out still bill this much.
	MinBookingDays = 0.01

	// Room-change chains longer than this are treated as corrupt data.
	DefaultMaxChainDepth = 50

	DefaultAdultAgeThreshold = 18
	DefaultMinGuestAge       = 1
	DefaultMaxGuestAge       = 120

	DefaultCheckInHour  = 15
	DefaultCheckOutHour = 12

	DefaultSaleOrderBaseURL = "http://localhost:8090"
	DefaultSaleOrderTimeout = 10 * time.Second
)
