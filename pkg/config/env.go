package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMaxStayDays   = "MAX_STAY_DAYS"
	EnvMaxChainDepth = "MAX_CHAIN_DEPTH"

	EnvAdultAgeThreshold = "ADULT_AGE_THRESHOLD"
	EnvMinGuestAge       = "MIN_GUEST_AGE"
	EnvMaxGuestAge       = "MAX_GUEST_AGE"

	EnvDefaultCheckInHour  = "DEFAULT_CHECKIN_HOUR"
	EnvDefaultCheckOutHour = "DEFAULT_CHECKOUT_HOUR"

	EnvSaleOrderBaseURL = "SALE_ORDER_BASE_URL"
	EnvSaleOrderTimeout = "SALE_ORDER_TIMEOUT"
)
