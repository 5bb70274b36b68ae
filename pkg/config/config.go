package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"innkeeper/pkg/client"
	"innkeeper/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	MaxStayDays   int
	MaxChainDepth int

	AdultAgeThreshold int
	MinGuestAge       int
	MaxGuestAge       int

	CheckInHour  int
	CheckOutHour int

	SaleOrderBaseURL string
	SaleOrderTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		MaxStayDays:   getEnvNum(EnvMaxStayDays, DefaultMaxStayDays),
		MaxChainDepth: getEnvNum(EnvMaxChainDepth, DefaultMaxChainDepth),

		AdultAgeThreshold: getEnvNum(EnvAdultAgeThreshold, DefaultAdultAgeThreshold),
		MinGuestAge:       getEnvNum(EnvMinGuestAge, DefaultMinGuestAge),
		MaxGuestAge:       getEnvNum(EnvMaxGuestAge, DefaultMaxGuestAge),

		CheckInHour:  getEnvNum(EnvDefaultCheckInHour, DefaultCheckInHour),
		CheckOutHour: getEnvNum(EnvDefaultCheckOutHour, DefaultCheckOutHour),

		SaleOrderBaseURL: getEnvStr(EnvSaleOrderBaseURL, DefaultSaleOrderBaseURL),
		SaleOrderTimeout: getEnvDuration(EnvSaleOrderTimeout, DefaultSaleOrderTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.MaxStayDays <= 0 {
		errors = append(errors, fmt.Sprintf("MaxStayDays must be positive, got: %d", cfg.MaxStayDays))
	}
	if cfg.MaxChainDepth <= 0 {
		errors = append(errors, fmt.Sprintf("MaxChainDepth must be positive, got: %d", cfg.MaxChainDepth))
	}

	if cfg.MinGuestAge < 0 {
		errors = append(errors, fmt.Sprintf("MinGuestAge cannot be negative, got: %d", cfg.MinGuestAge))
	}
	if cfg.MaxGuestAge < cfg.MinGuestAge {
		errors = append(errors, fmt.Sprintf("MaxGuestAge (%d) must be >= MinGuestAge (%d)", cfg.MaxGuestAge, cfg.MinGuestAge))
	}
	if cfg.AdultAgeThreshold < cfg.MinGuestAge || cfg.AdultAgeThreshold > cfg.MaxGuestAge {
		errors = append(errors, fmt.Sprintf("AdultAgeThreshold (%d) must be between MinGuestAge (%d) and MaxGuestAge (%d)", cfg.AdultAgeThreshold, cfg.MinGuestAge, cfg.MaxGuestAge))
	}

	if cfg.CheckInHour < 0 || cfg.CheckInHour > 23 {
		errors = append(errors, fmt.Sprintf("CheckInHour must be between 0 and 23, got: %d", cfg.CheckInHour))
	}
	if cfg.CheckOutHour < 0 || cfg.CheckOutHour > 23 {
		errors = append(errors, fmt.Sprintf("CheckOutHour must be between 0 and 23, got: %d", cfg.CheckOutHour))
	}

	if cfg.SaleOrderBaseURL == "" {
		errors = append(errors, "SaleOrderBaseURL cannot be empty")
	}
	if cfg.SaleOrderTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("SaleOrderTimeout must be positive, got: %s", cfg.SaleOrderTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"max_stay_days", cfg.MaxStayDays,
		"max_chain_depth", cfg.MaxChainDepth,
		"adult_age_threshold", cfg.AdultAgeThreshold,
		"min_guest_age", cfg.MinGuestAge,
		"max_guest_age", cfg.MaxGuestAge,
		"checkin_hour", cfg.CheckInHour,
		"checkout_hour", cfg.CheckOutHour,
		"sale_order_base_url", cfg.SaleOrderBaseURL,
		"sale_order_timeout", cfg.SaleOrderTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
