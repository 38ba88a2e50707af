package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Campus   CampusConfig
	Rides    RideConfig
	Fare     FareConfig
	Cache    CacheConfig
	Log      LogConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	DialTimeout time.Duration
	ReadTimeout time.Duration
	Enabled     bool
}

type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// CampusConfig fixes the geofence every ride is validated against
type CampusConfig struct {
	Latitude        float64
	Longitude       float64
	GeofenceRadiusM float64
}

// RideConfig bounds ride publication
type RideConfig struct {
	MinLeadTime       time.Duration
	BookingHorizon    time.Duration
	MaxSeatsPerRide   int
	MinTripDistanceKm float64
	MaxTripDistanceKm float64
}

// FareConfig is the flat per-seat fare applied to bookings
type FareConfig struct {
	PerSeat float64
}

type CacheConfig struct {
	TTLRideSnapshots time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "carpool"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MaxIdle:  getEnvAsInt("DB_MAX_IDLE_CONNECTIONS", 5),
		},
		Redis: RedisConfig{
			Host:        getEnv("REDIS_HOST", "localhost"),
			Port:        getEnv("REDIS_PORT", "6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			MaxRetries:  getEnvAsInt("REDIS_MAX_RETRIES", 3),
			PoolSize:    getEnvAsInt("REDIS_POOL_SIZE", 50),
			DialTimeout: 5 * time.Second,
			ReadTimeout: 3 * time.Second,
			Enabled:     getEnvAsBool("REDIS_ENABLED", true),
		},
		NewRelic: NewRelicConfig{
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			AppName:    getEnv("NEW_RELIC_APP_NAME", "Campus-Carpool"),
			Enabled:    getEnvAsBool("NEW_RELIC_ENABLED", false),
		},
		Campus: CampusConfig{
			Latitude:        getEnvAsFloat64("CAMPUS_LATITUDE", 16.38481),
			Longitude:       getEnvAsFloat64("CAMPUS_LONGITUDE", 120.59396),
			GeofenceRadiusM: getEnvAsFloat64("CAMPUS_GEOFENCE_RADIUS_M", 200),
		},
		Rides: RideConfig{
			MinLeadTime:       time.Duration(getEnvAsInt("RIDE_MIN_LEAD_MINUTES", 30)) * time.Minute,
			BookingHorizon:    time.Duration(getEnvAsInt("RIDE_BOOKING_HORIZON_DAYS", 7)) * 24 * time.Hour,
			MaxSeatsPerRide:   getEnvAsInt("RIDE_MAX_SEATS", 4),
			MinTripDistanceKm: getEnvAsFloat64("RIDE_MIN_DISTANCE_KM", 0.2),
			MaxTripDistanceKm: getEnvAsFloat64("RIDE_MAX_DISTANCE_KM", 50),
		},
		Fare: FareConfig{
			PerSeat: getEnvAsFloat64("FARE_PER_SEAT", 50),
		},
		Cache: CacheConfig{
			TTLRideSnapshots: time.Duration(getEnvAsInt("CACHE_TTL_RIDE_SNAPSHOTS_SECONDS", 60)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{getEnv("CORS_ALLOWED_ORIGIN", "*")},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Campus.GeofenceRadiusM <= 0 {
		return fmt.Errorf("CAMPUS_GEOFENCE_RADIUS_M must be positive")
	}
	if c.Rides.MaxSeatsPerRide < 1 {
		return fmt.Errorf("RIDE_MAX_SEATS must be at least 1")
	}
	if c.Rides.MinTripDistanceKm >= c.Rides.MaxTripDistanceKm {
		return fmt.Errorf("RIDE_MIN_DISTANCE_KM must be below RIDE_MAX_DISTANCE_KM")
	}
	if c.Fare.PerSeat < 0 {
		return fmt.Errorf("FARE_PER_SEAT must not be negative")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
