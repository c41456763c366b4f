package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Booking store: "firestore" or "mongo".
	BookingStore string `mapstructure:"BOOKING_STORE"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Firebase configuration.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`

	// Redis configuration.
	RedisAddr            string        `mapstructure:"REDIS_ADDR"`
	RedisPassword        string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int           `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int           `mapstructure:"REDIS_REMINDER_QUEUE_DB"`
	BookedSlotsCacheTTL  time.Duration `mapstructure:"BOOKED_SLOTS_CACHE_TTL"`

	// Shop settings.
	OperatorEmail        string        `mapstructure:"OPERATOR_EMAIL"`
	OperatorTopic        string        `mapstructure:"OPERATOR_TOPIC"`
	Timezone             string        `mapstructure:"TIMEZONE"`
	NotificationsEnabled bool          `mapstructure:"NOTIFICATIONS_ENABLED"`
	ReminderLeadTime     time.Duration `mapstructure:"REMINDER_LEAD_TIME"`

	// Widget sessions.
	SessionIdleTimeout   time.Duration `mapstructure:"SESSION_IDLE_TIMEOUT"`
	SessionSweepSchedule string        `mapstructure:"SESSION_SWEEP_SCHEDULE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("BOOKING_STORE", "firestore")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "soupbarber")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "config/serviceAccountKey.json")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("BOOKED_SLOTS_CACHE_TTL", 2*time.Minute)
	viper.SetDefault("OPERATOR_EMAIL", "devin@soupbarber.com")
	viper.SetDefault("OPERATOR_TOPIC", "barber-bookings")
	viper.SetDefault("TIMEZONE", "Local")
	viper.SetDefault("NOTIFICATIONS_ENABLED", false)
	viper.SetDefault("REMINDER_LEAD_TIME", time.Hour)
	viper.SetDefault("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	viper.SetDefault("SESSION_SWEEP_SCHEDULE", "@every 5m")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves the configured shop timezone, falling back to the host zone.
func Location() *time.Location {
	if AppConfig.Timezone == "" || AppConfig.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using local time: %v", AppConfig.Timezone, err)
		return time.Local
	}
	return loc
}
