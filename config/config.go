package config

import (
	"log"

	"github.com/spf13/viper"
)

// HostAccount describes one shared meeting-platform account usable by a
// single concurrent meeting.
type HostAccount struct {
	ID         string `mapstructure:"id"`
	Platform   string `mapstructure:"platform"`
	Credential string `mapstructure:"credential"`
}

// Community describes one portal served by this backend (openEuler,
// MindSpore, openGauss, ...). Platforms lists the meeting platforms the
// community may book on.
type Community struct {
	Name        string   `mapstructure:"name"`
	Platforms   []string `mapstructure:"platforms"`
	TopicPrefix string   `mapstructure:"topic_prefix"`
}

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Scheduler knobs. Never hardcoded in the booking core.
	BookingHorizonDays    int `mapstructure:"BOOKING_HORIZON_DAYS"`
	ConflictBufferMinutes int `mapstructure:"CONFLICT_BUFFER_MINUTES"`
	CancelGuardMinutes    int `mapstructure:"CANCEL_GUARD_MINUTES"`

	// Meeting platform API endpoints.
	ZoomAPIBase    string `mapstructure:"ZOOM_API_BASE"`
	TencentAPIBase string `mapstructure:"TENCENT_API_BASE"`
	WeLinkAPIBase  string `mapstructure:"WELINK_API_BASE"`

	// Push delivery.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Host pool and community definitions come from the config file only.
	Hosts       []HostAccount `mapstructure:"hosts"`
	Communities []Community   `mapstructure:"communities"`
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

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "osmeet")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("BOOKING_HORIZON_DAYS", 60)
	viper.SetDefault("CONFLICT_BUFFER_MINUTES", 30)
	viper.SetDefault("CANCEL_GUARD_MINUTES", 60)
	viper.SetDefault("ZOOM_API_BASE", "https://api.zoom.us/v2")
	viper.SetDefault("TENCENT_API_BASE", "https://api.meeting.qq.com/v1")
	viper.SetDefault("WELINK_API_BASE", "https://open.welink.huaweicloud.com/api")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
