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

	// Authentication.
	AuthProvider            string `mapstructure:"AUTH_PROVIDER"` // "demo" or "firebase"
	JWTSecret               string `mapstructure:"JWT_SECRET"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Catalog storage.
	CatalogBackend string `mapstructure:"CATALOG_BACKEND"` // "memory" or "mongo"
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`

	// Session storage.
	SessionBackend string        `mapstructure:"SESSION_BACKEND"` // "memory" or "redis"
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int           `mapstructure:"REDIS_SESSION_DB"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	SessionSweep   time.Duration `mapstructure:"SESSION_SWEEP_INTERVAL"`

	// Chat simulation.
	ChatReplyDelay time.Duration `mapstructure:"CHAT_REPLY_DELAY"`
	ReplyMode      string        `mapstructure:"REPLY_MODE"` // "canned" or "gemini"
	GeminiAPIKey   string        `mapstructure:"GEMINI_API_KEY"`

	// Video ads.
	VideoAdProbability float64       `mapstructure:"VIDEO_AD_PROBABILITY"`
	VideoAdDelay       time.Duration `mapstructure:"VIDEO_AD_DELAY"`
	VideoAdSkipAfter   time.Duration `mapstructure:"VIDEO_AD_SKIP_AFTER"`
	VideoAdDuration    time.Duration `mapstructure:"VIDEO_AD_DURATION"`
	VideoAdTick        time.Duration `mapstructure:"VIDEO_AD_TICK"`

	// Attachment storage.
	StorageBackend      string `mapstructure:"STORAGE_BACKEND"` // "memory" or "cloudinary"
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
}

var AppConfig Config

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	viper.SetDefault("AUTH_PROVIDER", "demo")
	viper.SetDefault("JWT_SECRET", "servicehub-demo")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")

	viper.SetDefault("CATALOG_BACKEND", "memory")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "servicehub")

	viper.SetDefault("SESSION_BACKEND", "memory")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("SESSION_TTL", "24h")
	viper.SetDefault("SESSION_SWEEP_INTERVAL", "1m")

	viper.SetDefault("CHAT_REPLY_DELAY", "1s")
	viper.SetDefault("REPLY_MODE", "canned")
	viper.SetDefault("GEMINI_API_KEY", "")

	viper.SetDefault("VIDEO_AD_PROBABILITY", 0.3)
	viper.SetDefault("VIDEO_AD_DELAY", "5s")
	viper.SetDefault("VIDEO_AD_SKIP_AFTER", "5s")
	viper.SetDefault("VIDEO_AD_DURATION", "15s")
	viper.SetDefault("VIDEO_AD_TICK", "250ms")

	viper.SetDefault("STORAGE_BACKEND", "memory")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
}

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

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
