package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	Environment    string
	AllowedOrigins []string
	StorageBackend string // firestore or memory

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string
	StorageBucket              string
	FCMEnabled                 bool

	JWTSecret string
	JWTExpiry int64

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AIAPIKey  string
	AIBaseURL string
	AIModel   string
	AITimeout time.Duration

	SMSAPIURL string
	SMSAPIKey string
	SMSSender string

	LogLevel  string
	LogFormat string

	AdminName     string
	AdminPhone    string
	AdminPassword string

	RateLimitPerMinute int
	AuthAttemptsLimit  int
	ResetCodeTTL       time.Duration
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS"),
		StorageBackend: getEnv("STORAGE_BACKEND", "firestore"),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		StorageBucket:              getEnv("STORAGE_BUCKET", ""),
		FCMEnabled:                 getEnvAsBool("FCM_ENABLED", false),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry: getEnvAsInt64("JWT_EXPIRY", 7*24*60*60), // 7 days

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       int(getEnvAsInt64("REDIS_DB", 0)),

		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIBaseURL: getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
		AIModel:   getEnv("AI_MODEL", "gpt-4o-mini"),
		AITimeout: time.Duration(getEnvAsInt64("AI_TIMEOUT_SECONDS", 30)) * time.Second,

		SMSAPIURL: getEnv("SMS_API_URL", ""),
		SMSAPIKey: getEnv("SMS_API_KEY", ""),
		SMSSender: getEnv("SMS_SENDER", "Dukkan"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		AdminName:     getEnv("ADMIN_NAME", "Admin"),
		AdminPhone:    getEnv("ADMIN_PHONE", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		RateLimitPerMinute: int(getEnvAsInt64("RATE_LIMIT_PER_MINUTE", 120)),
		AuthAttemptsLimit:  int(getEnvAsInt64("AUTH_ATTEMPTS_LIMIT", 5)),
		ResetCodeTTL:       time.Duration(getEnvAsInt64("RESET_CODE_TTL_MINUTES", 10)) * time.Minute,
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
