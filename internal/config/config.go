package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string

	JWTSecret    []byte
	CookieSecure bool
	LoginPath    string
	CSRFEnabled  bool

	AdminEmail    string
	AdminPassword string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	RedisAddr       string
	RedisPassword   string
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// Load reads the optional .env file at path and then the process environment.
func Load(path string) Config {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Printf("notice: %s not loaded: %v, using system environment", path, err)
		}
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "storefront"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:    []byte(os.Getenv("JWT_SECRET")),
		CookieSecure: EnvBoolDefault("COOKIE_SECURE", false),
		LoginPath:    EnvDefault("LOGIN_PATH", "/admin/login"),
		CSRFEnabled:  EnvBoolDefault("CSRF_ENABLED", false),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		LoginRateLimit:  EnvIntDefault("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: EnvDurationDefault("LOGIN_RATE_WINDOW", 15*time.Minute),
	}
}
