package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	ServerPort int
	LogLevel   string

	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	RedisAddr     string
	RedisPassword string
	SessionTTLMin int

	JWT_SECRET string

	KafkaBrokers []string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string

	SellerUsername string
	SellerPassword string

	MailHost    string
	MailPort    int
	MailUser    string
	MailPass    string
	SellerEmail string

	UploadDir string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     EnvDefault("DB_PORT", "5432"),
		DB_USER:     os.Getenv("DB_USER"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_NAME:     os.Getenv("DB_NAME"),

		RedisAddr:     EnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionTTLMin: EnvIntDefault("SESSION_TTL_MIN", 120),

		JWT_SECRET: os.Getenv("JWT_SECRET"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ES_URL:      os.Getenv("ES_URL"),
		ES_USER:     os.Getenv("ES_USER"),
		ES_PASSWORD: os.Getenv("ES_PASSWORD"),

		SellerUsername: EnvDefault("SELLER_USERNAME", "admin"),
		SellerPassword: EnvDefault("SELLER_PASSWORD", "admin123"),

		MailHost:    os.Getenv("MAIL_SERVER"),
		MailPort:    EnvIntDefault("MAIL_PORT", 587),
		MailUser:    os.Getenv("MAIL_USERNAME"),
		MailPass:    os.Getenv("MAIL_PASSWORD"),
		SellerEmail: os.Getenv("SELLER_EMAIL"),

		UploadDir: EnvDefault("UPLOAD_DIR", "static/uploads"),
	}

	return config, nil
}

// DSN assembles the postgres connection string from the DB_* pieces.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}
