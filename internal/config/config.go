package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string
	UploadDir  string

	// InternalSecretKey lets trusted services into the internal rate tier.
	InternalSecretKey string

	RedisAddr    string
	KafkaBrokers []string
	KafkaTopic   string
	ServiceName  string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	SESSenderEmail     string

	SiteName        string
	ContactEmail    string
	ContactPhone    string
	InvoiceLogoPath string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    getenv("APP_PORT", "8080"),
		AppEnv:     os.Getenv("APP_ENV"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		UploadDir:  getenv("UPLOAD_DIR", "uploads"),

		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "orders.created"),
		ServiceName:  getenv("SERVICE_NAME", "storeadmin-api"),

		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SESSenderEmail:     os.Getenv("SES_SENDER_EMAIL"),

		SiteName:        os.Getenv("SITE_NAME"),
		ContactEmail:    os.Getenv("CONTACT_EMAIL"),
		ContactPhone:    os.Getenv("CONTACT_PHONE"),
		InvoiceLogoPath: os.Getenv("INVOICE_LOGO_PATH"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
