package utils

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Mail     MailConfig
	Kafka    KafkaConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	BaseURL string

	// CORSOrigins comes from a comma separated CORS_ORIGINS
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	Migrate  bool
}

type JWTConfig struct {
	Secret string
}

// MailConfig selects the notifier driver: log, smtp or kafka
type MailConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type KafkaConfig struct {
	Broker   string
	Topic    string
	User     string
	Password string
}

type SeedConfig struct {
	Enabled  bool
	Password string
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not defined")

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_NAME", "crossfit-api")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("APP_BASE_URL", "http://localhost:3000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIGRATE", true)
	viper.SetDefault("MAIL_DRIVER", "log")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("KAFKA_TOPIC", "user-events")
	viper.SetDefault("SEED_USERS", false)

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			BaseURL:     viper.GetString("APP_BASE_URL"),
			CORSOrigins: splitList(viper.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
			Migrate:  viper.GetBool("DB_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Mail: MailConfig{
			Driver:   viper.GetString("MAIL_DRIVER"),
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Kafka: KafkaConfig{
			Broker:   viper.GetString("KAFKA_BROKER"),
			Topic:    viper.GetString("KAFKA_TOPIC"),
			User:     viper.GetString("KAFKA_USER"),
			Password: viper.GetString("KAFKA_PASS"),
		},
		Seed: SeedConfig{
			Enabled:  viper.GetBool("SEED_USERS"),
			Password: viper.GetString("SEED_PASSWORD"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
