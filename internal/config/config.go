package config

import (
	"strings"

	"github.com/joho/godotenv"

	"resto_pos_backend/pkg/utils"
)

// Config is the process configuration, loaded from the environment with an
// optional .env file for development.
type Config struct {
	DB   DBConfig
	HTTP HTTPConfig
	JWT  JWTConfig
	Log  LogConfig
}

type DBConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SchemaPath string
}

type HTTPConfig struct {
	Port           string
	AllowedOrigins []string
}

type JWTConfig struct {
	Secret string
}

type LogConfig struct {
	Pretty bool
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() *Config {
	_ = godotenv.Load()

	var origins []string
	if raw := utils.Getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		origins = strings.Split(raw, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	return &Config{
		DB: DBConfig{
			Host:       utils.Getenv("DB_HOST", "localhost"),
			Port:       utils.Getenv("DB_PORT", "5432"),
			User:       utils.Getenv("DB_USER", "resto_pos"),
			Password:   utils.Getenv("DB_PASSWORD", "resto_pos"),
			Name:       utils.Getenv("DB_NAME", "resto_pos_db"),
			SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		},
		HTTP: HTTPConfig{
			Port:           utils.Getenv("PORT", "8080"),
			AllowedOrigins: origins,
		},
		JWT: JWTConfig{
			Secret: utils.Getenv("JWT_SECRET", "dev-only-secret-change-me"),
		},
		Log: LogConfig{
			Pretty: utils.Getenv("LOG_PRETTY", "true") == "true",
		},
	}
}
