package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	AppPort     string
	HOST        string
	DatabaseURL string

	// JWT Settings
	JWTSecret     string
	JWTExpiration time.Duration

	// Chat Settings
	// Whether history reads return soft-deleted messages too. Matches the
	// long-standing behavior when left on.
	ChatIncludeInactive bool

	// CORS Settings
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
}

func LoadConfig() *Config {
	// Load configuration from a .env file when present, otherwise rely on
	// the process environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		AppPort:     os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		HOST:        os.Getenv("HOST"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiration: 72 * time.Hour,

		ChatIncludeInactive: os.Getenv("CHAT_INCLUDE_INACTIVE") != "false",

		CORSAllowOrigins: []string{"*"},
		CORSAllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}

	if config.AppPort == "" {
		config.AppPort = "4000"
	}

	if raw := os.Getenv("JWT_EXPIRES_IN"); raw != "" {
		if expiration, err := time.ParseDuration(raw); err == nil {
			config.JWTExpiration = expiration
		} else {
			log.Printf("Invalid JWT_EXPIRES_IN %q, keeping default %s", raw, config.JWTExpiration)
		}
	}

	return config
}
