package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP_ADDR      string
	LOG_LEVEL      string
	STORAGE_DRIVER string
	SQLITE_PATH    string
	DB_HOST        string
	DB_PORT        string
	DB_USER        string
	DB_PASSWORD    string
	DB_NAME        string
	KAFKA_ADDRESS  string
	DEMO_USERNAME  string
	DEMO_PASSWORD  string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDR:      getenv("HTTP_ADDR", ":8080"),
		LOG_LEVEL:      getenv("LOG_LEVEL", "info"),
		STORAGE_DRIVER: getenv("STORAGE_DRIVER", "memory"),
		SQLITE_PATH:    getenv("SQLITE_PATH", "workshop_hub.db"),
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        os.Getenv("DB_PORT"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		DEMO_USERNAME:  getenv("DEMO_USERNAME", "demo"),
		DEMO_PASSWORD:  getenv("DEMO_PASSWORD", "demo"),
	}

	return config, nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DB_HOST, c.DB_PORT, c.DB_USER, c.DB_PASSWORD, c.DB_NAME,
	)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
