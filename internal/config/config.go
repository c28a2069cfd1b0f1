// Package config loads the service settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds

	GeminiAPIKey  string
	GeminiModel   string
	CropCacheSize int
	CropTimeout   int // seconds
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[CONFIG] loaded .env")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		Port:          getEnv("PORT", "3000"),
		Environment:   getEnv("APP_ENV", "development"),
		ReadTimeout:   getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:  getEnvAsInt("WRITE_TIMEOUT", 30),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		CropCacheSize: getEnvAsInt("CROP_CACHE_SIZE", 256),
		CropTimeout:   getEnvAsInt("CROP_TIMEOUT", 60),
	}
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

func (c *Config) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

func (c *Config) CropTimeoutDuration() time.Duration {
	return time.Duration(c.CropTimeout) * time.Second
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
