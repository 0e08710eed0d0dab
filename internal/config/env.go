// Package config provides shared configuration utilities.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenv loads a .env file from the working directory if one exists.
// Missing files are fine; explicit env vars always win.
func LoadDotenv() {
	_ = godotenv.Load()
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
