package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

// BackendBaseURL is the address of the property management backend the
// stores talk to. Defaults to the local dev proxy target.
func BackendBaseURL() string {
	url := os.Getenv("BACKEND_BASE_URL")
	if url == "" {
		url = "http://localhost:5000/api"
	}
	return url
}
