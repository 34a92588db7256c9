package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the app reads from the environment.
type Config struct {
	BaseURL        string
	GoogleAPIKey   string
	PlacesLanguage string
	PlacesCountry  string
	DBPath         string
	MapsAvailable  bool
}

// Load reads .env (missing file is fine) and resolves the configuration with
// the defaults the app has always used.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	return &Config{
		BaseURL:        getEnv("SALES_API_BASE_URL", "https://kirovest.org/api"),
		GoogleAPIKey:   os.Getenv("GOOGLE_MAPS_API_KEY"),
		PlacesLanguage: getEnv("PLACES_LANGUAGE", "ar"),
		PlacesCountry:  getEnv("PLACES_COUNTRY", "eg"),
		DBPath:         getEnv("SALES_DB_PATH", "sales.db"),
		MapsAvailable:  getEnv("MAPS_AVAILABLE", "true") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
