package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

// Config holds every setting the server reads at startup.
type Config struct {
	DatabaseDriver string
	DatabaseURL    string
	JWTSecretKey   string
	ServerPort     int
	LogFormat      string

	// Progression defaults for tenants without stored settings.
	Progression models.ProgressionConfig

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	GCPProject    string
	RankingsTopic string

	CORSAllowedOrigins []string
}

// Load reads the configuration from the environment. A .env file, when
// present, is loaded first.
func Load() (*Config, error) {
	// A missing .env file is fine outside local development.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	logFormat := stringEnv("LOG_FORMAT", "json")
	if logFormat != "json" && logFormat != "text" {
		return nil, fmt.Errorf("LOG_FORMAT must be json or text, got %q", logFormat)
	}

	bracketSize, err := intEnv("DEFAULT_BRACKET_SIZE", 4)
	if err != nil {
		return nil, err
	}
	threshold, err := intEnv("DEFAULT_SINGLE_POULE_THRESHOLD", 5)
	if err != nil {
		return nil, err
	}
	allowTwo, err := boolEnv("DEFAULT_ALLOW_POULE_OF_TWO", false)
	if err != nil {
		return nil, err
	}
	round2, err := boolEnv("DEFAULT_ENABLE_CLASSIFICATION_ROUND2", false)
	if err != nil {
		return nil, err
	}
	progression := models.ProgressionConfig{
		BracketSize:                bracketSize,
		SinglePouleThreshold:       threshold,
		AllowPouleOfTwo:            allowTwo,
		EnableClassificationRound2: round2,
	}
	if err := progression.Validate(); err != nil {
		return nil, fmt.Errorf("invalid progression defaults: %w", err)
	}

	cfg := &Config{
		DatabaseDriver:     stringEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:        dbURL,
		JWTSecretKey:       jwtKey,
		ServerPort:         port,
		LogFormat:          logFormat,
		Progression:        progression,
		R2AccountID:        os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:       os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:    os.Getenv("R2_PUBLIC_BASE_URL"),
		GCPProject:         os.Getenv("GCP_PROJECT"),
		RankingsTopic:      os.Getenv("RANKINGS_TOPIC"),
		CORSAllowedOrigins: listEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	return cfg, nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return b, nil
}

func listEnv(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
