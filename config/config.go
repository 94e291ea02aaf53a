package config

import (
	"log"
	"os"
	"strings"
)

type Config struct {
	Port     string
	MongoURI string
	DBName   string

	// Payment gateway merchant credentials.
	GatewayBaseURL    string
	GatewayMerchantID string
	GatewayPublicKey  string
	GatewayPrivateKey string

	// Optional S3 cover storage; empty bucket disables it.
	S3Bucket string
	S3Region string
}

func Load() (*Config, error) {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		MongoURI:          getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:            getEnv("MONGODB_DB", "locallibrary"),
		GatewayBaseURL:    getEnv("GATEWAY_BASE_URL", "https://api.sandbox.gateway.example.com"),
		GatewayMerchantID: getEnv("GATEWAY_MERCHANT_ID", ""),
		GatewayPublicKey:  getEnv("GATEWAY_PUBLIC_KEY", ""),
		GatewayPrivateKey: getEnv("GATEWAY_PRIVATE_KEY", ""),
		S3Bucket:          getEnv("AWS_S3_BUCKET", ""),
		S3Region:          getEnv("AWS_REGION", "us-east-1"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// RequiredEnvVars are checked at startup; app exits if any are unset.
var RequiredEnvVars = []string{
	"MONGODB_URI",
	"MONGODB_DB",
	"GATEWAY_MERCHANT_ID",
	"GATEWAY_PUBLIC_KEY",
	"GATEWAY_PRIVATE_KEY",
}

// OptionalEnvVars are logged at startup so you can confirm they are loaded when set.
var OptionalEnvVars = []string{
	"PORT",
	"GATEWAY_BASE_URL",
	"AWS_S3_BUCKET",
	"AWS_REGION",
}

// ValidateEnv checks that all required env vars are set and logs status of
// required + optional. Calls log.Fatal if any required var is missing.
func ValidateEnv() {
	var missing []string
	for _, key := range RequiredEnvVars {
		if strings.TrimSpace(os.Getenv(key)) == "" {
			missing = append(missing, key)
		} else {
			log.Printf("env %s loaded", key)
		}
	}
	if len(missing) > 0 {
		log.Fatalf("missing required env: %s (set these in .env or environment)", strings.Join(missing, ", "))
	}
	for _, key := range OptionalEnvVars {
		if strings.TrimSpace(os.Getenv(key)) != "" {
			log.Printf("env %s loaded", key)
		} else {
			log.Printf("env %s not set (optional)", key)
		}
	}
}
