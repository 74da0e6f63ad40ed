package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config values from environment variables. Unset or
// malformed variables leave the current value in place.
//
// Recognized variables:
//
//	ADDRESS                   HTTP bind address
//	DATABASE_DSN              PostgreSQL DSN
//	SECRET_KEY                session token HMAC secret
//	SESSION_VALIDITY_MINUTES  session validity, minutes
//	SESSION_EARLY_EXPIRY_SEC  early-expiry window, seconds
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("SESSION_VALIDITY_MINUTES"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.SessionValidityDuration = time.Duration(n) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("SESSION_EARLY_EXPIRY_SEC"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.SessionEarlyExpiryWindow = time.Duration(n) * time.Second
		}
	}
}
