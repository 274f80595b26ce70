package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr       = ":8080"
	defaultSessionTTL = 30 * time.Minute
)

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

// Addr accepts either a bare port ("8080") or a listen address.
func Addr() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return defaultAddr
	}
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func SessionTTL() (time.Duration, error) {
	ttlStr, ok := os.LookupEnv("SESSION_TTL")
	if !ok {
		return defaultSessionTTL, nil
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return 0, fmt.Errorf("unable to parse SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}
	return ttl, nil
}

// AllowedOrigins returns the comma separated CORS_ORIGINS, or nil to allow
// any origin.
func AllowedOrigins() []string {
	originsStr, ok := os.LookupEnv("CORS_ORIGINS")
	if !ok || strings.TrimSpace(originsStr) == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(originsStr, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
