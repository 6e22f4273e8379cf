package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	// Load env from .env; real env vars win over file values.
	godotenv.Load()
}

// UpstreamBaseURL is the root of the inventory REST API that owns all
// business data (products, sales, stock, dashboard aggregates).
func UpstreamBaseURL() string {
	return stringFromEnv("UPSTREAM_API_BASE_URL", "https://localhost:7232/api")
}

// SuggestionEndpoint is the text-completion endpoint used by the reorder
// quantity suggestion flow.
func SuggestionEndpoint() string {
	return stringFromEnv("SUGGESTION_API_URL", "")
}

func SuggestionAPIKey() string {
	return strings.TrimSpace(os.Getenv("SUGGESTION_API_KEY"))
}

func SuggestionModel() string {
	return stringFromEnv("SUGGESTION_MODEL", "gemini-2.0-flash")
}

func UpstreamTimeout() time.Duration {
	return time.Duration(intFromEnv("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second
}

func SuggestionTimeout() time.Duration {
	return time.Duration(intFromEnv("SUGGESTION_TIMEOUT_SECONDS", 30)) * time.Second
}

func stringFromEnv(key string, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
