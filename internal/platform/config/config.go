package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// IdentitySharedSecret is appended to the identity provider's field
	// concatenation when recomputing the payload digest.
	IdentitySharedSecret string

	// SessionSecret keys the HMAC over minted session tokens.
	SessionSecret string

	// VerifyIdentityPayloads gates digest verification on the provider
	// callback. When false the dev-only bypass endpoint is also registered.
	VerifyIdentityPayloads bool

	// IdentityRedirectURL is where the callback sends the browser after a
	// session cookie is set.
	IdentityRedirectURL string
}

func Load() (Config, error) {
	// .env is optional; real env vars always win.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "quorum"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	redirect := os.Getenv("IDENTITY_REDIRECT_URL")
	if redirect == "" {
		redirect = "/api/elections"
	}

	return Config{
		ServiceName:            service,
		HTTPPort:               port,
		PostgresDSN:            os.Getenv("POSTGRES_DSN"),
		IdentitySharedSecret:   os.Getenv("IDENTITY_SHARED_SECRET"),
		SessionSecret:          os.Getenv("SESSION_SECRET"),
		VerifyIdentityPayloads: envBool("VERIFY_IDENTITY_PAYLOADS", true),
		IdentityRedirectURL:    redirect,
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
