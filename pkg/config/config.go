package config

import "os"

// Config is populated from the environment once at startup. Every field has
// a usable default so a bare `go run ./cmd/server` works against a local
// SQLite file.
type Config struct {
	Port        string
	DBPath      string
	DatabaseURL string // when set, Postgres is used instead of the SQLite file
	SeedPath    string // spreadsheet used to seed the item catalog

	AdminUser string
	AdminPass string
	JWTSecret string

	// Admin login notification email (optional).
	NotifyEmail string
}

func Load() Config {
	return Config{
		Port:        getenv("PORT", "8080"),
		DBPath:      getenv("INV_BILL_DB", "inventory_billing.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SeedPath:    os.Getenv("INV_BILL_XLSM"),
		AdminUser:   getenv("ADMIN_USER", "admin"),
		AdminPass:   getenv("ADMIN_PASS", "admin123"),
		JWTSecret:   getenv("JWT_SECRET", "change-me-in-production"),
		NotifyEmail: os.Getenv("ADMIN_NOTIFY_EMAIL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
