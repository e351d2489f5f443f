package main

import (
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

type config struct {
	CatalogPath   string
	UseDatabase   bool
	DatabaseURL   string
	CreateNewRule string
}

// loadConfig reads .env (if present) and the process environment. Flags override it later.
func loadConfig() config {
	_ = godotenv.Load()

	return config{
		CatalogPath:   os.Getenv("IMPORT_CATALOG"),
		UseDatabase:   os.Getenv("IMPORT_CATALOG_DB") == "1",
		DatabaseURL:   dbDSNFromEnv(),
		CreateNewRule: os.Getenv("IMPORT_CREATE_NEW_RULE"),
	}
}

func dbDSNFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}

	host := getenvDefault("DB_HOST", "127.0.0.1")
	port := getenvDefault("DB_PORT", "5432")
	user := getenvDefault("DB_USER", "axelor")
	pass := getenvDefault("DB_PASSWORD", "axelor")
	name := getenvDefault("DB_NAME", "axelor")
	sslmode := getenvDefault("DB_SSLMODE", "disable")

	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, pass),
		Host:   host + ":" + port,
		Path:   "/" + name,
	}
	q := u.Query()
	q.Set("sslmode", sslmode)
	u.RawQuery = q.Encode()
	return u.String()
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
