package config

import "os"

// Store backends selectable through STORE_BACKEND. Memory is the local
// default; redis and postgres point the service at a remote store endpoint.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr          string
	UsersTable    string
	ManagersTable string
	StoreBackend  string
	RedisURL      string
	DatabaseURL   string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("USER_REGISTRY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	usersTable := os.Getenv("USERS_TABLE")
	if usersTable == "" {
		usersTable = "users"
	}

	managersTable := os.Getenv("MANAGERS_TABLE")
	if managersTable == "" {
		managersTable = "managers"
	}

	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = BackendMemory
	}

	return Config{
		Addr:          addr,
		UsersTable:    usersTable,
		ManagersTable: managersTable,
		StoreBackend:  backend,
		RedisURL:      os.Getenv("REDIS_URL"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
	}
}
