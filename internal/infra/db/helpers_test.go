package db

import "os"

// getenvTestPostgres returns a live PostgreSQL DSN for integration tests, if any.
func getenvTestPostgres() string {
	return os.Getenv("TEST_DATABASE_URL")
}
