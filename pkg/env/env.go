package env

import "os"

// Get reads an environment variable, falling back when it is unset or blank.
// Blank counts as unset so a stray `FOO=` in a .env file cannot clobber the
// fallback.
func Get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
