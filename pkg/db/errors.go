package db

import "strings"

// IsUniqueViolation reports whether the provided error is a unique
// constraint violation. Matched on message text so both the Postgres
// driver and the sqlite driver used in tests are covered.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}
