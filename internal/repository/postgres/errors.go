package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes this package cares about.
const (
	pgUndefinedTable  = "42P01"
	pgUniqueViolation = "23505"
)

// isUndefinedTable reports whether err is a postgres "relation does not
// exist" error, i.e. the backing table has not been provisioned yet.
func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUndefinedTable
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation, optionally restricted to the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pgUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
