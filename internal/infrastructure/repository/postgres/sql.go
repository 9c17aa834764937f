package postgres

import (
	"database/sql"
	"errors"
)

// ErrNotFound marks lookups whose subject does not exist in the store.
var ErrNotFound = errors.New("not found")

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
