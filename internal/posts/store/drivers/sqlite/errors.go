package sqlite

import (
	"errors"
	"strings"

	"github.com/aussiebroadwan/posts/internal/posts/store"
	"github.com/aussiebroadwan/posts/pkg/apierr"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLite reports the columns of a violated unique index rather than the
// constraint name, so the schema's unique indexes are listed here by column.
var uniqueConstraints = map[string]string{
	"user.username": store.ConstraintUsernameUnique,
}

// SQLite does not name the foreign key that failed. The schema has a single
// one.
const foreignKeyConstraint = store.ConstraintPostAuthorFK

// ClassifyWriteError maps SQLite constraint failures onto the shared
// constraint names.
func (s *Store) ClassifyWriteError(err error) apierr.WriteError {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return apierr.WriteError{}
	}

	code := se.Code()
	if code&0xff != sqlite3.SQLITE_CONSTRAINT {
		return apierr.WriteError{}
	}

	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		cols := failedColumns(se.Error())
		if name, ok := uniqueConstraints[cols]; ok {
			return apierr.Conflict(name)
		}
		return apierr.Conflict(cols)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return apierr.Conflict(foreignKeyConstraint)
	default:
		return apierr.WriteError{}
	}
}

// failedColumns extracts "table.col[, table.col]" from
// "... constraint failed: user.username (2067)".
func failedColumns(msg string) string {
	const marker = "constraint failed: "
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return ""
	}
	cols := msg[i+len(marker):]
	if j := strings.Index(cols, " ("); j >= 0 {
		cols = cols[:j]
	}
	return strings.TrimSpace(cols)
}
