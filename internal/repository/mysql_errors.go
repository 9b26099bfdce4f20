package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is the server error number for a UNIQUE violation.
const mysqlDuplicateEntry = 1062

// duplicateKey reports whether err is a MySQL duplicate-entry error and, if
// so, returns the name of the violated key as it appears in the message
// ("Duplicate entry 'x' for key 'users.uq_users_username'").
func duplicateKey(err error) (string, bool) {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlDuplicateEntry {
		return "", false
	}
	msg := me.Message
	if i := strings.LastIndex(msg, "for key '"); i >= 0 {
		key := strings.TrimSuffix(msg[i+len("for key '"):], "'")
		return key, true
	}
	return msg, true
}

// userConflict maps a duplicate-entry error on the users table to
// ErrUsernameExists / ErrEmailExists.  Other errors pass through.
func userConflict(err error) error {
	key, ok := duplicateKey(err)
	if !ok {
		return err
	}
	switch {
	case strings.Contains(key, "uq_users_username"):
		return ErrUsernameExists
	case strings.Contains(key, "uq_users_email"):
		return ErrEmailExists
	}
	return ErrConflict
}

// nullJSON turns an empty raw JSON value into SQL NULL.
func nullJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
