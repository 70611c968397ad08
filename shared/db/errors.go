package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrForeignKeyViolation is returned when a row references a parent that does not exist
	ErrForeignKeyViolation = errors.New("foreign key violation")
	// ErrDuplicateKey is returned on unique constraint violations
	ErrDuplicateKey = errors.New("duplicate key")
)

// constraintError keeps the driver error reachable while matching a sentinel
type constraintError struct {
	sentinel error
	cause    error
}

func (e *constraintError) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

func (e *constraintError) Is(target error) bool { return target == e.sentinel }
func (e *constraintError) Unwrap() error        { return e.cause }

// MapError translates MySQL and SQLite constraint failures into package sentinels.
// Errors it does not recognise are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1452, 1216: // ER_NO_REFERENCED_ROW_2, ER_NO_REFERENCED_ROW
			return &constraintError{sentinel: ErrForeignKeyViolation, cause: err}
		case 1062: // ER_DUP_ENTRY
			return &constraintError{sentinel: ErrDuplicateKey, cause: err}
		}
		return err
	}

	// modernc.org/sqlite reports constraint failures in the message text
	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &constraintError{sentinel: ErrForeignKeyViolation, cause: err}
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &constraintError{sentinel: ErrDuplicateKey, cause: err}
	}

	return err
}

func IsForeignKeyViolation(err error) bool { return errors.Is(MapError(err), ErrForeignKeyViolation) }
