// Package storage defines the tagged error set the repositories are allowed
// to raise. Domain services translate these into AppErrors; no store error
// escapes past the service layer.
package storage

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrDuplicateKey       = errors.New("storage: duplicate key")
	ErrNotFound           = errors.New("storage: record not found")
	ErrIntegrityViolation = errors.New("storage: integrity violation")
	ErrUnavailable        = errors.New("storage: backend unavailable")
)

// Translate maps driver and gorm errors onto the tagged set. Repositories
// call this on every failed statement so services never see raw driver
// errors. Relies on gorm's TranslateError dialect mapping for duplicate-key
// and foreign-key failures across postgres and sqlite.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrIntegrityViolation
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return errors.Join(ErrUnavailable, err)
	}
}
