package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dmardones/delivery-slots/internal/apperr"
)

// conn picks the handle a query runs on. Reads that can happen inside a
// caller's transaction take a tx parameter; a nil tx falls back to the
// repository's own pool handle.
func conn(tx, db *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// notFound translates gorm's record-not-found into the shared taxonomy
// so services never have to import gorm error values.
func notFound(err error, what string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("%s %v", what, id)
	}
	return err
}

// integrity translates unique-constraint violations surfaced by the
// driver (gorm.Config.TranslateError must be on) into the taxonomy.
func integrity(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.DataIntegrity("%s", msg)
	}
	return err
}
