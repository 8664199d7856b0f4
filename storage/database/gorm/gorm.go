package gormrepos

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// trapNotFound maps gorm "record not found" err to notFound
func trapNotFound(err error, notFound error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return errors.Wrap(err, msg)
}

// checkAffected returns notFound when tx changed no row.
func checkAffected(tx *gorm.DB, notFound error, msg string) error {
	if tx.Error != nil {
		return errors.Wrap(tx.Error, msg)
	}
	if tx.RowsAffected == 0 {
		return notFound
	}
	return nil
}
