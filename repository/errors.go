package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
)

// dbErr maps gorm errors onto apperr kinds. Errors that already carry a kind
// keep it.
func dbErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.Wrap(apperr.KindNotFound, op, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.Wrap(apperr.KindReference, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Wrap(apperr.KindInvalidState, op, err)
	}
	return apperr.Context(op, err)
}

func pageOf(page, limit int) (offset, size int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return (page - 1) * limit, limit
}
