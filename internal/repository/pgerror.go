package repository

import (
	"errors"
	"net/http"

	"github.com/lib/pq"

	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

const (
	pqForeignKeyViolation = pq.ErrorCode("23503")
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqCheckViolation      = pq.ErrorCode("23514")
	pqNotNullViolation    = pq.ErrorCode("23502")
)

// TranslatePQError maps constraint violations to typed API errors. Other errors
// are returned unchanged and it returns nil for nil.
func TranslatePQError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, http.StatusConflict, duplicateMessage(pqErr))
	case pqForeignKeyViolation:
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, http.StatusConflict, "record is referenced by or references missing data ("+pqErr.Constraint+")")
	case pqCheckViolation, pqNotNullViolation:
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "value violates constraint "+pqErr.Constraint)
	default:
		return err
	}
}

func duplicateMessage(pqErr *pq.Error) string {
	if pqErr.Constraint == "" {
		return "duplicate value"
	}
	return "duplicate value violates " + pqErr.Constraint
}
