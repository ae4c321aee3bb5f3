package service

import (
	"errors"
	"strings"

	apperrors "teamup-backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

// toValidationError converts a validator.Struct failure into the typed
// validation error the handlers map to a 400. Only the first failing field
// is reported; clients fix one field at a time anyway.
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.NewValidationError(strings.ToLower(fe.Field()), "failed on the '"+fe.Tag()+"' rule")
	}
	return apperrors.NewValidationError("", err.Error())
}
