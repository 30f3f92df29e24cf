package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"social-service/internal/shared/apperr"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates the `validate` tags on a request payload and folds the
// failures into a single ValidationError.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validationf("invalid payload")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return apperr.Validationf("missing or invalid fields: %s", strings.Join(fields, ", "))
}
