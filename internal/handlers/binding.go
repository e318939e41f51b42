package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingErrorMessage turns a gin binding error into a client-readable
// message. Validator errors are flattened per field; anything else (malformed
// JSON and the like) is passed through as-is.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request format: " + err.Error()
	}

	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs[i] = fmt.Sprintf("field '%s' is required", fe.Field())
		case "oneof":
			msgs[i] = fmt.Sprintf("field '%s' must be one of: %s", fe.Field(), fe.Param())
		case "min":
			msgs[i] = fmt.Sprintf("field '%s' needs at least %s items", fe.Field(), fe.Param())
		default:
			msgs[i] = fmt.Sprintf("field '%s' failed validation '%s'", fe.Field(), fe.Tag())
		}
	}
	return "Invalid request: " + strings.Join(msgs, "; ")
}
