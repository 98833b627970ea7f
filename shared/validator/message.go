package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"notblank": "{field} must not be blank",
		"iso8601":  "{field} must be an ISO-8601 timestamp",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be at most {param} characters",
		"email":    "{field} must be a valid email address",
	}
)

// message renders every failed field, in struct order, as one sentence list.
func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(valErrors))

	for _, valErr := range valErrors {
		tmpl, ok := messages[valErr.Tag()]
		if !ok {
			parts = append(parts, valErr.Error())

			continue
		}

		tmpl = strings.ReplaceAll(tmpl, "{field}", valErr.Field())
		tmpl = strings.ReplaceAll(tmpl, "{param}", valErr.Param())

		parts = append(parts, tmpl)
	}

	return strings.Join(parts, "; ")
}
