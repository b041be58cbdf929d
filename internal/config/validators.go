package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/idelchi/gogen/pkg/validator"
)

// registerLogLevel adds a validator accepting the level names understood by hclog.
// It registers both the validation logic and a human-readable error message,
// and makes messages use the "label" tag instead of the Go field name.
func registerLogLevel(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"loglevel",
		validateLogLevel,
		"{0} must be one of trace, debug, info, warn, error or off",
	); err != nil {
		return fmt.Errorf("registering loglevel validation: %w", err)
	}

	validator.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateLogLevel accepts an empty value or any level hclog can parse.
func validateLogLevel(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	value := strings.TrimSpace(field.String())
	if value == "" {
		return true
	}

	return hclog.LevelFromString(value) != hclog.NoLevel
}
