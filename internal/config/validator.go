package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/dsfile/internal/model"
	dserrors "github.com/alexisbeaulieu97/dsfile/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	// A bare host, host:port, or http(s) URL.
	endpointPattern = regexp.MustCompile(`^(https?://)?[A-Za-z0-9._-]+(:\d{1,5})?(/[A-Za-z0-9._/-]*)?$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("dsstate", func(fl validator.FieldLevel) bool {
			return model.DesiredState(fl.Field().String()).IsValid()
		})

		_ = v.RegisterValidation("endpoint", func(fl validator.FieldLevel) bool {
			return endpointPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateParams performs schema validation on the merged parameter set.
func ValidateParams(p *Params) error {
	if p == nil {
		return dserrors.NewValidationError("params", "parameters are nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(p); err != nil {
		return convertValidationError(err)
	}

	return nil
}

func convertValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return dserrors.NewValidationError("params", err.Error(), err)
	}

	first := validationErrors[0]
	field := strings.ToLower(first.Field())

	var message string
	switch first.Tag() {
	case "required":
		message = "is required"
	case "dsstate":
		message = fmt.Sprintf("must be one of absent, directory, file, touch (got %q)", first.Value())
	case "endpoint":
		message = fmt.Sprintf("%q is not a valid vCenter endpoint", first.Value())
	case "min", "max":
		message = fmt.Sprintf("value %v is out of range", first.Value())
	default:
		message = fmt.Sprintf("failed %s validation", first.Tag())
	}

	return dserrors.NewValidationError(field, message, err)
}
