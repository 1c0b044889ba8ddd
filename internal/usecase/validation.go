package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(optionalValue,
		Optional[string]{}, Optional[int64]{}, Optional[bool]{}, Optional[time.Time]{},
	)

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// optionalValue exposes the wrapped value to validation tags; absent and
// null fields are seen as missing.
func optionalValue(field reflect.Value) interface{} {
	if o, ok := field.Interface().(interface{ validationValue() any }); ok {
		return o.validationValue()
	}
	return nil
}

// ValidateLead checks a full lead payload (create and replace).
func ValidateLead(d LeadDTO) []ValidationError {
	return validateStruct(d)
}

// ValidateLeadPatch only checks the fields that carry a value.
func ValidateLeadPatch(d LeadDTO) []ValidationError {
	return validatePresent(d)
}

func ValidateInterest(d InterestDTO) []ValidationError {
	return validateStruct(d)
}

func ValidateInterestPatch(d InterestDTO) []ValidationError {
	return validatePresent(d)
}

func validateStruct(v any) []ValidationError {
	if err := validate.Struct(v); err != nil {
		return toValidationErrors(err, "")
	}
	return nil
}

func validatePresent(v any) []ValidationError {
	rv := reflect.Indirect(reflect.ValueOf(v))
	rt := rv.Type()

	var errs []ValidationError
	for n := 0; n < rt.NumField(); n++ {
		f := rt.Field(n)
		tag := f.Tag.Get("validate")
		if tag == "" {
			continue
		}
		value := optionalValue(rv.Field(n))
		if value == nil {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if err := validate.Var(value, tag); err != nil {
			errs = append(errs, toValidationErrors(err, name)...)
		}
	}
	return errs
}

func toValidationErrors(err error, field string) []ValidationError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Field: field, Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fe.Field()
		if field != "" {
			name = field
		}
		out = append(out, ValidationError{Field: name, Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "notblank":
		return "must not be blank"
	case "min":
		return "must be greater than or equal to " + fe.Param()
	case "max":
		return "must be less than or equal to " + fe.Param()
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

func newValidationError(entityName string, errs []ValidationError) *DomainError {
	return &DomainError{
		Code:    "validation",
		Message: "Invalid " + entityName + " payload",
		Fields:  errs,
	}
}
