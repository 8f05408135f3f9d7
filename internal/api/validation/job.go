package validation

import (
	"errors"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"

	"jobly/pkg/models"
)

var (
	ErrEmptyUpdate   = errors.New("no fields to update")
	ErrTitleRequired = errors.New("title cannot be null or empty")
	ErrInvalidEquity = errors.New("equity must be a decimal between 0 and 1")
)

// EquityPattern accepts fixed-point text between 0 and 1 inclusive
var EquityPattern = regexp.MustCompile(`^(0(\.[0-9]+)?|\.[0-9]+|1(\.0+)?)$`)

// ValidateEquity validates that equity is a decimal string in [0,1]
func ValidateEquity(fl validator.FieldLevel) bool {
	return EquityPattern.MatchString(fl.Field().String())
}

// RegisterJobValidators registers all job-related custom validators
func RegisterJobValidators(v *validator.Validate) {
	v.RegisterValidation("equity", ValidateEquity)

	// Nullable fields validate as their held value; unset and null
	// fields look empty so omitempty skips them.
	v.RegisterCustomTypeFunc(nullableValue,
		models.Nullable[string]{},
		models.Nullable[int]{},
	)
}

func nullableValue(field reflect.Value) interface{} {
	switch n := field.Interface().(type) {
	case models.Nullable[string]:
		if n.Valid {
			return n.Value
		}
	case models.Nullable[int]:
		if n.Valid {
			return n.Value
		}
	}
	return nil
}

// New returns a validator with the job validators registered
func New() *validator.Validate {
	v := validator.New()
	RegisterJobValidators(v)
	return v
}

// ValidateJobUpdate checks a partial update. Title may be omitted but not
// cleared; salary and equity may be set to null. An empty equity string is
// invisible to omitempty, so equity is matched here as well.
func ValidateJobUpdate(v *validator.Validate, u models.JobUpdate) error {
	if u.IsEmpty() {
		return ErrEmptyUpdate
	}
	if u.Title.Set && (!u.Title.Valid || u.Title.Value == "") {
		return ErrTitleRequired
	}
	if u.Equity.Valid && !EquityPattern.MatchString(u.Equity.Value) {
		return ErrInvalidEquity
	}
	return v.Struct(u)
}
