package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/asmec-academy/assessment-engine/internal/models"
)

// Validator wraps the struct validator with the custom rules the engine's
// request DTOs use.
type Validator struct {
	structValidator *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	registerCustomValidators(v)
	return &Validator{structValidator: v}
}

func (v *Validator) Validate(s interface{}) error {
	return v.structValidator.Struct(s)
}

func registerCustomValidators(v *validator.Validate) {
	// difficulty_name accepts a tier's ordinal name, case-sensitive.
	v.RegisterValidation("difficulty_name", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseDifficulty(fl.Field().String())
		return ok
	})

	// test_kind accepts the two session kinds.
	v.RegisterValidation("test_kind", func(fl validator.FieldLevel) bool {
		kind := models.TestKind(fl.Field().String())
		return kind == models.TestDiagnostic || kind == models.TestProgress
	})
}
