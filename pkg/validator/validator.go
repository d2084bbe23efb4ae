package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator with domain enum validations registered
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("job_role", func(fl validator.FieldLevel) bool {
		return entities.ValidJobRole(entities.JobRole(fl.Field().String()))
	})
	_ = v.RegisterValidation("experience_level", func(fl validator.FieldLevel) bool {
		return entities.ValidExperienceLevel(entities.ExperienceLevel(fl.Field().String()))
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
