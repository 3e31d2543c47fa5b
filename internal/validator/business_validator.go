package validator

import (
	"net/mail"
	"strings"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	parent *Validator
}

func newBusinessValidator(parent *Validator) *BusinessValidator {
	return &BusinessValidator{parent: parent}
}

// ValidateRegister validates account creation business rules
func (bv *BusinessValidator) ValidateRegister(req *RegisterRequest) ValidationErrors {
	var errors ValidationErrors

	// Basic struct validation
	errors = append(errors, bv.parent.Validate(req)...)

	// Display names like "Ada <ada@x.io>" pass the email tag but are not addresses
	if req.Email != "" {
		if addr, err := mail.ParseAddress(req.Email); err == nil && addr.Address != strings.TrimSpace(req.Email) {
			errors = append(errors, ValidationError{
				Field:   "email",
				Message: "must be a bare email address",
				Value:   req.Email,
				Rule:    "business_logic",
			})
		}
	}

	return errors
}

// ValidateCourseCreate validates course creation business rules
func (bv *BusinessValidator) ValidateCourseCreate(req *CourseCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.parent.Validate(req)...)

	if req.Price > 1_000_000 {
		errors = append(errors, ValidationError{
			Field:   "price",
			Message: "exceeds the supported maximum",
			Value:   req.Price,
			Rule:    "business_logic",
		})
	}

	return errors
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	v := bv.parent.validate

	// Rejects strings made only of whitespace
	v.RegisterValidation("not_blank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).IsValid()
	})
}
