package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
)

// RegisterCustomValidators registers the role validators on Gin's binding
// engine. Must run before any route binds a tagged request.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// platformrole accepts any known role, including EMPLOYEE.
	if err := v.RegisterValidation("platformrole", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseRole(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	// approverrole accepts only roles that sit in the approval chain.
	return v.RegisterValidation("approverrole", func(fl validator.FieldLevel) bool {
		role, err := domain.ParseRole(fl.Field().String())
		return err == nil && role.IsApprover()
	})
}
