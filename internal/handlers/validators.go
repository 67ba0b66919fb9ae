package handlers

import (
	"github.com/estudiolink/estudio_backend/internal/utils/fiscal"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerCustomValidators wires domain validations into gin's binding engine so
// request DTOs can declare them with struct tags.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("cuit", func(fl validator.FieldLevel) bool {
			return fiscal.ValidCUIT(fl.Field().String())
		})
	}
}
