package request

import (
	"credito_tributario/internal/domain/entities"

	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the custom binding rules used by the request DTOs.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("cnpj", validateCNPJ)
}

func validateCNPJ(fl validator.FieldLevel) bool {
	return entities.ValidDocumentNumber(fl.Field().String())
}
