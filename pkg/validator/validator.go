// Package validator valida os DTOs de entrada com tags de struct.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Rejeita textos compostos apenas por espaços
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{v: v}
}

func (val *Validator) Struct(s any) error {
	return val.v.Struct(s)
}

// Describe converte os erros de validação em uma mensagem legível por campo
func Describe(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: failed '%s=%s'", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: failed '%s'", fe.Field(), fe.Tag()))
	}

	return strings.Join(parts, "; ")
}
