package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = novoValidador()

func novoValidador() *validator.Validate {
	v := validator.New()
	// usa o nome do campo no JSON nas mensagens
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		nome := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if nome == "-" {
			return ""
		}
		return nome
	})
	// valores monetários são validados como número (gte=0, gt=0...)
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch d := field.Interface().(type) {
		case decimal.Decimal:
			return d.InexactFloat64()
		case decimal.NullDecimal:
			if !d.Valid {
				return nil
			}
			return d.Decimal.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{}, decimal.NullDecimal{})
	return v
}

// Validar aplica as tags `validate` do DTO. Retorna nil quando está tudo certo
// ou um mapa campo -> regra violada.
func Validar(dto any) map[string]string {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	return ProcessValidationErrors(err)
}

func ProcessValidationErrors(err error) map[string]string {
	errorResponse := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorResponse["_"] = err.Error()
		return errorResponse
	}
	for _, ve := range validationErrors {
		campo := ve.Namespace()
		if i := strings.Index(campo, "."); i >= 0 {
			campo = campo[i+1:]
		}
		errorResponse[campo] = ve.Tag()
	}
	return errorResponse
}
