package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
)

func newValidator() *validator.Validate {
	v := validator.New()
	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("symbol", func(fl validator.FieldLevel) bool {
		return stock.ValidateSymbol(fl.Field().String())
	})
	return v
}
