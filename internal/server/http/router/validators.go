package router

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ordesk/backoffice/internal/domain/model"
)

var validMarket validator.Func = func(fl validator.FieldLevel) bool {
	if value, ok := fl.Field().Interface().(string); ok {
		return model.Market(value).Valid()
	}
	return false
}

var validRole validator.Func = func(fl validator.FieldLevel) bool {
	if value, ok := fl.Field().Interface().(string); ok {
		return model.Role(value).Valid()
	}
	return false
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("market", validMarket)
		_ = v.RegisterValidation("role", validRole)
	}
}
