package datasetdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/go-petr/pet-bank-datagen/internal/identity"
)

// ValidLocale validates whether identity data exists for the locale.
var ValidLocale validator.Func = func(fl validator.FieldLevel) bool {
	tag, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	for _, l := range identity.Locales() {
		if l == tag {
			return true
		}
	}

	return false
}
