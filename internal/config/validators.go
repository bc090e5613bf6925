package config

import (
	"fmt"
	"reflect"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/encrypter/internal/encryption"
)

// registerParameters adds the "algorithm" and "keybits" tags,
// backed by the cipher parameter validators of the encryption package.
func registerParameters(validate *validator.Validator) error {
	if err := validate.RegisterValidationAndTranslation(
		"algorithm",
		validateAlgorithm,
		"{0} must be one of aes, blowfish",
	); err != nil {
		return fmt.Errorf("registering algorithm validation: %w", err)
	}

	if err := validate.RegisterValidationAndTranslation(
		"keybits",
		validateKeyBits,
		"{0} must be one of 128, 192, 256",
	); err != nil {
		return fmt.Errorf("registering keybits validation: %w", err)
	}

	return nil
}

// validateAlgorithm checks that a string field names a supported cipher.
func validateAlgorithm(fl validator.FieldLevel) bool {
	field := fl.Field()

	return field.Kind() == reflect.String && encryption.IsValidAlgorithm(field.String())
}

// validateKeyBits checks that an integer field is a supported key size.
func validateKeyBits(fl validator.FieldLevel) bool {
	field := fl.Field()

	switch field.Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return encryption.IsValidBits(int(field.Int()))
	default:
		return false
	}
}
