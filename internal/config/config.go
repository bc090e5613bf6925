// Package config holds the command line configuration and its validation.
package config

import (
	"errors"
	"fmt"

	playground "github.com/go-playground/validator/v10"
	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/encrypter/internal/encryption"
)

// ErrMissingFile is returned when no file to process was given.
var ErrMissingFile = errors.New("a file to process is required")

// Config represents the application configuration.
type Config struct {
	// Show prints the resolved configuration and exits
	Show bool

	// Parameters, validated in declaration order
	Algorithm  string `validate:"algorithm"`
	Bits       int    `validate:"keybits"`
	Passphrase string `mask:"filled" validate:"required"`

	// Positional argument
	File string `validate:"required"`

	// Mode and output flags
	Decrypt            bool
	Quiet              bool
	Verbose            bool
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`
}

// Display returns the value of the Show field.
func (c Config) Display() bool {
	return c.Show
}

// Validate validates config against its struct tags.
// The first failing field is reported as the matching sentinel error,
// wrapping the translated validation message.
func (c Config) Validate(config any) error {
	validate := validator.NewValidator()

	if err := registerParameters(validate); err != nil {
		return err
	}

	err := validate.Validator().Struct(config)
	if err == nil {
		return nil
	}

	var fieldErrors playground.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fmt.Errorf("validating configuration: %w", err)
	}

	first := fieldErrors[0]
	message := errors.Join(validate.FormatErrors(playground.ValidationErrors{first})...)

	var sentinel error

	switch first.StructField() {
	case "Algorithm":
		sentinel = encryption.ErrUnsupportedAlgorithm
	case "Bits":
		sentinel = encryption.ErrUnsupportedKeySize
	case "Passphrase":
		sentinel = encryption.ErrMissingPassphrase
	case "File":
		sentinel = ErrMissingFile
	default:
		return message
	}

	return fmt.Errorf("%w: %w", sentinel, message)
}
