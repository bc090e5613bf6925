// Package logic implements the core business logic for the encryption/decryption.
package logic

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/idelchi/encrypter/internal/config"
	"github.com/idelchi/encrypter/internal/encryption"
)

// Run is the main logic of the application.
// It encrypts or decrypts cfg.File and reports the outcome on stdout.
func Run(cfg *config.Config) error {
	return run(cfg, os.Stdout, os.Stderr)
}

func run(cfg *config.Config, stdout, stderr io.Writer) error {
	start := time.Now()

	opts, err := options(cfg)
	if err != nil {
		return err
	}

	opts.Logger = newLogger(cfg, stderr)

	proc, err := encryption.NewProcessor(opts)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}
	defer proc.Close()

	var (
		result encryption.Result
		action string
	)

	if cfg.Decrypt {
		action = "decrypted"
		result, err = proc.Decrypt(cfg.File)
	} else {
		action = "encrypted"

		if !cfg.Quiet {
			fmt.Fprintf(stdout, "Using %s with a %d-bit key\n", opts.Algorithm, opts.KeySize)
		}

		result, err = proc.Encrypt(cfg.File)
	}

	if err != nil {
		return err
	}

	opts.Logger.Debug().
		Str("input", result.Input).
		Str("output", result.Output).
		Dur("duration", time.Since(start).Round(time.Millisecond)).
		Msg("done")

	if cfg.Quiet {
		return nil
	}

	if cfg.Decrypt {
		fmt.Fprintf(stdout, "Using %s with a %d-bit key\n", result.Algorithm, result.KeySize)
	}

	//nolint:gosec // OutputSize is a file size and never negative
	fmt.Fprintf(stdout, "File %q successfully %s as %q (%s)\n",
		result.Input, action, result.Output, humanize.IBytes(uint64(max(0, result.OutputSize))))

	return nil
}

// options converts the validated configuration into processor options.
func options(cfg *config.Config) (encryption.Options, error) {
	alg, err := encryption.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return encryption.Options{}, err
	}

	bits, err := encryption.ParseKeySize(cfg.Bits)
	if err != nil {
		return encryption.Options{}, err
	}

	return encryption.Options{
		Algorithm:          alg,
		KeySize:            bits,
		Passphrase:         []byte(cfg.Passphrase),
		PreserveTimestamps: cfg.PreserveTimestamps,
	}, nil
}

// newLogger writes diagnostics to w: debug and up with --verbose, warnings otherwise, nothing with --quiet.
func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel

	switch {
	case cfg.Quiet:
		level = zerolog.Disabled
	case cfg.Verbose:
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
