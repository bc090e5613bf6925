// Package commands provides the command-line interface for the encrypter tool.
//
// A single root command encrypts a file, or decrypts it with -d.
// The package handles command-line parsing through cobra and viper
// and validates the configuration before the file is processed.
package commands
