package commands

import (
	"fmt"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/encrypter/internal/config"
	"github.com/idelchi/encrypter/internal/encryption"
	"github.com/idelchi/encrypter/internal/logic"
)

// NewRootCommand creates the root command with common configuration.
// Flags are bound through viper and validated before any file is touched.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "encrypter [flags] file"
	root.Short = "Encrypt or decrypt a file with AES or Blowfish"
	root.Long = `Encrypts a file into <file>` + encryption.Suffix + ` or decrypts <file>` + encryption.Suffix + ` back to <file>.
The cipher and key size are stored in the encrypted file, so decryption only needs the passphrase.`
	root.Example = `  encrypter -k secret notes.txt
  encrypter -a blowfish -b 256 -k secret notes.txt
  encrypter -d -k secret notes.txt` + encryption.Suffix
	root.Args = cobra.MaximumNArgs(1)

	// Settings come from flags only, so the environment binding of the default root is replaced.
	root.PersistentPreRunE = bindFlags
	root.PreRunE = func(_ *cobra.Command, args []string) error {
		if len(args) > 0 {
			cfg.File = args[0]
		}

		return cobraext.Validate(cfg, cfg)
	}
	root.RunE = func(_ *cobra.Command, _ []string) error {
		return logic.Run(cfg)
	}

	root.Flags().BoolP("show", "s", false, "Show the configuration and exit")
	root.Flags().BoolP("decrypt", "d", false, "Decrypt the file instead of encrypting it")
	root.Flags().StringP("algorithm", "a", "aes", "Encryption algorithm: aes, blowfish")
	root.Flags().IntP("bits", "b", int(encryption.KeySize128), "Key size in bits: 128, 192, 256")
	root.Flags().StringP("passphrase", "k", "", "Passphrase the key is derived from (required)")
	root.Flags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.Flags().BoolP("verbose", "v", false, "Print debug information to stderr")
	root.Flags().BoolP("preserve-timestamps", "p", false, "Copy the modification time of the input to the output")

	return root
}

// bindFlags binds the command flags into viper, where cobraext.Validate unmarshals them from.
func bindFlags(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	return nil
}
