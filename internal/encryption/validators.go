package encryption

import (
	"fmt"
	"slices"
)

// Algorithm identifies the block cipher used for a container.
type Algorithm byte

const (
	// AES is the AES block cipher with 16-byte blocks.
	AES Algorithm = iota + 1
	// Blowfish is the Blowfish block cipher with 8-byte blocks.
	Blowfish
)

// KeySize is the derived key length in bits.
type KeySize int

const (
	KeySize128 KeySize = 128
	KeySize192 KeySize = 192
	KeySize256 KeySize = 256
)

//nolint:gochecknoglobals
var (
	availableBits       = []int{int(KeySize128), int(KeySize192), int(KeySize256)}
	availableAlgorithms = []string{AES.String(), Blowfish.String()}
)

// IsValidBits reports whether bits is one of the supported key sizes.
func IsValidBits(bits int) bool {
	return slices.Contains(availableBits, bits)
}

// IsValidAlgorithm reports whether name is one of the supported algorithms.
// Names are case-sensitive.
func IsValidAlgorithm(name string) bool {
	return slices.Contains(availableAlgorithms, name)
}

// ParseAlgorithm converts a textual algorithm name into an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case AES.String():
		return AES, nil
	case Blowfish.String():
		return Blowfish, nil
	default:
		return 0, fmt.Errorf("%w: %q (supported: %v)", ErrUnsupportedAlgorithm, name, availableAlgorithms)
	}
}

// ParseKeySize converts a bit count into a KeySize.
func ParseKeySize(bits int) (KeySize, error) {
	if !IsValidBits(bits) {
		return 0, fmt.Errorf("%w: %d (supported: %v)", ErrUnsupportedKeySize, bits, availableBits)
	}

	return KeySize(bits), nil
}

// String returns the name used on the command line.
func (a Algorithm) String() string {
	switch a {
	case AES:
		return "aes"
	case Blowfish:
		return "blowfish"
	default:
		return fmt.Sprintf("Algorithm(%d)", byte(a))
	}
}

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	return a == AES || a == Blowfish
}

// Bytes returns the key length in bytes.
func (k KeySize) Bytes() int {
	return int(k) / 8 //nolint:mnd
}

// Valid reports whether k is a supported key size.
func (k KeySize) Valid() bool {
	return IsValidBits(int(k))
}
