package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/blowfish"
)

// BlockSize returns the cipher block size in bytes.
func (a Algorithm) BlockSize() int {
	switch a {
	case AES:
		return aes.BlockSize
	case Blowfish:
		return blowfish.BlockSize
	default:
		panic(fmt.Sprintf("encryption: block size of unknown algorithm %v", a))
	}
}

// newBlock runs the key schedule of the chosen cipher.
// Callers validate the key size beforehand, so a rejected key is a bug and panics.
func newBlock(alg Algorithm, key []byte) cipher.Block {
	var (
		block cipher.Block
		err   error
	)

	switch alg {
	case AES:
		block, err = aes.NewCipher(key)
	case Blowfish:
		block, err = blowfish.NewCipher(key)
	default:
		err = fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, alg)
	}

	if err != nil {
		panic(fmt.Sprintf("encryption: %v key setup with %d-byte key: %v", alg, len(key), err))
	}

	return block
}
