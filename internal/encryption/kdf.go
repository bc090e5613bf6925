package encryption

import (
	"crypto/sha256"
	"runtime"
)

// DeriveKey turns a passphrase into a key of bits/8 bytes by truncating its SHA-256 digest.
// There is no salt and no stretching: containers written by earlier versions depend on it.
func DeriveKey(passphrase []byte, bits KeySize) []byte {
	digest := sha256.Sum256(passphrase)
	defer zeroBytes(digest[:])

	key := make([]byte, bits.Bytes())
	copy(key, digest[:])

	return key
}

// zeroBytes overwrites a byte slice with zeros.
func zeroBytes(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
