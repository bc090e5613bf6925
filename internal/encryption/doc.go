// Package encryption converts files into self-describing encrypted containers and back.
//
// A container is a 9-byte header (original size, cipher and key size) followed by
// the file encrypted block by block with AES or Blowfish. The key is the truncated
// SHA-256 digest of a passphrase. The format is not authenticated.
package encryption
