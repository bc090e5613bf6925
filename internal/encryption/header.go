package encryption

import (
	"encoding/binary"
	"fmt"
)

const (
	// Suffix is appended to encrypted files and stripped on decryption.
	Suffix = ".enc"

	// HeaderSize is the length of the serialized container header.
	HeaderSize = sizeFieldLen + 1

	sizeFieldLen = 8
)

// Bitmask flags of the header's parameter byte.
// Key sizes occupy bits 0-2 and ciphers bits 4-5.
const (
	flagKey128   byte = 0x01
	flagKey192   byte = 0x02
	flagKey256   byte = 0x04
	flagAES      byte = 0x10
	flagBlowfish byte = 0x20
)

//nolint:gochecknoglobals
var (
	keySizeFlags = []struct {
		flag byte
		size KeySize
	}{
		{flagKey128, KeySize128},
		{flagKey192, KeySize192},
		{flagKey256, KeySize256},
	}

	cipherFlags = []struct {
		flag byte
		alg  Algorithm
	}{
		{flagAES, AES},
		{flagBlowfish, Blowfish},
	}
)

// Header describes a container: the plaintext length and the cipher parameters
// needed to decrypt it.
type Header struct {
	// Size is the length of the original file in bytes.
	Size uint64
	// Algorithm is the block cipher used for the body.
	Algorithm Algorithm
	// KeySize is the length of the derived key.
	KeySize KeySize
}

// Encode serializes the header. It panics if the algorithm or key size is unknown.
func (h Header) Encode() [HeaderSize]byte {
	var buf [HeaderSize]byte

	binary.LittleEndian.PutUint64(buf[:sizeFieldLen], h.Size)
	buf[sizeFieldLen] = h.keySizeFlag() | h.cipherFlag()

	return buf
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h Header) MarshalBinary() ([]byte, error) {
	if !h.Algorithm.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, h.Algorithm)
	}

	if !h.KeySize.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKeySize, h.KeySize)
	}

	buf := h.Encode()

	return buf[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *Header) UnmarshalBinary(data []byte) error {
	decoded, err := DecodeHeader(data)
	if err != nil {
		return err
	}

	*h = decoded

	return nil
}

// DecodeHeader parses the first HeaderSize bytes of data.
// Key size flags are tested from smallest to largest and the first match wins;
// the same applies to cipher flags.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedHeader, len(data), HeaderSize)
	}

	header := Header{Size: binary.LittleEndian.Uint64(data[:sizeFieldLen])}
	mask := data[sizeFieldLen]

	for _, entry := range keySizeFlags {
		if mask&entry.flag != 0 {
			header.KeySize = entry.size

			break
		}
	}

	if header.KeySize == 0 {
		return Header{}, fmt.Errorf("%w: mask %#02x", ErrMissingKeySizeFlag, mask)
	}

	for _, entry := range cipherFlags {
		if mask&entry.flag != 0 {
			header.Algorithm = entry.alg

			break
		}
	}

	if header.Algorithm == 0 {
		return Header{}, fmt.Errorf("%w: mask %#02x", ErrMissingCipherFlag, mask)
	}

	return header, nil
}

func (h Header) keySizeFlag() byte {
	for _, entry := range keySizeFlags {
		if entry.size == h.KeySize {
			return entry.flag
		}
	}

	panic(fmt.Sprintf("encryption: no header flag for key size %d", h.KeySize))
}

func (h Header) cipherFlag() byte {
	for _, entry := range cipherFlags {
		if entry.alg == h.Algorithm {
			return entry.flag
		}
	}

	panic(fmt.Sprintf("encryption: no header flag for algorithm %v", h.Algorithm))
}
