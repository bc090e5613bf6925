package encryption

import "errors"

var (
	// ErrInputOpen is returned when the input file cannot be opened for reading.
	ErrInputOpen = errors.New("opening input file")
	// ErrStat is returned when the size of the input file cannot be determined.
	ErrStat = errors.New("obtaining file size")
	// ErrOutputCreate is returned when the output file cannot be created.
	ErrOutputCreate = errors.New("creating output file")
	// ErrIO is returned on failed or short reads, writes and truncation.
	ErrIO = errors.New("i/o error")
	// ErrInvalidExtension is returned when a file to decrypt lacks the container suffix.
	ErrInvalidExtension = errors.New("invalid file name: file without " + Suffix + " extension")
	// ErrInvalidBlockSize is returned when the ciphertext body is not aligned with the cipher block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")

	// ErrHeader wraps every header decoding failure.
	ErrHeader = errors.New("invalid header")
	// ErrTruncatedHeader is returned when fewer than HeaderSize bytes are available.
	ErrTruncatedHeader = errors.New("truncated header")
	// ErrMissingKeySizeFlag is returned when the header bitmask has no key size bit set.
	ErrMissingKeySizeFlag = errors.New("missing key size flag")
	// ErrMissingCipherFlag is returned when the header bitmask has no cipher bit set.
	ErrMissingCipherFlag = errors.New("missing cipher flag")

	// ErrUnsupportedAlgorithm is returned for cipher names other than aes and blowfish.
	ErrUnsupportedAlgorithm = errors.New("unsupported encryption algorithm")
	// ErrUnsupportedKeySize is returned for key sizes other than 128, 192 and 256 bits.
	ErrUnsupportedKeySize = errors.New("unsupported key size")
	// ErrMissingPassphrase is returned when no passphrase was supplied.
	ErrMissingPassphrase = errors.New("passphrase is required")
)
