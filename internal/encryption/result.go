package encryption

// Result represents the outcome of processing a single file.
type Result struct {
	// Input file path
	Input string

	// Output file path
	Output string

	// Output file size in bytes
	OutputSize int64

	// Cipher recorded in the container
	Algorithm Algorithm

	// Key size recorded in the container
	KeySize KeySize
}
