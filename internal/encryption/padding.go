package encryption

// padBlock zero-fills block after the first n bytes.
// The padding is not self-describing: the header size is what removes it again.
func padBlock(block []byte, n int) {
	clear(block[n:])
}

// paddingLen returns the number of zero bytes appended to a plaintext of size bytes.
func paddingLen(size uint64, blockSize int) int {
	rem := int(size % uint64(blockSize)) //nolint:gosec // blockSize is 8 or 16

	if rem == 0 {
		return 0
	}

	return blockSize - rem
}
