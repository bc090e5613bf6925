package encryption

import (
	"bufio"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
)

const defaultBufferSize = 32 * 1024 // 32KB default buffer size

// encryptBlocks encrypts reader block by block into writer.
// A final partial block is zero-padded to the full block size.
// It returns the number of blocks written.
func encryptBlocks(block cipher.Block, reader io.Reader, writer io.Writer) (int64, error) {
	size := block.BlockSize()
	bufReader := bufio.NewReaderSize(reader, defaultBufferSize)
	bufWriter := bufio.NewWriterSize(writer, defaultBufferSize)

	plain := make([]byte, size)
	encrypted := make([]byte, size)

	var blocks int64

	for {
		n, err := io.ReadFull(bufReader, plain)
		if n == 0 && errors.Is(err, io.EOF) {
			break
		}

		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return blocks, fmt.Errorf("%w: reading plaintext: %w", ErrIO, err)
		}

		padBlock(plain, n)

		block.Encrypt(encrypted, plain)

		if _, err := bufWriter.Write(encrypted); err != nil {
			return blocks, fmt.Errorf("%w: writing encrypted block: %w", ErrIO, err)
		}

		blocks++

		if n < size {
			break
		}
	}

	zeroBytes(plain)

	if err := bufWriter.Flush(); err != nil {
		return blocks, fmt.Errorf("%w: writing encrypted block: %w", ErrIO, err)
	}

	return blocks, nil
}

// decryptBlocks decrypts reader block by block into writer.
// The padding of the last block is written as well; the caller truncates it.
// It returns the number of blocks written.
func decryptBlocks(block cipher.Block, reader io.Reader, writer io.Writer) (int64, error) {
	size := block.BlockSize()
	bufReader := bufio.NewReaderSize(reader, defaultBufferSize)
	bufWriter := bufio.NewWriterSize(writer, defaultBufferSize)

	encrypted := make([]byte, size)
	plain := make([]byte, size)

	var blocks int64

	for {
		_, err := io.ReadFull(bufReader, encrypted)
		if errors.Is(err, io.EOF) {
			break
		}

		if errors.Is(err, io.ErrUnexpectedEOF) {
			return blocks, fmt.Errorf("%w: %w", ErrIO, ErrInvalidBlockSize)
		}

		if err != nil {
			return blocks, fmt.Errorf("%w: reading ciphertext: %w", ErrIO, err)
		}

		block.Decrypt(plain, encrypted)

		if _, err := bufWriter.Write(plain); err != nil {
			return blocks, fmt.Errorf("%w: writing decrypted block: %w", ErrIO, err)
		}

		blocks++
	}

	zeroBytes(plain)

	if err := bufWriter.Flush(); err != nil {
		return blocks, fmt.Errorf("%w: writing decrypted block: %w", ErrIO, err)
	}

	return blocks, nil
}
