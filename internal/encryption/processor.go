package encryption

import (
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/idelchi/encrypter/internal/fileutil"
)

// Options configures a Processor.
type Options struct {
	// Algorithm is the cipher used when encrypting.
	Algorithm Algorithm
	// KeySize is the key length used when encrypting.
	KeySize KeySize
	// Passphrase the key is derived from. Processor.Close clears it.
	Passphrase []byte
	// PreserveTimestamps copies the input modification time onto the output.
	PreserveTimestamps bool
	// Logger receives diagnostic output. The zero value discards it.
	Logger zerolog.Logger
}

// Processor encrypts files into containers and restores them.
// Decryption takes the algorithm and key size from the container header.
type Processor struct {
	opts Options
	log  zerolog.Logger
}

// NewProcessor creates a Processor. It fails if no passphrase is given.
func NewProcessor(opts Options) (*Processor, error) {
	if len(opts.Passphrase) == 0 {
		return nil, ErrMissingPassphrase
	}

	return &Processor{
		opts: opts,
		log:  opts.Logger,
	}, nil
}

// Close clears the passphrase in place. Encrypt and Decrypt fail with ErrMissingPassphrase afterwards.
func (p *Processor) Close() {
	zeroBytes(p.opts.Passphrase)
	p.opts.Passphrase = nil
}

// Encrypt writes filename as a container to filename + Suffix.
// Algorithm and key size are validated before any file is opened.
// On failure a partially written container may be left behind.
func (p *Processor) Encrypt(filename string) (result Result, err error) {
	if len(p.opts.Passphrase) == 0 {
		return Result{}, ErrMissingPassphrase
	}

	if !p.opts.Algorithm.Valid() {
		return Result{}, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, p.opts.Algorithm)
	}

	if !p.opts.KeySize.Valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrUnsupportedKeySize, p.opts.KeySize)
	}

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return Result{}, fmt.Errorf("%w %q: %w", ErrInputOpen, filename, err)
	}
	defer inFile.Close()

	info, err := statRegular(inFile, filename)
	if err != nil {
		return Result{}, err
	}

	outPath := fileutil.AppendSuffix(filename, Suffix)

	outFile, err := fileutil.CreateOutput(outPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrOutputCreate, err)
	}
	defer closeOutput(outFile, &err)

	header := Header{
		Size:      uint64(info.Size()), //nolint:gosec // file sizes are non-negative
		Algorithm: p.opts.Algorithm,
		KeySize:   p.opts.KeySize,
	}

	if err := writeHeader(outFile, header); err != nil {
		return Result{}, err
	}

	block := p.setupCipher(header)

	blocks, err := encryptBlocks(block, inFile, outFile)
	if err != nil {
		return Result{}, fmt.Errorf("encrypting %q: %w", filename, err)
	}

	p.log.Debug().
		Str("input", filename).
		Uint64("size", header.Size).
		Int64("blocks", blocks).
		Int("padding", paddingLen(header.Size, block.BlockSize())).
		Msg("encrypted body")

	return p.finish(filename, outPath, outFile, header, info)
}

// Decrypt restores a container named <file>.enc to <file>.
// The output is truncated to the size recorded in the header, dropping the block padding.
// On failure a partially written output may be left behind.
func (p *Processor) Decrypt(filename string) (result Result, err error) {
	if len(p.opts.Passphrase) == 0 {
		return Result{}, ErrMissingPassphrase
	}

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return Result{}, fmt.Errorf("%w %q: %w", ErrInputOpen, filename, err)
	}
	defer inFile.Close()

	info, err := statRegular(inFile, filename)
	if err != nil {
		return Result{}, err
	}

	outPath, ok := fileutil.StripSuffix(filename, Suffix)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidExtension, filename)
	}

	header, err := readHeader(inFile)
	if err != nil {
		return Result{}, fmt.Errorf("%w %q: %w", ErrHeader, filename, err)
	}

	p.log.Debug().
		Str("input", filename).
		Uint64("size", header.Size).
		Stringer("algorithm", header.Algorithm).
		Int("bits", int(header.KeySize)).
		Msg("read header")

	outFile, err := fileutil.CreateOutput(outPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrOutputCreate, err)
	}
	defer closeOutput(outFile, &err)

	block := p.setupCipher(header)

	blocks, err := decryptBlocks(block, inFile, outFile)
	if err != nil {
		return Result{}, fmt.Errorf("decrypting %q: %w", filename, err)
	}

	p.log.Debug().
		Str("output", outPath).
		Int64("blocks", blocks).
		Uint64("truncate", header.Size).
		Msg("decrypted body")

	if err := outFile.Truncate(int64(header.Size)); err != nil { //nolint:gosec // size comes from the header
		return Result{}, fmt.Errorf("%w: truncating %q: %w", ErrIO, outPath, err)
	}

	return p.finish(filename, outPath, outFile, header, info)
}

// setupCipher derives the key for header and runs the key schedule.
// The key is zeroed once the cipher holds its expanded state.
func (p *Processor) setupCipher(header Header) cipher.Block {
	key := DeriveKey(p.opts.Passphrase, header.KeySize)
	defer zeroBytes(key)

	return newBlock(header.Algorithm, key)
}

// finish closes the output and reports the result.
func (p *Processor) finish(input, output string, outFile *os.File, header Header, info os.FileInfo) (Result, error) {
	if err := outFile.Close(); err != nil {
		return Result{}, fmt.Errorf("%w: closing %q: %w", ErrIO, output, err)
	}

	size, err := fileutil.FinalizeOutput(output, p.opts.PreserveTimestamps, info.ModTime())
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return Result{
		Input:      input,
		Output:     output,
		OutputSize: size,
		Algorithm:  header.Algorithm,
		KeySize:    header.KeySize,
	}, nil
}

// statRegular stats an opened input and rejects anything but a regular file.
func statRegular(file *os.File, filename string) (os.FileInfo, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w of %q: %w", ErrStat, filename, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w %q: not a regular file", ErrInputOpen, filename)
	}

	return info, nil
}

func writeHeader(writer io.Writer, header Header) error {
	buf := header.Encode()

	if _, err := writer.Write(buf[:]); err != nil {
		return fmt.Errorf("%w: writing header: %w", ErrIO, err)
	}

	return nil
}

func readHeader(reader io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)

	n, err := io.ReadFull(reader, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return DecodeHeader(buf[:n])
	}

	if err != nil {
		return Header{}, fmt.Errorf("%w: reading header: %w", ErrIO, err)
	}

	return DecodeHeader(buf)
}

// closeOutput closes file unless it was already closed by finish.
func closeOutput(file *os.File, errp *error) {
	if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) && *errp == nil {
		*errp = fmt.Errorf("%w: closing %q: %w", ErrIO, file.Name(), err)
	}
}
