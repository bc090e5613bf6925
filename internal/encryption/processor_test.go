package encryption_test

import (
	"bytes"
	"crypto/aes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/encrypter/internal/encryption"
)

func newProcessor(t *testing.T, alg encryption.Algorithm, bits encryption.KeySize, passphrase string) *encryption.Processor {
	t.Helper()

	proc, err := encryption.NewProcessor(encryption.Options{
		Algorithm:  alg,
		KeySize:    bits,
		Passphrase: []byte(passphrase),
	})
	require.NoError(t, err)

	return proc
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func pattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*7 + 3)
	}

	return data
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, alg := range []encryption.Algorithm{encryption.AES, encryption.Blowfish} {
		for _, bits := range []encryption.KeySize{encryption.KeySize128, encryption.KeySize192, encryption.KeySize256} {
			size := alg.BlockSize()

			for _, n := range []int{0, 1, size - 1, size, size + 1, 4096 + 3} {
				t.Run(fmt.Sprintf("%v/%d/%d", alg, bits, n), func(t *testing.T) {
					t.Parallel()

					dir := t.TempDir()
					plain := pattern(n)
					input := writeFile(t, dir, "data.bin", plain)

					proc := newProcessor(t, alg, bits, "round trip")

					encrypted, err := proc.Encrypt(input)
					require.NoError(t, err)
					assert.Equal(t, input+encryption.Suffix, encrypted.Output)
					assert.Equal(t, alg, encrypted.Algorithm)
					assert.Equal(t, bits, encrypted.KeySize)

					wantBody := (n + size - 1) / size * size
					assert.EqualValues(t, encryption.HeaderSize+wantBody, encrypted.OutputSize)

					require.NoError(t, os.Remove(input))

					// Decryption ignores the processor parameters and uses the header.
					other := newProcessor(t, encryption.Blowfish, encryption.KeySize256, "round trip")

					decrypted, err := other.Decrypt(encrypted.Output)
					require.NoError(t, err)
					assert.Equal(t, input, decrypted.Output)
					assert.Equal(t, alg, decrypted.Algorithm)
					assert.Equal(t, bits, decrypted.KeySize)
					assert.EqualValues(t, n, decrypted.OutputSize)

					got, err := os.ReadFile(input)
					require.NoError(t, err)
					assert.Equal(t, plain, got)
				})
			}
		}
	}
}

func TestEncryptScenario(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "digits.txt", []byte("0123456789"))

	proc := newProcessor(t, encryption.AES, encryption.KeySize128, "secret")

	result, err := proc.Encrypt(input)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "digits.txt.enc"), result.Output)

	container, err := os.ReadFile(result.Output)
	require.NoError(t, err)
	require.Len(t, container, 25)

	assert.EqualValues(t, 10, binary.LittleEndian.Uint64(container[:8]))
	assert.Equal(t, byte(0x11), container[8])

	header, err := encryption.DecodeHeader(container)
	require.NoError(t, err)
	assert.Equal(t, encryption.Header{Size: 10, Algorithm: encryption.AES, KeySize: encryption.KeySize128}, header)

	// The decrypted block still carries the padding that truncation removes.
	block, err := aes.NewCipher(encryption.DeriveKey([]byte("secret"), encryption.KeySize128))
	require.NoError(t, err)

	padded := make([]byte, aes.BlockSize)
	block.Decrypt(padded, container[encryption.HeaderSize:])
	assert.Equal(t, append([]byte("0123456789"), make([]byte, 6)...), padded)

	require.NoError(t, os.Remove(input))

	restored, err := proc.Decrypt(result.Output)
	require.NoError(t, err)

	got, err := os.ReadFile(restored.Output)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(got))
}

func TestEncryptOverwritesExistingOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "a.txt", []byte("abc"))
	writeFile(t, dir, "a.txt.enc", bytes.Repeat([]byte{1}, 100))

	result, err := newProcessor(t, encryption.Blowfish, encryption.KeySize128, "p").Encrypt(input)
	require.NoError(t, err)
	assert.EqualValues(t, encryption.HeaderSize+8, result.OutputSize)
}

func TestDecryptWrongPassphrase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "a.txt", []byte("attack at dawn"))

	result, err := newProcessor(t, encryption.AES, encryption.KeySize256, "right").Encrypt(input)
	require.NoError(t, err)

	restored, err := newProcessor(t, encryption.AES, encryption.KeySize256, "wrong").Decrypt(result.Output)
	require.NoError(t, err)

	got, err := os.ReadFile(restored.Output)
	require.NoError(t, err)
	assert.Len(t, got, len("attack at dawn"))
	assert.NotEqual(t, "attack at dawn", string(got))
}

func TestNewProcessorRequiresPassphrase(t *testing.T) {
	t.Parallel()

	_, err := encryption.NewProcessor(encryption.Options{Algorithm: encryption.AES, KeySize: encryption.KeySize128})
	require.ErrorIs(t, err, encryption.ErrMissingPassphrase)
}

func TestEncryptValidatesBeforeOpening(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		alg  encryption.Algorithm
		bits encryption.KeySize
		want error
	}{
		{"algorithm", encryption.Algorithm(0), encryption.KeySize128, encryption.ErrUnsupportedAlgorithm},
		{"key size", encryption.AES, encryption.KeySize(512), encryption.ErrUnsupportedKeySize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			input := writeFile(t, dir, "a.txt", []byte("data"))

			_, err := newProcessor(t, tc.alg, tc.bits, "p").Encrypt(input)
			require.ErrorIs(t, err, tc.want)

			assert.NoFileExists(t, input+encryption.Suffix)
		})
	}
}

func TestEncryptErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	proc := newProcessor(t, encryption.AES, encryption.KeySize128, "p")

	_, err := proc.Encrypt(filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, encryption.ErrInputOpen)
	assert.NoFileExists(t, filepath.Join(dir, "missing.txt.enc"))

	input := writeFile(t, dir, "blocked.txt", []byte("data"))
	require.NoError(t, os.Mkdir(input+encryption.Suffix, 0o700))

	_, err = proc.Encrypt(input)
	require.ErrorIs(t, err, encryption.ErrOutputCreate)
}

func TestDecryptErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	proc := newProcessor(t, encryption.AES, encryption.KeySize128, "p")

	_, err := proc.Decrypt(filepath.Join(dir, "missing.txt.enc"))
	require.ErrorIs(t, err, encryption.ErrInputOpen)

	plain := writeFile(t, dir, "plain.txt", []byte("0123456789abcdef0123456789"))
	_, err = proc.Decrypt(plain)
	require.ErrorIs(t, err, encryption.ErrInvalidExtension)

	infix := writeFile(t, dir, "plain.enc.txt", []byte("0123456789abcdef0123456789"))
	_, err = proc.Decrypt(infix)
	require.ErrorIs(t, err, encryption.ErrInvalidExtension)

	short := writeFile(t, dir, "short.enc", []byte{1, 2, 3, 4, 5})
	_, err = proc.Decrypt(short)
	require.ErrorIs(t, err, encryption.ErrHeader)
	require.ErrorIs(t, err, encryption.ErrTruncatedHeader)
	assert.NoFileExists(t, filepath.Join(dir, "short"))

	noKey := writeFile(t, dir, "nokey.enc", []byte{1, 0, 0, 0, 0, 0, 0, 0, 0x10})
	_, err = proc.Decrypt(noKey)
	require.ErrorIs(t, err, encryption.ErrHeader)
	require.ErrorIs(t, err, encryption.ErrMissingKeySizeFlag)

	noCipher := writeFile(t, dir, "nocipher.enc", []byte{1, 0, 0, 0, 0, 0, 0, 0, 0x04})
	_, err = proc.Decrypt(noCipher)
	require.ErrorIs(t, err, encryption.ErrHeader)
	require.ErrorIs(t, err, encryption.ErrMissingCipherFlag)

	misaligned := writeFile(t, dir, "misaligned.enc",
		append([]byte{3, 0, 0, 0, 0, 0, 0, 0, 0x11}, make([]byte, 10)...))
	_, err = proc.Decrypt(misaligned)
	require.ErrorIs(t, err, encryption.ErrIO)
	require.ErrorIs(t, err, encryption.ErrInvalidBlockSize)
}

func TestNonRegularInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	proc := newProcessor(t, encryption.AES, encryption.KeySize128, "p")

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o700))

	_, err := proc.Encrypt(sub)
	require.ErrorIs(t, err, encryption.ErrInputOpen)
	assert.NoFileExists(t, sub+encryption.Suffix)
	assert.NoDirExists(t, sub+encryption.Suffix)

	container := filepath.Join(dir, "d"+encryption.Suffix)
	require.NoError(t, os.Mkdir(container, 0o700))

	_, err = proc.Decrypt(container)
	require.ErrorIs(t, err, encryption.ErrInputOpen)
	assert.NoFileExists(t, filepath.Join(dir, "d"))
}

func TestCloseClearsPassphrase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "a.txt", []byte("data"))

	passphrase := []byte("secret")

	proc, err := encryption.NewProcessor(encryption.Options{
		Algorithm:  encryption.AES,
		KeySize:    encryption.KeySize128,
		Passphrase: passphrase,
	})
	require.NoError(t, err)

	_, err = proc.Encrypt(input)
	require.NoError(t, err)

	proc.Close()
	assert.Equal(t, make([]byte, len("secret")), passphrase)

	_, err = proc.Encrypt(input)
	require.ErrorIs(t, err, encryption.ErrMissingPassphrase)

	_, err = proc.Decrypt(input + encryption.Suffix)
	require.ErrorIs(t, err, encryption.ErrMissingPassphrase)
}

func TestPreserveTimestamps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "old.txt", []byte("old"))

	modTime := time.Date(2001, time.February, 3, 4, 5, 6, 0, time.UTC)
	require.NoError(t, os.Chtimes(input, modTime, modTime))

	proc, err := encryption.NewProcessor(encryption.Options{
		Algorithm:          encryption.Blowfish,
		KeySize:            encryption.KeySize192,
		Passphrase:         []byte("p"),
		PreserveTimestamps: true,
	})
	require.NoError(t, err)

	result, err := proc.Encrypt(input)
	require.NoError(t, err)

	info, err := os.Stat(result.Output)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modTime), "got %v", info.ModTime())
}
