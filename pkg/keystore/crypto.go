package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Sizes shared by the sealed-key format.
const (
	// AES-256 key size.
	KeySize = 32
	// GCM standard nonce size.
	NonceSize = 12
	// Argon2id salt size.
	SaltSize = 32
)

// KDFParams holds the Argon2id parameters stored alongside the keystore so a
// file written with older parameters stays readable.
type KDFParams struct {
	Function    string `json:"function"`
	Memory      uint32 `json:"memory"`
	Iterations  uint32 `json:"iterations"`
	Parallelism uint8  `json:"parallelism"`
	Salt        string `json:"salt"`
	KeyLen      uint32 `json:"key_len"`
}

// defaultKDFParams returns the Argon2id parameters for new keystores.
func defaultKDFParams() KDFParams {
	return KDFParams{
		Function:    "argon2id",
		Memory:      65536,
		Iterations:  3,
		Parallelism: 4,
		KeyLen:      KeySize,
	}
}

// validate rejects file-supplied parameters that argon2 would panic on. Zero
// values only appear in hand-edited or corrupted files.
func (p KDFParams) validate() error {
	if p.Function != "argon2id" {
		return fmt.Errorf("unsupported kdf function %q", p.Function)
	}
	if p.Memory == 0 || p.Iterations == 0 || p.Parallelism == 0 || p.KeyLen == 0 {
		return errors.New("kdf parameters must all be at least 1")
	}
	if p.Salt == "" {
		return errors.New("missing kdf salt")
	}
	return nil
}

// deriveKey stretches a passphrase into an AES key using Argon2id.
func deriveKey(passphrase []byte, salt []byte, params KDFParams) []byte {
	return argon2.IDKey(passphrase, salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLen)
}

// seal encrypts plaintext with AES-256-GCM under key, returning the ciphertext
// and the fresh random nonce.
func seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}
	nonce = make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, err
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// open decrypts an AES-256-GCM ciphertext. Authentication failure (wrong key,
// tampered data) comes back as gcm's open error. The nonce length is checked
// here because gcm panics on it, and the nonce comes from the file.
func open(ciphertext, key, nonce []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length: %d", len(nonce))
	}
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// SecureZero zeros memory holding key material.
func SecureZero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// SecureCompare performs constant-time comparison.
func SecureCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var result byte
	for i := 0; i < len(a); i++ {
		result |= a[i] ^ b[i]
	}
	return result == 0
}
