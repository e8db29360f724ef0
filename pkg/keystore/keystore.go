// Package keystore stores secp256k1 signing keys in a single encrypted JSON
// file using hybrid post-quantum sealing. The store holds one ML-KEM-1024
// keypair: the encapsulation key sits in the header in plaintext and every
// account key is sealed to it with AES-256-GCM, so adding accounts never
// needs the passphrase. The decapsulation key is itself sealed under an
// Argon2id-derived key, so opening any account does. Addresses stay in
// plaintext so accounts can be listed without unlocking anything. Saves are
// atomic (write to a temp file, then rename).
package keystore

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
)

const (
	formatVersion = "1"
	algorithm     = "mlkem1024-aes256gcm"
)

var (
	// ErrNotFound reports a missing keystore file.
	ErrNotFound = errors.New("keystore: file not found")
	// ErrNoAccount reports an address absent from the keystore.
	ErrNoAccount = errors.New("keystore: no such account")
	// ErrWrongPassphrase reports a failed unseal of the decapsulation key,
	// which means the passphrase was wrong or the header was tampered with.
	ErrWrongPassphrase = errors.New("keystore: wrong passphrase")
)

// Account is one stored key as it appears in the file. EncryptedKey holds the
// ML-KEM ciphertext followed by the sealed private key; everything else is
// plaintext metadata.
type Account struct {
	Address      string    `json:"address"`
	EncryptedKey string    `json:"encrypted_key"`
	Nonce        string    `json:"nonce"`
	CreatedAt    time.Time `json:"created_at"`
	Label        string    `json:"label,omitempty"`
}

type storeFile struct {
	Version     string    `json:"version"`
	Algorithm   string    `json:"algorithm"`
	KDF         KDFParams `json:"kdf"`
	KEMPublic   string    `json:"mlkem_public_key"`
	KEMKeyEnc   string    `json:"mlkem_private_key_enc"`
	KEMKeyNonce string    `json:"mlkem_private_key_nonce"`
	Accounts    []Account `json:"accounts"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store is an open keystore file.
type Store struct {
	path string
	file storeFile
}

// Exists reports whether a keystore file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Create initializes a new, empty keystore at path: fresh KDF parameters, a
// fresh ML-KEM-1024 keypair, and the decapsulation key sealed under the
// passphrase. It fails if a file already exists there.
func Create(path string, passphrase []byte) (*Store, error) {
	if Exists(path) {
		return nil, fmt.Errorf("keystore: %s already exists", path)
	}
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	params := defaultKDFParams()
	params.Salt = base64.StdEncoding.EncodeToString(salt)

	aesKey := deriveKey(passphrase, salt, params)
	defer SecureZero(aesKey)

	encapsKey, decapsKey, err := generateKEMKeyPair()
	if err != nil {
		return nil, err
	}
	defer SecureZero(decapsKey)

	sealedDK, dkNonce, err := seal(decapsKey, aesKey)
	if err != nil {
		return nil, fmt.Errorf("seal decapsulation key: %w", err)
	}

	s := &Store{
		path: path,
		file: storeFile{
			Version:     formatVersion,
			Algorithm:   algorithm,
			KDF:         params,
			KEMPublic:   base64.StdEncoding.EncodeToString(encapsKey),
			KEMKeyEnc:   base64.StdEncoding.EncodeToString(sealedDK),
			KEMKeyNonce: base64.StdEncoding.EncodeToString(dkNonce),
			Accounts:    []Account{},
		},
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open loads an existing keystore file.
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read keystore: %w", err)
	}
	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse keystore: %w", err)
	}
	if file.Algorithm != algorithm {
		return nil, fmt.Errorf("keystore: unsupported algorithm %q", file.Algorithm)
	}
	if err := file.KDF.validate(); err != nil {
		return nil, fmt.Errorf("keystore: %w", err)
	}
	if file.KEMPublic == "" || file.KEMKeyEnc == "" || file.KEMKeyNonce == "" {
		return nil, errors.New("keystore: ML-KEM key material missing")
	}
	return &Store{path: path, file: file}, nil
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Accounts returns the stored accounts in file order. The slice is a copy.
func (s *Store) Accounts() []Account {
	out := make([]Account, len(s.file.Accounts))
	copy(out, s.file.Accounts)
	return out
}

// Addresses returns the 0x-prefixed addresses in file order.
func (s *Store) Addresses() []string {
	out := make([]string, len(s.file.Accounts))
	for i, a := range s.file.Accounts {
		out[i] = a.Address
	}
	return out
}

// NewAccount generates a fresh secp256k1 key, seals it to the store's
// encapsulation key, appends it and saves. No passphrase is needed; only
// Unlock can recover the key again. Returns the new 0x-prefixed address.
func (s *Store) NewAccount(label string) (string, error) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	addr := crypto.PubkeyToAddress(priv.PublicKey).Hex()

	keyBytes := crypto.FromECDSA(priv)
	defer SecureZero(keyBytes)

	encapsKey, err := base64.StdEncoding.DecodeString(s.file.KEMPublic)
	if err != nil {
		return "", fmt.Errorf("decode encapsulation key: %w", err)
	}

	sealed, nonce, err := hybridSeal(keyBytes, encapsKey)
	if err != nil {
		return "", fmt.Errorf("seal key: %w", err)
	}

	s.file.Accounts = append(s.file.Accounts, Account{
		Address:      addr,
		EncryptedKey: base64.StdEncoding.EncodeToString(sealed),
		Nonce:        base64.StdEncoding.EncodeToString(nonce),
		CreatedAt:    time.Now().UTC(),
		Label:        label,
	})
	if err := s.save(); err != nil {
		return "", err
	}
	return addr, nil
}

// Unlock decrypts the private key for the given address: the passphrase
// unseals the store's decapsulation key, which then opens the account's
// hybrid-sealed key. The caller owns the returned key and should discard it
// as soon as signing is done.
func (s *Store) Unlock(address string, passphrase []byte) (*ecdsa.PrivateKey, error) {
	acct, ok := s.lookup(address)
	if !ok {
		return nil, ErrNoAccount
	}

	decapsKey, err := s.decapsulationKey(passphrase)
	if err != nil {
		return nil, err
	}
	defer SecureZero(decapsKey)

	sealed, err := base64.StdEncoding.DecodeString(acct.EncryptedKey)
	if err != nil {
		return nil, fmt.Errorf("decode sealed key: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(acct.Nonce)
	if err != nil {
		return nil, fmt.Errorf("decode nonce: %w", err)
	}

	keyBytes, err := hybridOpen(sealed, decapsKey, nonce)
	if err != nil {
		return nil, fmt.Errorf("unseal key for %s: %w", acct.Address, err)
	}
	defer SecureZero(keyBytes)

	priv, err := crypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse key: %w", err)
	}
	return priv, nil
}

// VerifyPassphrase checks the passphrase against the store header without
// touching any account key.
func (s *Store) VerifyPassphrase(passphrase []byte) error {
	decapsKey, err := s.decapsulationKey(passphrase)
	if err != nil {
		return err
	}
	SecureZero(decapsKey)
	return nil
}

// Delete removes the account with the given address and saves.
func (s *Store) Delete(address string) error {
	for i, a := range s.file.Accounts {
		if strings.EqualFold(a.Address, address) {
			s.file.Accounts = append(s.file.Accounts[:i], s.file.Accounts[i+1:]...)
			return s.save()
		}
	}
	return ErrNoAccount
}

func (s *Store) lookup(address string) (Account, bool) {
	for _, a := range s.file.Accounts {
		if strings.EqualFold(a.Address, address) {
			return a, true
		}
	}
	return Account{}, false
}

// decapsulationKey derives the passphrase key and unseals the store's
// ML-KEM decapsulation key. The unsealed key is verified against the stored
// encapsulation key before anything gets decrypted with it.
func (s *Store) decapsulationKey(passphrase []byte) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(s.file.KDF.Salt)
	if err != nil {
		return nil, fmt.Errorf("decode salt: %w", err)
	}
	aesKey := deriveKey(passphrase, salt, s.file.KDF)
	defer SecureZero(aesKey)

	sealedDK, err := base64.StdEncoding.DecodeString(s.file.KEMKeyEnc)
	if err != nil {
		return nil, fmt.Errorf("decode sealed decapsulation key: %w", err)
	}
	dkNonce, err := base64.StdEncoding.DecodeString(s.file.KEMKeyNonce)
	if err != nil {
		return nil, fmt.Errorf("decode decapsulation key nonce: %w", err)
	}

	decapsKey, err := open(sealedDK, aesKey, dkNonce)
	if err != nil {
		return nil, ErrWrongPassphrase
	}

	encapsKey, err := base64.StdEncoding.DecodeString(s.file.KEMPublic)
	if err != nil {
		SecureZero(decapsKey)
		return nil, fmt.Errorf("decode encapsulation key: %w", err)
	}
	if !kemKeyMatches(decapsKey, encapsKey) {
		SecureZero(decapsKey)
		return nil, ErrWrongPassphrase
	}
	return decapsKey, nil
}

func (s *Store) save() error {
	s.file.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal keystore: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create keystore dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write keystore: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename keystore: %w", err)
	}
	return nil
}
