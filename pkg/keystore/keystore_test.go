package keystore_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"minter/pkg/keystore"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "keystore.json")
}

func TestCreateAndOpen(t *testing.T) {
	path := tempStorePath(t)

	s, err := keystore.Create(path, []byte("hunter2"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := len(s.Accounts()); got != 0 {
		t.Errorf("new store has %d accounts, want 0", got)
	}
	if !keystore.Exists(path) {
		t.Error("Exists = false after Create")
	}

	if _, err := keystore.Create(path, []byte("hunter2")); err == nil {
		t.Error("Create succeeded over an existing file")
	}

	reopened, err := keystore.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := len(reopened.Accounts()); got != 0 {
		t.Errorf("reopened store has %d accounts, want 0", got)
	}
}

func TestStoreHeader(t *testing.T) {
	path := tempStorePath(t)
	if _, err := keystore.Create(path, []byte("pw")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var header struct {
		Algorithm   string `json:"algorithm"`
		KEMPublic   string `json:"mlkem_public_key"`
		KEMKeyEnc   string `json:"mlkem_private_key_enc"`
		KEMKeyNonce string `json:"mlkem_private_key_nonce"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		t.Fatal(err)
	}

	if header.Algorithm != "mlkem1024-aes256gcm" {
		t.Errorf("algorithm = %q, want mlkem1024-aes256gcm", header.Algorithm)
	}
	if header.KEMPublic == "" || header.KEMKeyEnc == "" || header.KEMKeyNonce == "" {
		t.Error("ML-KEM key material missing from the store header")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := keystore.Open(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, keystore.ErrNotFound) {
		t.Errorf("Open missing file: err = %v, want ErrNotFound", err)
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	path := tempStorePath(t)
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := keystore.Open(path); err == nil {
		t.Error("Open accepted a non-JSON file")
	}
}

// mutateStoreFile rewrites one top-level or kdf field of a store file on disk.
func mutateStoreFile(t *testing.T, path string, mutate func(m map[string]any)) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	mutate(m)
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestOpenRejectsTamperedKDFParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{"zero iterations", func(m map[string]any) { m["kdf"].(map[string]any)["iterations"] = 0 }},
		{"zero parallelism", func(m map[string]any) { m["kdf"].(map[string]any)["parallelism"] = 0 }},
		{"zero memory", func(m map[string]any) { m["kdf"].(map[string]any)["memory"] = 0 }},
		{"unknown function", func(m map[string]any) { m["kdf"].(map[string]any)["function"] = "scrypt" }},
		{"foreign algorithm", func(m map[string]any) { m["algorithm"] = "argon2id-aes256gcm" }},
		{"missing kem public key", func(m map[string]any) { m["mlkem_public_key"] = "" }},
		{"missing sealed kem key", func(m map[string]any) { m["mlkem_private_key_enc"] = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tempStorePath(t)
			if _, err := keystore.Create(path, []byte("pw")); err != nil {
				t.Fatalf("Create: %v", err)
			}
			mutateStoreFile(t, path, tt.mutate)

			if _, err := keystore.Open(path); err == nil {
				t.Error("Open accepted a tampered store file")
			}
		})
	}
}

func TestUnlockTamperedNonce(t *testing.T) {
	path := tempStorePath(t)
	s, err := keystore.Create(path, []byte("pw"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	addr, err := s.NewAccount("")
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}

	// A truncated header nonce must surface as an error, not a panic.
	mutateStoreFile(t, path, func(m map[string]any) {
		m["mlkem_private_key_nonce"] = "AAAA"
	})
	tampered, err := keystore.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := tampered.Unlock(addr, []byte("pw")); err == nil {
		t.Error("Unlock succeeded with a tampered header nonce")
	}
}

func TestNewAccountAndUnlock(t *testing.T) {
	path := tempStorePath(t)
	s, err := keystore.Create(path, []byte("hunter2"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	addr, err := s.NewAccount("primary")
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}
	if !addressPattern.MatchString(addr) {
		t.Errorf("address %q does not match 0x + 40 hex chars", addr)
	}

	accounts := s.Accounts()
	if len(accounts) != 1 {
		t.Fatalf("got %d accounts, want 1", len(accounts))
	}
	if accounts[0].Address != addr {
		t.Errorf("stored address = %q, want %q", accounts[0].Address, addr)
	}
	if accounts[0].Label != "primary" {
		t.Errorf("label = %q, want %q", accounts[0].Label, "primary")
	}
	if accounts[0].CreatedAt.IsZero() {
		t.Error("created_at not set")
	}

	priv, err := s.Unlock(addr, []byte("hunter2"))
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if got := crypto.PubkeyToAddress(priv.PublicKey).Hex(); got != addr {
		t.Errorf("unlocked key address = %s, want %s", got, addr)
	}

	// Address lookup is case-insensitive.
	if _, err := s.Unlock(strings.ToLower(addr), []byte("hunter2")); err != nil {
		t.Errorf("Unlock with lowercased address: %v", err)
	}
}

func TestUnlockWrongPassphrase(t *testing.T) {
	s, err := keystore.Create(tempStorePath(t), []byte("correct"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	addr, err := s.NewAccount("")
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}

	_, err = s.Unlock(addr, []byte("incorrect"))
	if !errors.Is(err, keystore.ErrWrongPassphrase) {
		t.Errorf("Unlock wrong passphrase: err = %v, want ErrWrongPassphrase", err)
	}
}

func TestUnlockUnknownAddress(t *testing.T) {
	s, err := keystore.Create(tempStorePath(t), []byte("pw"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = s.Unlock("0x0000000000000000000000000000000000000001", []byte("pw"))
	if !errors.Is(err, keystore.ErrNoAccount) {
		t.Errorf("Unlock unknown address: err = %v, want ErrNoAccount", err)
	}
}

func TestVerifyPassphrase(t *testing.T) {
	s, err := keystore.Create(tempStorePath(t), []byte("correct"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.VerifyPassphrase([]byte("correct")); err != nil {
		t.Errorf("VerifyPassphrase with the right passphrase: %v", err)
	}
	if err := s.VerifyPassphrase([]byte("incorrect")); !errors.Is(err, keystore.ErrWrongPassphrase) {
		t.Errorf("VerifyPassphrase wrong passphrase: err = %v, want ErrWrongPassphrase", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := tempStorePath(t)
	s, err := keystore.Create(path, []byte("pw"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	addr, err := s.NewAccount("kept")
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}

	reopened, err := keystore.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	priv, err := reopened.Unlock(addr, []byte("pw"))
	if err != nil {
		t.Fatalf("Unlock after reopen: %v", err)
	}
	if got := crypto.PubkeyToAddress(priv.PublicKey).Hex(); got != addr {
		t.Errorf("address after reopen = %s, want %s", got, addr)
	}
}

func TestDelete(t *testing.T) {
	s, err := keystore.Create(tempStorePath(t), []byte("pw"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	addr, err := s.NewAccount("")
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}

	if err := s.Delete(addr); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := len(s.Accounts()); got != 0 {
		t.Errorf("%d accounts after delete, want 0", got)
	}
	if err := s.Delete(addr); !errors.Is(err, keystore.ErrNoAccount) {
		t.Errorf("second Delete: err = %v, want ErrNoAccount", err)
	}
}

func TestFilePermissions(t *testing.T) {
	path := tempStorePath(t)
	if _, err := keystore.Create(path, []byte("pw")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("keystore file mode = %o, want 600", perm)
	}
}
