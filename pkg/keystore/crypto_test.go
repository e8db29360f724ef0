package keystore

import (
	"bytes"
	"crypto/mlkem"
	"testing"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	params := defaultKDFParams()
	salt := bytes.Repeat([]byte{0x42}, SaltSize)

	k1 := deriveKey([]byte("passphrase"), salt, params)
	k2 := deriveKey([]byte("passphrase"), salt, params)

	if len(k1) != KeySize {
		t.Fatalf("derived key length = %d, want %d", len(k1), KeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Error("same passphrase and salt derived different keys")
	}

	k3 := deriveKey([]byte("passphrase2"), salt, params)
	if bytes.Equal(k1, k3) {
		t.Error("different passphrases derived the same key")
	}

	otherSalt := bytes.Repeat([]byte{0x43}, SaltSize)
	k4 := deriveKey([]byte("passphrase"), otherSalt, params)
	if bytes.Equal(k1, k4) {
		t.Error("different salts derived the same key")
	}
}

func TestSealOpenRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, KeySize)
	plaintext := []byte("thirty-two bytes of private key!")

	sealed, nonce, err := seal(plaintext, key)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if len(nonce) != NonceSize {
		t.Fatalf("nonce length = %d, want %d", len(nonce), NonceSize)
	}
	if bytes.Contains(sealed, plaintext) {
		t.Error("ciphertext contains the plaintext")
	}

	opened, err := open(sealed, key, nonce)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("opened = %x, want %x", opened, plaintext)
	}
}

func TestOpenRejectsTampering(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, KeySize)
	plaintext := []byte("secret")

	sealed, nonce, err := seal(plaintext, key)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(sealed, key, nonce []byte) ([]byte, []byte, []byte)
	}{
		{"flipped ciphertext bit", func(s, k, n []byte) ([]byte, []byte, []byte) {
			s2 := append([]byte(nil), s...)
			s2[0] ^= 0x01
			return s2, k, n
		}},
		{"wrong key", func(s, k, n []byte) ([]byte, []byte, []byte) {
			return s, bytes.Repeat([]byte{0x02}, KeySize), n
		}},
		{"wrong nonce", func(s, k, n []byte) ([]byte, []byte, []byte) {
			return s, k, bytes.Repeat([]byte{0x03}, NonceSize)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, k, n := tt.mutate(sealed, key, nonce)
			if _, err := open(s, k, n); err == nil {
				t.Error("open succeeded on tampered input")
			}
		})
	}
}

func TestKDFParamsValidate(t *testing.T) {
	valid := defaultKDFParams()
	valid.Salt = "c2FsdA=="
	if err := valid.validate(); err != nil {
		t.Fatalf("default params rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*KDFParams)
	}{
		{"zero memory", func(p *KDFParams) { p.Memory = 0 }},
		{"zero iterations", func(p *KDFParams) { p.Iterations = 0 }},
		{"zero parallelism", func(p *KDFParams) { p.Parallelism = 0 }},
		{"zero key length", func(p *KDFParams) { p.KeyLen = 0 }},
		{"unknown function", func(p *KDFParams) { p.Function = "scrypt" }},
		{"missing salt", func(p *KDFParams) { p.Salt = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := p.validate(); err == nil {
				t.Error("validate accepted bad parameters")
			}
		})
	}
}

func TestHybridSealOpenRoundTrip(t *testing.T) {
	encapsKey, decapsKey, err := generateKEMKeyPair()
	if err != nil {
		t.Fatalf("generateKEMKeyPair: %v", err)
	}
	plaintext := []byte("thirty-two bytes of private key!")

	combined, nonce, err := hybridSeal(plaintext, encapsKey)
	if err != nil {
		t.Fatalf("hybridSeal: %v", err)
	}
	// KEM ciphertext, then the GCM-sealed payload with its 16-byte tag.
	if want := mlkem.CiphertextSize1024 + len(plaintext) + 16; len(combined) != want {
		t.Errorf("combined length = %d, want %d", len(combined), want)
	}

	opened, err := hybridOpen(combined, decapsKey, nonce)
	if err != nil {
		t.Fatalf("hybridOpen: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("opened = %x, want %x", opened, plaintext)
	}
}

func TestHybridOpenRejectsCorruption(t *testing.T) {
	encapsKey, decapsKey, err := generateKEMKeyPair()
	if err != nil {
		t.Fatalf("generateKEMKeyPair: %v", err)
	}
	combined, nonce, err := hybridSeal([]byte("secret"), encapsKey)
	if err != nil {
		t.Fatalf("hybridSeal: %v", err)
	}

	flip := func(b []byte, i int) []byte {
		out := append([]byte(nil), b...)
		out[i] ^= 0x01
		return out
	}

	tests := []struct {
		name     string
		combined []byte
		decaps   []byte
		nonce    []byte
	}{
		{"truncated below KEM size", combined[:100], decapsKey, nonce},
		{"flipped KEM ciphertext byte", flip(combined, 0), decapsKey, nonce},
		{"flipped sealed payload byte", flip(combined, len(combined)-1), decapsKey, nonce},
		{"wrong nonce", combined, decapsKey, bytes.Repeat([]byte{0x07}, NonceSize)},
		{"malformed decapsulation key", combined, []byte{0x01, 0x02}, nonce},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := hybridOpen(tt.combined, tt.decaps, tt.nonce); err == nil {
				t.Error("hybridOpen succeeded on corrupted input")
			}
		})
	}
}

func TestHybridOpenWrongKeyPair(t *testing.T) {
	encapsKey, _, err := generateKEMKeyPair()
	if err != nil {
		t.Fatalf("generateKEMKeyPair: %v", err)
	}
	_, otherDecaps, err := generateKEMKeyPair()
	if err != nil {
		t.Fatalf("generateKEMKeyPair: %v", err)
	}

	combined, nonce, err := hybridSeal([]byte("secret"), encapsKey)
	if err != nil {
		t.Fatalf("hybridSeal: %v", err)
	}
	// Decapsulation with the wrong key yields a different shared secret, so
	// the GCM open fails.
	if _, err := hybridOpen(combined, otherDecaps, nonce); err == nil {
		t.Error("hybridOpen succeeded with an unrelated decapsulation key")
	}
}

func TestKEMKeyMatches(t *testing.T) {
	encapsKey, decapsKey, err := generateKEMKeyPair()
	if err != nil {
		t.Fatalf("generateKEMKeyPair: %v", err)
	}
	if !kemKeyMatches(decapsKey, encapsKey) {
		t.Error("matching keypair reported as mismatch")
	}

	otherEncaps, _, err := generateKEMKeyPair()
	if err != nil {
		t.Fatalf("generateKEMKeyPair: %v", err)
	}
	if kemKeyMatches(decapsKey, otherEncaps) {
		t.Error("unrelated keys reported as matching")
	}
	if kemKeyMatches([]byte("junk"), encapsKey) {
		t.Error("malformed decapsulation key reported as matching")
	}
}

func FuzzHybridSeal(f *testing.F) {
	encapsKey, decapsKey, err := generateKEMKeyPair()
	if err != nil {
		f.Fatalf("generateKEMKeyPair: %v", err)
	}

	seeds := [][]byte{
		{},
		[]byte("hello"),
		[]byte("The quick brown fox jumps over"),
		bytes.Repeat([]byte{0x41}, 1000),
		{0x00, 0xFF, 0xAA, 0x55},
		bytes.Repeat([]byte{0x00}, 100),
		bytes.Repeat([]byte{0xFF}, 100),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 10*1024*1024 {
			t.Skip("input too large")
		}

		combined, nonce, err := hybridSeal(data, encapsKey)
		if err != nil {
			t.Fatalf("hybridSeal failed on valid input: %v", err)
		}
		if want := mlkem.CiphertextSize1024 + len(data) + 16; len(combined) != want {
			t.Errorf("combined length = %d, want %d", len(combined), want)
		}

		opened, err := hybridOpen(combined, decapsKey, nonce)
		if err != nil {
			t.Fatalf("hybridOpen: %v", err)
		}
		if !bytes.Equal(opened, data) {
			t.Errorf("round trip mismatch: len(in)=%d, len(out)=%d", len(data), len(opened))
		}
	})
}

func FuzzHybridOpen(f *testing.F) {
	encapsKey, decapsKey, err := generateKEMKeyPair()
	if err != nil {
		f.Fatalf("generateKEMKeyPair: %v", err)
	}
	combined, nonce, err := hybridSeal([]byte("seed payload for corruption"), encapsKey)
	if err != nil {
		f.Fatalf("hybridSeal: %v", err)
	}

	f.Add(combined, nonce)
	f.Add(append(append([]byte(nil), combined...), 0xFF), nonce)
	f.Add(combined[:len(combined)/2], nonce)
	f.Add([]byte{}, nonce)
	f.Add(bytes.Repeat([]byte{0x00}, len(combined)), nonce)
	f.Add(combined, []byte{})

	f.Fuzz(func(t *testing.T, payload, n []byte) {
		if len(payload) > 10*1024*1024 {
			t.Skip("input too large")
		}
		// Corrupted input must fail cleanly, never panic.
		_, _ = hybridOpen(payload, decapsKey, n)
	})
}

func TestSecureZero(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	SecureZero(buf)
	for i, b := range buf {
		if b != 0 {
			t.Errorf("buf[%d] = %d after SecureZero", i, b)
		}
	}
	SecureZero(nil)
}

func TestSecureCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want bool
	}{
		{"equal", []byte("abc"), []byte("abc"), true},
		{"different", []byte("abc"), []byte("abd"), false},
		{"different length", []byte("abc"), []byte("abcd"), false},
		{"both empty", []byte{}, []byte{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SecureCompare(tt.a, tt.b); got != tt.want {
				t.Errorf("SecureCompare(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
