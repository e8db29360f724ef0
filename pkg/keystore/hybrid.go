package keystore

import (
	"crypto/mlkem"
	"fmt"
)

// generateKEMKeyPair returns a fresh ML-KEM-1024 keypair as raw bytes: the
// encapsulation key for sealing and the decapsulation key seed for opening.
func generateKEMKeyPair() (encapsKey, decapsKey []byte, err error) {
	dk, err := mlkem.GenerateKey1024()
	if err != nil {
		return nil, nil, fmt.Errorf("generate ML-KEM-1024 keypair: %w", err)
	}
	return dk.EncapsulationKey().Bytes(), dk.Bytes(), nil
}

// hybridSeal encrypts plaintext to the holder of the matching decapsulation
// key. An ML-KEM-1024 encapsulation yields the AES-256-GCM key; the KEM
// ciphertext is prefixed to the sealed payload so hybridOpen can split them
// again.
func hybridSeal(plaintext, encapsKeyBytes []byte) (combined, nonce []byte, err error) {
	ek, err := mlkem.NewEncapsulationKey1024(encapsKeyBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("parse encapsulation key: %w", err)
	}
	sharedSecret, kemCiphertext := ek.Encapsulate()

	// Copy so the secret and the working key can be zeroed independently.
	aesKey := make([]byte, KeySize)
	copy(aesKey, sharedSecret[:KeySize])
	SecureZero(sharedSecret)
	defer SecureZero(aesKey)

	sealed, nonce, err := seal(plaintext, aesKey)
	if err != nil {
		return nil, nil, err
	}
	return append(kemCiphertext, sealed...), nonce, nil
}

// hybridOpen reverses hybridSeal using the decapsulation key seed.
func hybridOpen(combined, decapsKeyBytes, nonce []byte) ([]byte, error) {
	dk, err := mlkem.NewDecapsulationKey1024(decapsKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse decapsulation key: %w", err)
	}
	if len(combined) < mlkem.CiphertextSize1024 {
		return nil, fmt.Errorf("sealed payload too short: %d bytes, need at least %d",
			len(combined), mlkem.CiphertextSize1024)
	}

	sharedSecret, err := dk.Decapsulate(combined[:mlkem.CiphertextSize1024])
	if err != nil {
		return nil, fmt.Errorf("ML-KEM decapsulation: %w", err)
	}

	aesKey := make([]byte, KeySize)
	copy(aesKey, sharedSecret[:KeySize])
	SecureZero(sharedSecret)
	defer SecureZero(aesKey)

	return open(combined[mlkem.CiphertextSize1024:], aesKey, nonce)
}

// kemKeyMatches reports whether the decapsulation key seed derives the given
// encapsulation key.
func kemKeyMatches(decapsKeyBytes, encapsKeyBytes []byte) bool {
	dk, err := mlkem.NewDecapsulationKey1024(decapsKeyBytes)
	if err != nil {
		return false
	}
	return SecureCompare(dk.EncapsulationKey().Bytes(), encapsKeyBytes)
}
