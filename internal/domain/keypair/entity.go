// internal/domain/keypair/entity.go
package keypair

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// Domain errors
var (
	ErrGenerationFailed  = errors.New("keypair: generation failed")
	ErrInvalidPublicKey  = errors.New("keypair: invalid public key")
	ErrInvalidPrivateKey = errors.New("keypair: invalid private key")
	ErrKeyMismatch       = errors.New("keypair: public key does not match private key")
)

const (
	PublicKeySize  = ed25519.PublicKeySize  // 32
	PrivateKeySize = ed25519.PrivateKeySize // 64 = seed(32) + public key(32)
)

// KeyPair is an ed25519 key pair in the layout used by Solana wallets:
// PrivateKey holds the 32-byte seed followed by the 32-byte public key.
//
// A KeyPair only lives for one request. It must never be stored or logged;
// String() prints the public half only.
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

// New copies pub/priv and checks that they form a consistent pair.
func New(pub, priv []byte) (KeyPair, error) {
	k := KeyPair{
		PublicKey:  append([]byte(nil), pub...),
		PrivateKey: append([]byte(nil), priv...),
	}
	if err := k.validate(); err != nil {
		k.Wipe()
		return KeyPair{}, err
	}
	return k, nil
}

// FromPrivateKey rebuilds a KeyPair from 64 bytes of private material.
func FromPrivateKey(priv []byte) (KeyPair, error) {
	if len(priv) != PrivateKeySize {
		return KeyPair{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPrivateKey, len(priv), PrivateKeySize)
	}
	return New(priv[PrivateKeySize-PublicKeySize:], priv)
}

// FromBase58Secret decodes the base58 secret produced by SecretBase58.
func FromBase58Secret(secret string) (KeyPair, error) {
	raw, err := base58.Decode(secret)
	if err != nil {
		return KeyPair{}, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	defer wipe(raw)
	return FromPrivateKey(raw)
}

// PublicKeyBase58 is the account address.
func (k KeyPair) PublicKeyBase58() string {
	return base58.Encode(k.PublicKey)
}

// SecretBase58 encodes the full 64-byte private material.
func (k KeyPair) SecretBase58() string {
	return base58.Encode(k.PrivateKey)
}

// Wipe zeroes the private material in place.
func (k *KeyPair) Wipe() {
	if k == nil {
		return
	}
	wipe(k.PrivateKey)
	k.PrivateKey = nil
}

func (k KeyPair) String() string {
	return "KeyPair(" + k.PublicKeyBase58() + ")"
}

// Validation and helpers

func (k KeyPair) validate() error {
	if len(k.PublicKey) != PublicKeySize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPublicKey, len(k.PublicKey), PublicKeySize)
	}
	if len(k.PrivateKey) != PrivateKeySize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPrivateKey, len(k.PrivateKey), PrivateKeySize)
	}

	derived := ed25519.NewKeyFromSeed(k.PrivateKey[:ed25519.SeedSize])
	defer wipe(derived)

	if !bytes.Equal(derived[ed25519.SeedSize:], k.PublicKey) {
		return ErrKeyMismatch
	}
	if !bytes.Equal(k.PrivateKey[ed25519.SeedSize:], k.PublicKey) {
		return ErrKeyMismatch
	}
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
