// internal/infra/solana/keypair_file.go
package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blocto/solana-go-sdk/types"

	keypairdom "narratives-solana/internal/domain/keypair"
)

var ErrKeypairFileExists = errors.New("keypair file: already exists")

// ReadKeypairFile loads a solana-keygen keypair file ([u8;64] JSON).
func ReadKeypairFile(path string) (keypairdom.KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return keypairdom.KeyPair{}, fmt.Errorf("read keypair file: %w", err)
	}
	defer wipe(data)
	return DecodeKeypair(data)
}

// WriteKeypairFile writes k in the solana-keygen JSON layout with 0600
// permissions. An existing file is only replaced when overwrite is set.
func WriteKeypairFile(path string, k keypairdom.KeyPair, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrKeypairFileExists, path)
		}
	}

	data, err := EncodeKeypairJSON(k)
	if err != nil {
		return err
	}
	defer wipe(data)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create keypair dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write keypair file: %w", err)
	}
	return nil
}

// EncodeKeypairJSON renders the 64-byte private material as a JSON int array,
// the format produced by solana-keygen.
func EncodeKeypairJSON(k keypairdom.KeyPair) ([]byte, error) {
	if len(k.PrivateKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", keypairdom.ErrInvalidPrivateKey, len(k.PrivateKey), ed25519.PrivateKeySize)
	}
	ints := make([]int, len(k.PrivateKey))
	for i, b := range k.PrivateKey {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}

// DecodeKeypair accepts either the solana-keygen JSON array or a base58
// secret string, and restores the account through the SDK so that the
// public key is derived from the private material, never trusted as given.
func DecodeKeypair(data []byte) (keypairdom.KeyPair, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return keypairdom.KeyPair{}, fmt.Errorf("%w: empty keypair", keypairdom.ErrInvalidPrivateKey)
	}

	var raw []byte
	if trimmed[0] == '[' {
		b, err := decodeKeypairJSON(trimmed)
		if err != nil {
			return keypairdom.KeyPair{}, err
		}
		raw = b
	} else {
		k, err := keypairdom.FromBase58Secret(string(trimmed))
		if err != nil {
			return keypairdom.KeyPair{}, err
		}
		raw = k.PrivateKey
	}
	defer wipe(raw)

	acc, err := types.AccountFromBytes(raw)
	if err != nil {
		return keypairdom.KeyPair{}, fmt.Errorf("%w: AccountFromBytes: %v", keypairdom.ErrInvalidPrivateKey, err)
	}
	return keypairdom.New(acc.PublicKey.Bytes(), acc.PrivateKey)
}

// decodeKeypairJSON restores the 64-byte key array from [int,...].
func decodeKeypairJSON(data []byte) ([]byte, error) {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, fmt.Errorf("%w: unmarshal keypair json: %v", keypairdom.ErrInvalidPrivateKey, err)
	}
	if len(ints) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: unexpected secret key length: got %d, want %d", keypairdom.ErrInvalidPrivateKey, len(ints), ed25519.PrivateKeySize)
	}

	keyBytes := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: byte %d out of range", keypairdom.ErrInvalidPrivateKey, i)
		}
		keyBytes[i] = byte(v)
	}
	return keyBytes, nil
}
