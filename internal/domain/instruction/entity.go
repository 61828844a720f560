// internal/domain/instruction/entity.go
package instruction

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// Domain errors
var (
	ErrInvalidMintAuthority = errors.New("instruction: invalid mint authority")
	ErrInvalidMint          = errors.New("instruction: invalid mint")
	ErrConstructionFailed   = errors.New("instruction: construction failed")
	ErrInvalidPublicKey     = errors.New("instruction: invalid public key")
)

// DiscriminantInitializeMint selects the InitializeMint variant of the SPL Token program.
const DiscriminantInitializeMint uint8 = 0

const PublicKeySize = 32

// MaxPublicKeyBase58Len is the longest base58 text a 32-byte key encodes to.
const MaxPublicKeyBase58Len = 44

// PublicKey is a 32-byte account address.
type PublicKey [PublicKeySize]byte

// ParsePublicKey decodes a base58 address. Anything that is not valid base58
// or does not decode to exactly 32 bytes is rejected. Text longer than
// MaxPublicKeyBase58Len is rejected before decoding.
func ParsePublicKey(s string) (PublicKey, error) {
	var pk PublicKey
	if len(s) == 0 || len(s) > MaxPublicKeyBase58Len {
		return pk, fmt.Errorf("%w: length %d out of range", ErrInvalidPublicKey, len(s))
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if len(raw) != PublicKeySize {
		return pk, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPublicKey, len(raw), PublicKeySize)
	}
	copy(pk[:], raw)
	return pk, nil
}

// MustParsePublicKey is for compile-time constants only.
func MustParsePublicKey(s string) PublicKey {
	pk, err := ParsePublicKey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

func (p PublicKey) String() string {
	return base58.Encode(p[:])
}

func (p PublicKey) IsZero() bool {
	return p == PublicKey{}
}

// AccountRef is one entry of an instruction's account list.
type AccountRef struct {
	PublicKey  PublicKey
	IsSigner   bool
	IsWritable bool
}

// Instruction is the unsigned unit of work addressed to a program.
// The order of Accounts is part of the program interface.
type Instruction struct {
	ProgramID PublicKey
	Accounts  []AccountRef
	Data      []byte
}

// DataBase64 encodes Data with the standard, padded alphabet.
func (i Instruction) DataBase64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// InitializeMintParams are the inputs of the InitializeMint operation.
// FreezeAuthority nil means "no freeze authority".
type InitializeMintParams struct {
	Mint            PublicKey
	MintAuthority   PublicKey
	FreezeAuthority *PublicKey
	Decimals        uint8
}

// IsClientError reports whether err was caused by caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidMintAuthority) || errors.Is(err, ErrInvalidMint)
}
