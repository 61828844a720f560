// internal/infra/solana/keypair_generator.go
package solana

import (
	"context"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"

	keypairdom "narratives-solana/internal/domain/keypair"
)

// KeypairGenerator produces Solana-compatible ed25519 key pairs.
type KeypairGenerator struct {
	newKey func() (solanago.PrivateKey, error)
}

// インターフェース実装チェック
var _ keypairdom.Generator = (*KeypairGenerator)(nil)

func NewKeypairGenerator() *KeypairGenerator {
	return &KeypairGenerator{newKey: solanago.NewRandomPrivateKey}
}

// Generate returns a new pair. The private material is copied into the
// returned KeyPair and the intermediate buffer is zeroed.
//
// A panic from the key source is reported as ErrGenerationFailed.
func (g *KeypairGenerator) Generate(ctx context.Context) (kp keypairdom.KeyPair, err error) {
	defer func() {
		if r := recover(); r != nil {
			kp.Wipe()
			kp, err = keypairdom.KeyPair{}, fmt.Errorf("%w: key source panicked: %v", keypairdom.ErrGenerationFailed, r)
		}
	}()

	if g == nil || g.newKey == nil {
		return keypairdom.KeyPair{}, fmt.Errorf("%w: generator not configured", keypairdom.ErrGenerationFailed)
	}
	if err := ctx.Err(); err != nil {
		return keypairdom.KeyPair{}, fmt.Errorf("%w: %v", keypairdom.ErrGenerationFailed, err)
	}

	priv, err := g.newKey()
	if err != nil {
		return keypairdom.KeyPair{}, fmt.Errorf("%w: %v", keypairdom.ErrGenerationFailed, err)
	}
	defer wipe(priv)

	// FromPrivateKey checks length and derivation, so a malformed key from
	// the entropy layer becomes an error rather than a panic in PublicKey().
	kp, err = keypairdom.FromPrivateKey(priv)
	if err != nil {
		return keypairdom.KeyPair{}, fmt.Errorf("%w: %v", keypairdom.ErrGenerationFailed, err)
	}
	return kp, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
