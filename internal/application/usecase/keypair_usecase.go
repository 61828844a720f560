// internal/application/usecase/keypair_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"

	keypairdom "narratives-solana/internal/domain/keypair"
	"narratives-solana/internal/platform/metrics"
)

// KeypairUsecase hands out fresh key pairs. Nothing is persisted.
type KeypairUsecase struct {
	Generator keypairdom.Generator
	Metrics   *metrics.Metrics // nil when metrics are not wired
}

func NewKeypairUsecase(gen keypairdom.Generator) *KeypairUsecase {
	return &KeypairUsecase{Generator: gen}
}

// 任意: Metrics を後から差し込むためのセッター
func (uc *KeypairUsecase) WithMetrics(m *metrics.Metrics) *KeypairUsecase {
	uc.Metrics = m
	return uc
}

// Generate always reports failures as keypairdom.ErrGenerationFailed.
// The caller owns the returned private material and should Wipe it.
func (uc *KeypairUsecase) Generate(ctx context.Context) (keypairdom.KeyPair, error) {
	if uc == nil || uc.Generator == nil {
		return keypairdom.KeyPair{}, fmt.Errorf("%w: keypair usecase: generator not configured", keypairdom.ErrGenerationFailed)
	}

	kp, err := uc.Generator.Generate(ctx)
	if err != nil {
		if !errors.Is(err, keypairdom.ErrGenerationFailed) {
			err = fmt.Errorf("%w: %v", keypairdom.ErrGenerationFailed, err)
		}
		return keypairdom.KeyPair{}, err
	}

	uc.Metrics.ObserveKeypair()
	return kp, nil
}
