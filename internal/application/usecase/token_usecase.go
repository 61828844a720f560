// internal/application/usecase/token_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"

	instructiondom "narratives-solana/internal/domain/instruction"
	"narratives-solana/internal/platform/metrics"
)

const opInitializeMint = "initialize_mint"

// TokenUsecase builds (but never signs or sends) SPL Token instructions.
type TokenUsecase struct {
	Builder instructiondom.Builder
	Metrics *metrics.Metrics
}

func NewTokenUsecase(builder instructiondom.Builder) *TokenUsecase {
	return &TokenUsecase{Builder: builder}
}

func (uc *TokenUsecase) WithMetrics(m *metrics.Metrics) *TokenUsecase {
	uc.Metrics = m
	return uc
}

// BuildInitializeMint validates mintAuthority first and mint second; the
// first failure wins. Decimals is passed through unchecked, the token
// program enforces its own bounds. No freeze authority is set.
func (uc *TokenUsecase) BuildInitializeMint(
	ctx context.Context,
	mintAuthority string,
	mint string,
	decimals uint8,
) (inst instructiondom.Instruction, err error) {
	_ = ctx // 同期処理のみ

	defer func() { uc.observe(err) }()

	authorityKey, err := instructiondom.ParsePublicKey(mintAuthority)
	if err != nil {
		return instructiondom.Instruction{}, fmt.Errorf("%w: %v", instructiondom.ErrInvalidMintAuthority, err)
	}

	mintKey, err := instructiondom.ParsePublicKey(mint)
	if err != nil {
		return instructiondom.Instruction{}, fmt.Errorf("%w: %v", instructiondom.ErrInvalidMint, err)
	}

	if uc == nil || uc.Builder == nil {
		return instructiondom.Instruction{}, fmt.Errorf("%w: token usecase: builder not configured", instructiondom.ErrConstructionFailed)
	}

	inst, err = uc.Builder.InitializeMint(instructiondom.InitializeMintParams{
		Mint:            mintKey,
		MintAuthority:   authorityKey,
		FreezeAuthority: nil,
		Decimals:        decimals,
	})
	if err != nil {
		if !errors.Is(err, instructiondom.ErrConstructionFailed) {
			err = fmt.Errorf("%w: %v", instructiondom.ErrConstructionFailed, err)
		}
		return instructiondom.Instruction{}, err
	}
	return inst, nil
}

func (uc *TokenUsecase) observe(err error) {
	if uc == nil {
		return
	}
	uc.Metrics.ObserveInstruction(opInitializeMint, err)
}
