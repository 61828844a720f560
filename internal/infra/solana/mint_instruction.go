// internal/infra/solana/mint_instruction.go
package solana

import (
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	instructiondom "narratives-solana/internal/domain/instruction"
)

// MintInstructionBuilder encodes SPL Token instructions with the
// solana-go token program bindings.
//
// The program id is held per builder instead of going through
// token.SetProgramID, which mutates a package-level variable.
type MintInstructionBuilder struct {
	programID  solanago.PublicKey
	rentSysvar solanago.PublicKey
}

// インターフェース実装チェック
var _ instructiondom.Builder = (*MintInstructionBuilder)(nil)

func NewMintInstructionBuilder(programID, rentSysvar instructiondom.PublicKey) *MintInstructionBuilder {
	return &MintInstructionBuilder{
		programID:  toSolanaKey(programID),
		rentSysvar: toSolanaKey(rentSysvar),
	}
}

// InitializeMint builds:
//
//	data     = [0x00, decimals, mintAuthority(32), hasFreezeAuthority(1) [, freezeAuthority(32)]]
//	accounts = [mint (writable), rent sysvar (read-only)]
func (b *MintInstructionBuilder) InitializeMint(p instructiondom.InitializeMintParams) (instructiondom.Instruction, error) {
	if b == nil || b.programID.IsZero() {
		return instructiondom.Instruction{}, fmt.Errorf("%w: token program id not configured", instructiondom.ErrConstructionFailed)
	}

	ib := token.NewInitializeMintInstructionBuilder().
		SetDecimals(p.Decimals).
		SetMintAuthority(toSolanaKey(p.MintAuthority)).
		SetMintAccount(toSolanaKey(p.Mint)).
		SetSysVarRentPubkeyAccount(b.rentSysvar)
	if p.FreezeAuthority != nil {
		ib.SetFreezeAuthority(toSolanaKey(*p.FreezeAuthority))
	}

	built, err := ib.ValidateAndBuild()
	if err != nil {
		return instructiondom.Instruction{}, fmt.Errorf("%w: %v", instructiondom.ErrConstructionFailed, err)
	}

	data, err := built.Data()
	if err != nil {
		return instructiondom.Instruction{}, fmt.Errorf("%w: %v", instructiondom.ErrConstructionFailed, err)
	}
	if len(data) == 0 || data[0] != instructiondom.DiscriminantInitializeMint {
		return instructiondom.Instruction{}, fmt.Errorf("%w: unexpected discriminant", instructiondom.ErrConstructionFailed)
	}

	metas := built.Accounts()
	accounts := make([]instructiondom.AccountRef, 0, len(metas))
	for i, m := range metas {
		if m == nil {
			return instructiondom.Instruction{}, fmt.Errorf("%w: account %d not set", instructiondom.ErrConstructionFailed, i)
		}
		accounts = append(accounts, instructiondom.AccountRef{
			PublicKey:  fromSolanaKey(m.PublicKey),
			IsSigner:   m.IsSigner,
			IsWritable: m.IsWritable,
		})
	}

	return instructiondom.Instruction{
		ProgramID: fromSolanaKey(b.programID),
		Accounts:  accounts,
		Data:      data,
	}, nil
}
