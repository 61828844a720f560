// internal/infra/solana/program_ids.go
package solana

import (
	solanago "github.com/gagliardetto/solana-go"

	instructiondom "narratives-solana/internal/domain/instruction"
)

// SPL Token Program ID (Tokenkeg...)
const TokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// Rent sysvar, required read-only by InitializeMint.
const RentSysvarID = "SysvarRent111111111111111111111111111111111"

func toSolanaKey(pk instructiondom.PublicKey) solanago.PublicKey {
	return solanago.PublicKey(pk)
}

func fromSolanaKey(pk solanago.PublicKey) instructiondom.PublicKey {
	return instructiondom.PublicKey(pk)
}
