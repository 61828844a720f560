package solana

import (
	"bytes"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	instructiondom "narratives-solana/internal/domain/instruction"
)

func newTestBuilder() *MintInstructionBuilder {
	return NewMintInstructionBuilder(
		instructiondom.MustParsePublicKey(TokenProgramID),
		instructiondom.MustParsePublicKey(RentSysvarID),
	)
}

func TestInitializeMint_Layout(t *testing.T) {
	authority := instructiondom.MustParsePublicKey("11111111111111111111111111111111")
	mint := instructiondom.MustParsePublicKey("So11111111111111111111111111111111111111112")

	inst, err := newTestBuilder().InitializeMint(instructiondom.InitializeMintParams{
		Mint:          mint,
		MintAuthority: authority,
		Decimals:      9,
	})
	require.NoError(t, err)

	want := append([]byte{0x00, 0x09}, authority[:]...)
	want = append(want, 0x00)
	assert.Equal(t, want, inst.Data)
	assert.Len(t, inst.Data, 35)
	assert.Equal(t, "AAkAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=", inst.DataBase64())

	assert.Equal(t, TokenProgramID, inst.ProgramID.String())

	require.Len(t, inst.Accounts, 2)
	assert.Equal(t, instructiondom.AccountRef{PublicKey: mint, IsSigner: false, IsWritable: true}, inst.Accounts[0])
	assert.Equal(t, RentSysvarID, inst.Accounts[1].PublicKey.String())
	assert.False(t, inst.Accounts[1].IsSigner)
	assert.False(t, inst.Accounts[1].IsWritable)
}

func TestInitializeMint_AuthorityBytesEmbedded(t *testing.T) {
	authority := instructiondom.MustParsePublicKey(TokenProgramID)
	mint := instructiondom.MustParsePublicKey("So11111111111111111111111111111111111111112")

	inst, err := newTestBuilder().InitializeMint(instructiondom.InitializeMintParams{
		Mint:          mint,
		MintAuthority: authority,
		Decimals:      255,
	})
	require.NoError(t, err)

	assert.Equal(t, byte(instructiondom.DiscriminantInitializeMint), inst.Data[0])
	assert.Equal(t, byte(255), inst.Data[1])
	assert.Equal(t, authority[:], inst.Data[2:34])
	assert.Equal(t, byte(0), inst.Data[34])
}

func TestInitializeMint_Deterministic(t *testing.T) {
	params := instructiondom.InitializeMintParams{
		Mint:          instructiondom.MustParsePublicKey("So11111111111111111111111111111111111111112"),
		MintAuthority: instructiondom.MustParsePublicKey("11111111111111111111111111111111"),
		Decimals:      6,
	}
	b := newTestBuilder()

	first, err := b.InitializeMint(params)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		next, err := b.InitializeMint(params)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first.Data, next.Data))
		assert.Equal(t, first.Accounts, next.Accounts)
	}
}

func TestInitializeMint_WithFreezeAuthority(t *testing.T) {
	freeze := instructiondom.MustParsePublicKey(TokenProgramID)
	inst, err := newTestBuilder().InitializeMint(instructiondom.InitializeMintParams{
		Mint:            instructiondom.MustParsePublicKey("So11111111111111111111111111111111111111112"),
		MintAuthority:   instructiondom.MustParsePublicKey("11111111111111111111111111111111"),
		FreezeAuthority: &freeze,
		Decimals:        0,
	})
	require.NoError(t, err)

	require.Len(t, inst.Data, 67)
	assert.Equal(t, byte(1), inst.Data[34])
	assert.Equal(t, freeze[:], inst.Data[35:])
}

func TestInitializeMint_CustomProgramAndRent(t *testing.T) {
	program := instructiondom.MustParsePublicKey("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
	rent := instructiondom.MustParsePublicKey("So11111111111111111111111111111111111111112")
	b := NewMintInstructionBuilder(program, rent)

	inst, err := b.InitializeMint(instructiondom.InitializeMintParams{
		Mint:          instructiondom.MustParsePublicKey(TokenProgramID),
		MintAuthority: instructiondom.MustParsePublicKey("11111111111111111111111111111111"),
		Decimals:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, program, inst.ProgramID)
	assert.Equal(t, rent, inst.Accounts[1].PublicKey)

	// the library's package-level program id is left alone
	assert.Equal(t, solanago.TokenProgramID, token.ProgramID)
}

func TestInitializeMint_DecodesWithTokenProgram(t *testing.T) {
	authority := instructiondom.MustParsePublicKey(TokenProgramID)
	mint := instructiondom.MustParsePublicKey("So11111111111111111111111111111111111111112")

	inst, err := newTestBuilder().InitializeMint(instructiondom.InitializeMintParams{
		Mint:          mint,
		MintAuthority: authority,
		Decimals:      9,
	})
	require.NoError(t, err)

	metas := solanago.AccountMetaSlice{
		solanago.Meta(toSolanaKey(inst.Accounts[0].PublicKey)).WRITE(),
		solanago.Meta(toSolanaKey(inst.Accounts[1].PublicKey)),
	}
	decoded, err := token.DecodeInstruction(metas, inst.Data)
	require.NoError(t, err)

	im, ok := decoded.Impl.(*token.InitializeMint)
	require.True(t, ok)
	assert.Equal(t, uint8(9), *im.Decimals)
	assert.Equal(t, toSolanaKey(authority), *im.MintAuthority)
	assert.Nil(t, im.FreezeAuthority)
}

func TestInitializeMint_NotConfigured(t *testing.T) {
	var b *MintInstructionBuilder
	_, err := b.InitializeMint(instructiondom.InitializeMintParams{})
	assert.ErrorIs(t, err, instructiondom.ErrConstructionFailed)

	b = NewMintInstructionBuilder(instructiondom.PublicKey{}, instructiondom.MustParsePublicKey(RentSysvarID))
	_, err = b.InitializeMint(instructiondom.InitializeMintParams{})
	assert.ErrorIs(t, err, instructiondom.ErrConstructionFailed)
}
