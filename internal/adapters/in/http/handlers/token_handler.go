// internal/adapters/in/http/handlers/token_handler.go
package handlers

import (
	"errors"
	"net/http"

	"narratives-solana/internal/adapters/in/http/handlers/common"
	usecase "narratives-solana/internal/application/usecase"
	instructiondom "narratives-solana/internal/domain/instruction"
	"narratives-solana/internal/platform/logger"
)

const (
	msgInvalidMintAuthority = "Invalid mint authority public key"
	msgInvalidMint          = "Invalid mint public key"
	msgConstructionFailed   = "Failed to create initialize mint instruction"
)

// CreateTokenRequest is the body of POST /token/create.
// Decimals is a pointer so a missing field can be told apart from 0;
// values outside 0..255 fail to decode into uint8.
type CreateTokenRequest struct {
	MintAuthority string `json:"mintAuthority"`
	Mint          string `json:"mint"`
	Decimals      *uint8 `json:"decimals"`
}

type AccountData struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"is_signer"`
	IsWritable bool   `json:"is_writable"`
}

type TokenInstructionData struct {
	ProgramID       string        `json:"program_id"`
	Accounts        []AccountData `json:"accounts"`
	InstructionData string        `json:"instruction_data"`
}

// TokenHandler は /token/create を担当します。
type TokenHandler struct {
	uc *usecase.TokenUsecase
}

func NewTokenHandler(uc *usecase.TokenUsecase) http.Handler {
	return &TokenHandler{uc: uc}
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		common.MethodNotAllowed(w, r)
		return
	}
	h.create(w, r)
}

// POST /token/create
func (h *TokenHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateTokenRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		logger.Debug("[token] rejected request body", "error", err.Error())
		common.WriteError(w, http.StatusBadRequest, common.MsgInvalidRequestBody)
		return
	}
	if req.Decimals == nil {
		common.WriteError(w, http.StatusBadRequest, common.MsgInvalidRequestBody)
		return
	}

	inst, err := h.uc.BuildInitializeMint(r.Context(), req.MintAuthority, req.Mint, *req.Decimals)
	if err != nil {
		writeTokenErr(w, err)
		return
	}

	common.WriteSuccess(w, toTokenInstructionData(inst))
}

func toTokenInstructionData(inst instructiondom.Instruction) TokenInstructionData {
	accounts := make([]AccountData, 0, len(inst.Accounts))
	for _, a := range inst.Accounts {
		accounts = append(accounts, AccountData{
			Pubkey:     a.PublicKey.String(),
			IsSigner:   a.IsSigner,
			IsWritable: a.IsWritable,
		})
	}
	return TokenInstructionData{
		ProgramID:       inst.ProgramID.String(),
		Accounts:        accounts,
		InstructionData: inst.DataBase64(),
	}
}

// エラーハンドリング
func writeTokenErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, instructiondom.ErrInvalidMintAuthority):
		common.WriteError(w, http.StatusBadRequest, msgInvalidMintAuthority)
	case errors.Is(err, instructiondom.ErrInvalidMint):
		common.WriteError(w, http.StatusBadRequest, msgInvalidMint)
	default:
		logger.Error("[token] initialize mint construction failed", err)
		common.WriteError(w, http.StatusInternalServerError, msgConstructionFailed)
	}
}
