// internal/adapters/in/http/handlers/keypair_handler.go
package handlers

import (
	"net/http"

	"narratives-solana/internal/adapters/in/http/handlers/common"
	usecase "narratives-solana/internal/application/usecase"
	"narratives-solana/internal/platform/logger"
)

const msgKeypairFailed = "Failed to generate keypair"

// KeypairData is the success payload of POST /keypair.
type KeypairData struct {
	Pubkey string `json:"pubkey"`
	Secret string `json:"secret"`
}

// KeypairHandler は POST /keypair を担当します。
type KeypairHandler struct {
	uc *usecase.KeypairUsecase
}

func NewKeypairHandler(uc *usecase.KeypairUsecase) http.Handler {
	return &KeypairHandler{uc: uc}
}

func (h *KeypairHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		common.MethodNotAllowed(w, r)
		return
	}
	h.generate(w, r)
}

// POST /keypair
func (h *KeypairHandler) generate(w http.ResponseWriter, r *http.Request) {
	kp, err := h.uc.Generate(r.Context())
	if err != nil {
		writeKeypairErr(w, err)
		return
	}
	defer kp.Wipe()

	w.Header().Set("Cache-Control", "no-store")
	common.WriteSuccess(w, KeypairData{
		Pubkey: kp.PublicKeyBase58(),
		Secret: kp.SecretBase58(),
	})
}

// エラーハンドリング
// Generation failures are server faults; the message is fixed so nothing
// from the crypto layer leaks into the body.
func writeKeypairErr(w http.ResponseWriter, err error) {
	logger.Error("[keypair] generation failed", err)
	common.WriteError(w, http.StatusInternalServerError, msgKeypairFailed)
}
