// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	usecase "narratives-solana/internal/application/usecase"

	// ハンドラ群
	"narratives-solana/internal/adapters/in/http/handlers"
	"narratives-solana/internal/adapters/in/http/handlers/common"
	"narratives-solana/internal/adapters/in/http/middleware"
	"narratives-solana/internal/platform/metrics"
	"narratives-solana/internal/platform/ratelimiter"
)

// RouterDeps collects all usecases (and other dependencies) injected from main.go.
type RouterDeps struct {
	KeypairUC *usecase.KeypairUsecase
	TokenUC   *usecase.TokenUsecase

	// 任意: nil なら無効
	Metrics     *metrics.Metrics
	RateLimiter *ratelimiter.ClientLimiter

	CORSOrigins []string
}

// NewRouter sets up HTTP routing for all endpoints.
//
// Middleware order (outermost first):
// RequestID → RealIP → CORS → RequestLog → Metrics → Recover → RateLimit.
// Recover sits inside RequestLog and Metrics so a recovered 500 is still
// logged and counted, and inside CORS so it still carries CORS headers.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CORS(deps.CORSOrigins))
	r.Use(middleware.RequestLog)
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.Recover)
	r.Use(middleware.RateLimit(deps.RateLimiter, deps.Metrics))

	r.NotFound(common.NotFound)
	r.MethodNotAllowed(common.MethodNotAllowed)

	// Health check (always on)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// 以降、Usecase が存在するものだけマウントする
	if deps.KeypairUC != nil {
		r.Method(http.MethodPost, "/keypair", handlers.NewKeypairHandler(deps.KeypairUC))
	}

	if deps.TokenUC != nil {
		r.Method(http.MethodPost, "/token/create", handlers.NewTokenHandler(deps.TokenUC))
	}

	return r
}
