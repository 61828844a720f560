// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"

	httpin "narratives-solana/internal/adapters/in/http"
	usecase "narratives-solana/internal/application/usecase"
	"narratives-solana/internal/infra/config"
	"narratives-solana/internal/infra/solana"
	"narratives-solana/internal/platform/metrics"
	"narratives-solana/internal/platform/ratelimiter"
)

// Container は main.go から使う依存オブジェクトの束。
// main.go を薄く保つためにここで全て組み立てる。
type Container struct {
	Config *config.Config

	Metrics     *metrics.Metrics
	RateLimiter *ratelimiter.ClientLimiter // nil when limiting is disabled

	KeypairUC *usecase.KeypairUsecase
	TokenUC   *usecase.TokenUsecase
}

// NewContainer wires every dependency from cfg. cfg must already be valid.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("di: %w", err)
	}

	m := metrics.New()

	// ─── Infra (Solana) ───
	generator := solana.NewKeypairGenerator()
	builder := solana.NewMintInstructionBuilder(cfg.TokenProgram(), cfg.RentSysvar())

	// ─── Usecases ───
	keypairUC := usecase.NewKeypairUsecase(generator).WithMetrics(m)
	tokenUC := usecase.NewTokenUsecase(builder).WithMetrics(m)

	return &Container{
		Config:      cfg,
		Metrics:     m,
		RateLimiter: ratelimiter.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL),
		KeypairUC:   keypairUC,
		TokenUC:     tokenUC,
	}, nil
}

// RouterDeps converts the container into the HTTP router's inputs.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		KeypairUC:   c.KeypairUC,
		TokenUC:     c.TokenUC,
		Metrics:     c.Metrics,
		RateLimiter: c.RateLimiter,
		CORSOrigins: c.Config.CORS.AllowedOrigins,
	}
}
