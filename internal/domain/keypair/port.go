package keypair

import "context"

// Generator draws fresh key pairs from a secure random source.
type Generator interface {
	Generate(ctx context.Context) (KeyPair, error)
}
