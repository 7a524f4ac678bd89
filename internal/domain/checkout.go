package domain

import "context"

// CheckoutContext best-effort cached checkout session data.
// The cache is a convenience only, losing it is never an error for the learner.
type CheckoutContext struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	ClientTransactionID string `json:"client_transaction_id"`
}

// CheckoutUseCase checkout session context lifecycle
type CheckoutUseCase interface {
	Save(ctx context.Context, userID string, form *CheckoutContext) (*CheckoutContext, error)
	Hydrate(ctx context.Context, userID string) (*CheckoutContext, error)
	Clear(ctx context.Context, userID string) error
}
