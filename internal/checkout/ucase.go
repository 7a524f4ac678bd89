package checkout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/sazonlab/campus-bff/internal/infrastructure/driver"
	"github.com/sazonlab/campus-bff/internal/infrastructure/uuid"
	"go.elastic.co/apm"
)

// checkoutRecord KV value layout, kept compatible with the SPA's
// localStorage shape
type checkoutRecord struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	ClientTransactionID string `json:"clientTransactionId"`
}

// CheckoutUseCaseImpl keeps the learner's checkout form and client
// transaction id in the KV store with a TTL. The cache is a convenience:
// a miss hydrates to an empty context and a failed write or delete never
// fails the caller, the entry expires on its own either way.
type CheckoutUseCaseImpl struct {
	KVStore     driver.KeyValueDB
	IDGenerator uuid.Generator
	TTL         time.Duration
}

var _ domain.CheckoutUseCase = &CheckoutUseCaseImpl{}

// NewCheckoutUseCase ...
func NewCheckoutUseCase(KVStore driver.KeyValueDB, IDGenerator uuid.Generator, TTL time.Duration) *CheckoutUseCaseImpl {
	return &CheckoutUseCaseImpl{KVStore, IDGenerator, TTL}
}

// Save store the form data, minting a client transaction id on first save
func (cu *CheckoutUseCaseImpl) Save(ctx context.Context, userID string, form *domain.CheckoutContext) (*domain.CheckoutContext, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CheckoutUseCaseImpl.Save", "service")
	defer apmSpan.End()

	current, _ := cu.Hydrate(ctx, userID)

	transactionID := form.ClientTransactionID
	if transactionID == "" {
		transactionID = current.ClientTransactionID
	}
	if transactionID == "" {
		var err error
		transactionID, err = cu.IDGenerator.Generate()
		if err != nil {
			return nil, err
		}
	}

	record := &checkoutRecord{
		Name:                form.Name,
		Email:               form.Email,
		ClientTransactionID: transactionID,
	}
	// the cache is best-effort, a failed write must not fail the checkout
	if encoded, err := json.Marshal(record); err == nil {
		cu.KVStore.SetEX(checkoutKey(userID), string(encoded), cu.TTL)
	}
	return &domain.CheckoutContext{
		Name:                record.Name,
		Email:               record.Email,
		ClientTransactionID: record.ClientTransactionID,
	}, nil
}

// Hydrate load the cached context, empty when nothing (or garbage) is cached
func (cu *CheckoutUseCaseImpl) Hydrate(ctx context.Context, userID string) (*domain.CheckoutContext, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CheckoutUseCaseImpl.Hydrate", "service")
	defer apmSpan.End()

	exists, err := cu.KVStore.Exists(checkoutKey(userID))
	if err != nil || !exists {
		return &domain.CheckoutContext{}, nil
	}
	raw, err := cu.KVStore.Get(checkoutKey(userID))
	if err != nil {
		return &domain.CheckoutContext{}, nil
	}
	var record checkoutRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return &domain.CheckoutContext{}, nil
	}
	return &domain.CheckoutContext{
		Name:                record.Name,
		Email:               record.Email,
		ClientTransactionID: record.ClientTransactionID,
	}, nil
}

// Clear drop the cached context, best-effort like the rest of the cache
func (cu *CheckoutUseCaseImpl) Clear(ctx context.Context, userID string) error {
	apmSpan, _ := apm.StartSpan(ctx, "CheckoutUseCaseImpl.Clear", "service")
	defer apmSpan.End()

	cu.KVStore.Delete(checkoutKey(userID))
	return nil
}

func checkoutKey(userID string) string {
	return "checkout:" + userID
}
