package contract

import "context"

type Repository interface {
	// Create a contract (DB uniqueness ensures at most one per property)
	Create(ctx context.Context, c *Contract) error
	GetByPropertyID(ctx context.Context, propertyNumericID uint64) (*Contract, error)
	GetByContractID(ctx context.Context, contractID string) (*Contract, error)
}
