package inspection

import "context"

type Repository interface {
	Create(ctx context.Context, i *Inspection) error
	ListByPropertyID(ctx context.Context, propertyNumericID uint64) ([]Inspection, error)
	// Latest inspection by creation order, ErrRecordNotFound when none exist.
	GetLatestByPropertyID(ctx context.Context, propertyNumericID uint64) (*Inspection, error)
}
