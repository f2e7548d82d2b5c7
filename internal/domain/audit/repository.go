package audit

import "context"

type Repository interface {
	Append(ctx context.Context, t *Transition) error
	ListByPropertyID(ctx context.Context, propertyNumericID uint64) ([]Transition, error)
}
