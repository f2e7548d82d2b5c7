package property

import "context"

type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByPropertyID(ctx context.Context, propertyID string) (*Property, error)
	// SaveVersioned persists p only if the stored row still carries
	// p.Version, bumping the version on success. A lost race returns
	// ErrStaleVersion.
	SaveVersioned(ctx context.Context, p *Property) error
	List(ctx context.Context) ([]Property, error)
}
