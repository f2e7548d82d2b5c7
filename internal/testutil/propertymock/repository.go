package propertymock

import (
	"context"

	domain "dealflow-backend/internal/domain/property"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies property.Repository. Fill
// in only the function fields a test needs.
type Repo struct {
	CreateFn          func(ctx context.Context, p *domain.Property) error
	GetByPropertyIDFn func(ctx context.Context, propertyID string) (*domain.Property, error)
	SaveVersionedFn   func(ctx context.Context, p *domain.Property) error
	ListFn            func(ctx context.Context) ([]domain.Property, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Property) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPropertyID(ctx context.Context, propertyID string) (*domain.Property, error) {
	if m.GetByPropertyIDFn != nil {
		return m.GetByPropertyIDFn(ctx, propertyID)
	}
	return nil, context.Canceled
}

func (m *Repo) SaveVersioned(ctx context.Context, p *domain.Property) error {
	if m.SaveVersionedFn != nil {
		return m.SaveVersionedFn(ctx, p)
	}
	return nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Property, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
