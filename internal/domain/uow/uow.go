package uow

import (
	"context"

	"dealflow-backend/internal/domain/audit"
	"dealflow-backend/internal/domain/contract"
	"dealflow-backend/internal/domain/inspection"
	"dealflow-backend/internal/domain/property"
)

type Repos struct {
	Properties  property.Repository
	Inspections inspection.Repository
	Contracts   contract.Repository
	Audit       audit.Repository
}

// UnitOfWork scopes a read-compute-write cycle to a single transaction so a
// property row and its child inspection/contract rows commit or roll back
// together.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
