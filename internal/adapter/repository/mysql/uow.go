package mysql

import (
	"context"

	"gorm.io/gorm"

	"dealflow-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// WithinTx binds all four repositories to one transaction so a property
// update and its child inspection/contract/audit rows commit together or
// not at all.
func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Properties:  &PropertyRepository{db: tx},
			Inspections: &InspectionRepository{db: tx},
			Contracts:   &ContractRepository{db: tx},
			Audit:       &AuditRepository{db: tx},
		}
		return fn(r)
	})
}
