package mysql

import (
	"context"

	"gorm.io/gorm"

	auditDomain "dealflow-backend/internal/domain/audit"
)

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Append(ctx context.Context, t *auditDomain.Transition) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *AuditRepository) ListByPropertyID(ctx context.Context, propertyNumericID uint64) ([]auditDomain.Transition, error) {
	var out []auditDomain.Transition
	res := r.db.WithContext(ctx).
		Where("property_id = ?", propertyNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
