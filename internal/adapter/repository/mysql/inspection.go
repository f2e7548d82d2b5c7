package mysql

import (
	"context"

	"gorm.io/gorm"

	inspectionDomain "dealflow-backend/internal/domain/inspection"
)

type InspectionRepository struct{ db *gorm.DB }

func NewInspectionRepository(db *gorm.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

func (r *InspectionRepository) Create(ctx context.Context, i *inspectionDomain.Inspection) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InspectionRepository) ListByPropertyID(ctx context.Context, propertyNumericID uint64) ([]inspectionDomain.Inspection, error) {
	var out []inspectionDomain.Inspection
	res := r.db.WithContext(ctx).
		Where("property_id = ?", propertyNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *InspectionRepository) GetLatestByPropertyID(ctx context.Context, propertyNumericID uint64) (*inspectionDomain.Inspection, error) {
	var out inspectionDomain.Inspection
	res := r.db.WithContext(ctx).
		Where("property_id = ?", propertyNumericID).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}
