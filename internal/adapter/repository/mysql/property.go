package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	propertyDomain "dealflow-backend/internal/domain/property"
)

type PropertyRepository struct{ db *gorm.DB }

func NewPropertyRepository(db *gorm.DB) *PropertyRepository { return &PropertyRepository{db: db} }

func (r *PropertyRepository) Create(ctx context.Context, p *propertyDomain.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PropertyRepository) GetByPropertyID(ctx context.Context, propertyID string) (*propertyDomain.Property, error) {
	var out propertyDomain.Property
	res := r.db.WithContext(ctx).Where("property_id = ?", propertyID).First(&out)
	return &out, res.Error
}

func (r *PropertyRepository) List(ctx context.Context) ([]propertyDomain.Property, error) {
	var out []propertyDomain.Property
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

// SaveVersioned is the optimistic-concurrency write: the UPDATE only lands
// when the row still carries the version we read. Zero rows affected means
// someone else won the race; the caller retries the whole cycle.
func (r *PropertyRepository) SaveVersioned(ctx context.Context, p *propertyDomain.Property) error {
	prev := p.Version
	res := r.db.WithContext(ctx).
		Model(&propertyDomain.Property{}).
		Where("id = ? AND version = ?", p.ID, prev).
		Updates(map[string]any{
			"address":           p.Address,
			"asking_price":      p.AskingPrice,
			"market_value":      p.MarketValue,
			"arv":               p.ARV,
			"repair_estimate":   p.RepairEstimate,
			"title_status":      p.TitleStatus,
			"status":            p.Status,
			"acquisition_stage": p.Stage,
			"stage_updated_at":  p.StageUpdatedAt,
			"version":           prev + 1,
			"updated_at":        time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return propertyDomain.ErrStaleVersion
	}
	p.Version = prev + 1
	return nil
}
