package mysql

import (
	"context"

	"gorm.io/gorm"

	contractDomain "dealflow-backend/internal/domain/contract"
)

type ContractRepository struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) *ContractRepository { return &ContractRepository{db: db} }

func (r *ContractRepository) Create(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractRepository) GetByPropertyID(ctx context.Context, propertyNumericID uint64) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Where("property_id = ?", propertyNumericID).
		First(&out)
	return &out, res.Error
}

func (r *ContractRepository) GetByContractID(ctx context.Context, contractID string) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		First(&out)
	return &out, res.Error
}
