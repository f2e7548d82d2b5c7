package contract

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("contract not found")

// Contract is the immutable generated purchase agreement, at most one per
// property (DB uniqueness enforces it).
type Contract struct {
	ID         uint64 `gorm:"primaryKey;column:id"`
	ContractID string `gorm:"column:contract_id;type:char(32);not null;uniqueIndex:ux_contracts_contract_id"`
	// FK to properties.id (numeric)
	PropertyID    uint64          `gorm:"column:property_id;not null;uniqueIndex:ux_contracts_property"`
	ContractText  string          `gorm:"column:contract_text;type:text;not null"`
	BuyerName     string          `gorm:"column:buyer_name;size:255;not null"`
	SellerName    string          `gorm:"column:seller_name;size:255;not null"`
	PurchasePrice decimal.Decimal `gorm:"column:purchase_price;type:decimal(18,2);not null"`
	DepositAmount decimal.Decimal `gorm:"column:deposit_amount;type:decimal(18,2);not null"`
	ClosingDate   time.Time       `gorm:"column:closing_date;type:date;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Contract) TableName() string { return "contracts" }
