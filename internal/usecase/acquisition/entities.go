package acquisition

import (
	"time"

	"github.com/shopspring/decimal"

	"dealflow-backend/internal/domain/property"
)

type CreatePropertyInput struct {
	Address string `json:"address"`
	// When true the property starts in documents_pending instead of initial.
	RequireDocuments bool `json:"require_documents"`
}

type SubmitPricesInput struct {
	AskingPrice decimal.Decimal `json:"asking_price"`
	MarketValue decimal.Decimal `json:"market_value"`
}

type SubmitInspectionInput struct {
	Defects     []string `json:"defects"`
	TitleStatus string   `json:"title_status"`
	Notes       string   `json:"notes"`
}

type SubmitArvInput struct {
	ARV decimal.Decimal `json:"arv"`
}

type GenerateContractInput struct {
	BuyerName  string `json:"buyer_name"`
	SellerName string `json:"seller_name"`
}

// PropertyDTO is the persisted shape collaborating systems (chat agent, UI)
// read; field names are stable. Monetary fields are nil until supplied and
// rounded to 2dp for display.
type PropertyDTO struct {
	PropertyID     string           `json:"id"`
	Address        string           `json:"address"`
	AskingPrice    *decimal.Decimal `json:"asking_price"`
	MarketValue    *decimal.Decimal `json:"market_value"`
	ARV            *decimal.Decimal `json:"arv"`
	RepairEstimate *decimal.Decimal `json:"repair_estimate"`
	TitleStatus    string           `json:"title_status"`
	Status         string           `json:"status"`
	Stage          string           `json:"acquisition_stage"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// RuleFigures carries the threshold/margin arithmetic back to the caller for
// display, 2dp-rounded.
type RuleFigures struct {
	Status    string          `json:"status"`
	Pass      bool            `json:"pass"`
	Threshold decimal.Decimal `json:"threshold"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Margin    decimal.Decimal `json:"margin"`
}

// DecisionDTO is the result of every coordinator mutation: what the machine
// decided, where the property landed, and the figures it computed.
type DecisionDTO struct {
	PropertyID     string           `json:"property_id"`
	Decision       string           `json:"decision"`
	Stage          string           `json:"acquisition_stage"`
	Status         string           `json:"status"`
	Rule           *RuleFigures     `json:"rule,omitempty"`
	RepairEstimate *decimal.Decimal `json:"repair_estimate,omitempty"`
	PricedDefects  []string         `json:"priced_defects,omitempty"`
}

type InspectionDTO struct {
	InspectionID   string          `json:"id"`
	PropertyID     string          `json:"property_id"`
	Defects        []string        `json:"defects"`
	TitleStatus    string          `json:"title_status"`
	RepairEstimate decimal.Decimal `json:"repair_estimate"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ContractDTO struct {
	ContractID    string          `json:"id"`
	PropertyID    string          `json:"property_id"`
	ContractText  string          `json:"contract_text"`
	BuyerName     string          `json:"buyer_name"`
	SellerName    string          `json:"seller_name"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	ClosingDate   string          `json:"closing_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

type TransitionDTO struct {
	Event     string    `json:"event"`
	FromStage string    `json:"from_stage"`
	ToStage   string    `json:"to_stage"`
	Decision  string    `json:"decision"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

func nullMoney(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	r := round2(d.Decimal)
	return &r
}

func toPropertyDTO(p *property.Property) *PropertyDTO {
	return &PropertyDTO{
		PropertyID:     p.PropertyID,
		Address:        p.Address,
		AskingPrice:    nullMoney(p.AskingPrice),
		MarketValue:    nullMoney(p.MarketValue),
		ARV:            nullMoney(p.ARV),
		RepairEstimate: nullMoney(p.RepairEstimate),
		TitleStatus:    property.DisplayTitleStatus(p.TitleStatus),
		Status:         p.Status,
		Stage:          string(p.Stage),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
