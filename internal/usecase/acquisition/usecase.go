package acquisition

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dealflow-backend/internal/domain/audit"
	"dealflow-backend/internal/domain/contract"
	"dealflow-backend/internal/domain/inspection"
	"dealflow-backend/internal/domain/property"
	"dealflow-backend/internal/domain/uow"
	"dealflow-backend/pkg/id"
)

const (
	// Days between contract generation and closing.
	closingLeadDays = 30
	// Earnest deposit as a fraction of purchase price.
	depositRate = "0.10"
)

// Usecase is the acquisition coordinator: it owns the read-compute-write
// cycle around the stage machine. Every mutation runs inside a transaction
// and persists the property with a versioned compare-and-swap; a lost race
// retries the whole cycle before giving up.
type Usecase struct {
	propRepo  property.Repository
	inspRepo  inspection.Repository
	ctrRepo   contract.Repository
	auditRepo audit.Repository
	uow       uow.UnitOfWork
	retries   int
}

func NewUsecase(props property.Repository, insps inspection.Repository, contracts contract.Repository, transitions audit.Repository, tx uow.UnitOfWork, saveRetries int) *Usecase {
	if saveRetries < 1 {
		saveRetries = 3
	}
	return &Usecase{propRepo: props, inspRepo: insps, ctrRepo: contracts, auditRepo: transitions, uow: tx, retries: saveRetries}
}

func (u *Usecase) Create(ctx context.Context, in CreatePropertyInput) (*PropertyDTO, error) {
	if strings.TrimSpace(in.Address) == "" {
		return nil, &property.ValidationError{Field: "address", Message: "must not be empty"}
	}

	stage := property.StageInitial
	if in.RequireDocuments {
		stage = property.StageDocumentsPending
	}
	p := &property.Property{
		PropertyID:     id.NewID32(),
		Address:        strings.TrimSpace(in.Address),
		TitleStatus:    property.TitleOther,
		Stage:          stage,
		Status:         property.StatusLabel(stage),
		StageUpdatedAt: time.Now().UTC(),
		Version:        1,
	}
	if err := u.propRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPropertyDTO(p), nil
}

func (u *Usecase) Get(ctx context.Context, propertyID string) (*PropertyDTO, error) {
	p, err := u.loadProperty(ctx, u.propRepo, propertyID)
	if err != nil {
		return nil, err
	}
	return toPropertyDTO(p), nil
}

func (u *Usecase) List(ctx context.Context) ([]PropertyDTO, error) {
	props, err := u.propRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PropertyDTO, 0, len(props))
	for i := range props {
		out = append(out, *toPropertyDTO(&props[i]))
	}
	return out, nil
}

func (u *Usecase) ConfirmDocuments(ctx context.Context, propertyID string) (*DecisionDTO, error) {
	return u.advance(ctx, propertyID, property.DocumentsConfirmed{}, nil)
}

func (u *Usecase) SubmitPrices(ctx context.Context, propertyID string, in SubmitPricesInput) (*DecisionDTO, error) {
	ev := property.PricesSubmitted{AskingPrice: in.AskingPrice, MarketValue: in.MarketValue}
	return u.advance(ctx, propertyID, ev, nil)
}

func (u *Usecase) SubmitInspection(ctx context.Context, propertyID string, in SubmitInspectionInput) (*DecisionDTO, error) {
	ts, ok := property.ParseTitleStatus(in.TitleStatus)
	if !ok {
		return nil, &property.ValidationError{Field: "title_status", Message: "must be one of clean, missing, lien, other"}
	}
	ev := property.InspectionSubmitted{Defects: in.Defects, TitleStatus: ts, Notes: in.Notes}

	return u.advance(ctx, propertyID, ev, func(r uow.Repos, p *property.Property, out *property.Outcome) error {
		// The inspection row freezes the estimate; the property mirrors it.
		return r.Inspections.Create(ctx, &inspection.Inspection{
			InspectionID:   id.NewID32(),
			PropertyID:     p.ID,
			Defects:        inspection.EncodeDefects(out.PricedDefects),
			TitleStatus:    string(ts),
			RepairEstimate: out.RepairEstimate,
			Notes:          in.Notes,
		})
	})
}

func (u *Usecase) SubmitArv(ctx context.Context, propertyID string, in SubmitArvInput) (*DecisionDTO, error) {
	return u.advance(ctx, propertyID, property.ArvSubmitted{ARV: in.ARV}, nil)
}

func (u *Usecase) OverrideReview(ctx context.Context, propertyID, justification string) (*DecisionDTO, error) {
	return u.advance(ctx, propertyID, property.ReviewJustified{Reason: justification}, nil)
}

func (u *Usecase) Reject(ctx context.Context, propertyID, reason string) (*DecisionDTO, error) {
	return u.advance(ctx, propertyID, property.Rejected{Reason: reason}, nil)
}

// GenerateContract re-checks title cleanliness at contract time (a
// precondition, distinct from the stage check) and writes the contract row
// and the stage change in one transaction.
func (u *Usecase) GenerateContract(ctx context.Context, propertyID string, in GenerateContractInput) (*ContractDTO, error) {
	buyer := strings.TrimSpace(in.BuyerName)
	seller := strings.TrimSpace(in.SellerName)
	if buyer == "" {
		return nil, &property.ValidationError{Field: "buyer_name", Message: "must not be empty"}
	}
	if seller == "" {
		return nil, &property.ValidationError{Field: "seller_name", Message: "must not be empty"}
	}

	var dto *ContractDTO
	err := u.withRetry(ctx, func(r uow.Repos) error {
		p, err := u.loadProperty(ctx, r.Properties, propertyID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		out, err := property.CompleteContract(p, now)
		if err != nil {
			return err
		}
		if !p.AskingPrice.Valid {
			return &property.ValidationError{Field: "asking_price", Message: "must be recorded before contract generation"}
		}

		price := p.AskingPrice.Decimal
		deposit := price.Mul(decimal.RequireFromString(depositRate)).Round(2)
		closing := now.AddDate(0, 0, closingLeadDays).Truncate(24 * time.Hour)

		c := &contract.Contract{
			ContractID:    id.NewID32(),
			PropertyID:    p.ID,
			ContractText:  renderContractText(p, buyer, seller, price, deposit, closing),
			BuyerName:     buyer,
			SellerName:    seller,
			PurchasePrice: price.Round(2),
			DepositAmount: deposit,
			ClosingDate:   closing,
		}
		if err := r.Contracts.Create(ctx, c); err != nil {
			return err
		}
		if err := u.logTransition(ctx, r, p, "GenerateContract", out); err != nil {
			return err
		}
		if err := r.Properties.SaveVersioned(ctx, p); err != nil {
			return err
		}

		dto = &ContractDTO{
			ContractID:    c.ContractID,
			PropertyID:    p.PropertyID,
			ContractText:  c.ContractText,
			BuyerName:     c.BuyerName,
			SellerName:    c.SellerName,
			PurchasePrice: c.PurchasePrice,
			DepositAmount: c.DepositAmount,
			ClosingDate:   c.ClosingDate.Format("2006-01-02"),
			CreatedAt:     c.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) ListInspections(ctx context.Context, propertyID string) ([]InspectionDTO, error) {
	p, err := u.loadProperty(ctx, u.propRepo, propertyID)
	if err != nil {
		return nil, err
	}
	rows, err := u.inspRepo.ListByPropertyID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]InspectionDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, InspectionDTO{
			InspectionID:   row.InspectionID,
			PropertyID:     p.PropertyID,
			Defects:        inspection.DecodeDefects(row.Defects),
			TitleStatus:    row.TitleStatus,
			RepairEstimate: row.RepairEstimate.Round(2),
			Notes:          row.Notes,
			CreatedAt:      row.CreatedAt,
		})
	}
	return out, nil
}

func (u *Usecase) GetContract(ctx context.Context, propertyID string) (*ContractDTO, error) {
	p, err := u.loadProperty(ctx, u.propRepo, propertyID)
	if err != nil {
		return nil, err
	}
	c, err := u.ctrRepo.GetByPropertyID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contract.ErrNotFound
		}
		return nil, err
	}
	return &ContractDTO{
		ContractID:    c.ContractID,
		PropertyID:    p.PropertyID,
		ContractText:  c.ContractText,
		BuyerName:     c.BuyerName,
		SellerName:    c.SellerName,
		PurchasePrice: c.PurchasePrice,
		DepositAmount: c.DepositAmount,
		ClosingDate:   c.ClosingDate.Format("2006-01-02"),
		CreatedAt:     c.CreatedAt,
	}, nil
}

// GetHistory returns the append-only transition log for a property, oldest
// first.
func (u *Usecase) GetHistory(ctx context.Context, propertyID string) ([]TransitionDTO, error) {
	p, err := u.loadProperty(ctx, u.propRepo, propertyID)
	if err != nil {
		return nil, err
	}
	rows, err := u.auditRepo.ListByPropertyID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]TransitionDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, TransitionDTO{
			Event:     row.Event,
			FromStage: row.FromStage,
			ToStage:   row.ToStage,
			Decision:  row.Decision,
			Reason:    row.Reason,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

// ---- internals ----

type afterFn func(r uow.Repos, p *property.Property, out *property.Outcome) error

// advance runs one read-compute-write cycle: load, Advance, side effects,
// versioned save, audit row. A stale save restarts the whole cycle, so the
// machine always re-evaluates against fresh facts.
func (u *Usecase) advance(ctx context.Context, propertyID string, ev property.Event, after afterFn) (*DecisionDTO, error) {
	var dto *DecisionDTO
	err := u.withRetry(ctx, func(r uow.Repos) error {
		p, err := u.loadProperty(ctx, r.Properties, propertyID)
		if err != nil {
			return err
		}
		out, err := property.Advance(p, ev, time.Now().UTC())
		if err != nil {
			return err
		}
		if after != nil {
			if err := after(r, p, out); err != nil {
				return err
			}
		}
		if err := u.logTransition(ctx, r, p, ev.Name(), out); err != nil {
			return err
		}
		if err := r.Properties.SaveVersioned(ctx, p); err != nil {
			return err
		}
		dto = buildDecision(p, out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) withRetry(ctx context.Context, fn func(r uow.Repos) error) error {
	for attempt := 0; attempt < u.retries; attempt++ {
		err := u.uow.WithinTx(ctx, fn)
		if errors.Is(err, property.ErrStaleVersion) {
			continue
		}
		return err
	}
	return property.ErrConcurrentModification
}

func (u *Usecase) loadProperty(ctx context.Context, repo property.Repository, propertyID string) (*property.Property, error) {
	p, err := repo.GetByPropertyID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, property.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (u *Usecase) logTransition(ctx context.Context, r uow.Repos, p *property.Property, event string, out *property.Outcome) error {
	return r.Audit.Append(ctx, &audit.Transition{
		PropertyID: p.ID,
		Event:      event,
		FromStage:  string(out.PrevStage),
		ToStage:    string(out.NextStage),
		Decision:   string(out.Decision),
		Reason:     out.Reason,
	})
}

func buildDecision(p *property.Property, out *property.Outcome) *DecisionDTO {
	dto := &DecisionDTO{
		PropertyID: p.PropertyID,
		Decision:   string(out.Decision),
		Stage:      string(out.NextStage),
		Status:     p.Status,
	}
	if out.Eval != nil {
		dto.Rule = &RuleFigures{
			Status:    string(out.Eval.Status),
			Pass:      out.Eval.Pass,
			Threshold: round2(out.Eval.Threshold),
			TotalCost: round2(out.Eval.TotalCost),
			Margin:    round2(out.Eval.Margin),
		}
	}
	if len(out.PricedDefects) > 0 || !out.RepairEstimate.IsZero() {
		est := round2(out.RepairEstimate)
		dto.RepairEstimate = &est
		dto.PricedDefects = out.PricedDefects
	}
	return dto
}

func renderContractText(p *property.Property, buyer, seller string, price, deposit decimal.Decimal, closing time.Time) string {
	return fmt.Sprintf(
		`MOBILE HOME PURCHASE AGREEMENT

Property: %s (ref %s)
Seller:   %s
Buyer:    %s

Purchase price: $%s
Earnest deposit: $%s
Closing date:   %s

The seller agrees to convey the above property to the buyer free and clear
of liens, with a clean title, for the purchase price stated. The earnest
deposit is due on signing and is credited toward the purchase price at
closing. Balance of $%s is due at closing.`,
		p.Address, p.PropertyID,
		seller, buyer,
		price.StringFixed(2),
		deposit.StringFixed(2),
		closing.Format("January 2, 2006"),
		price.Sub(deposit).StringFixed(2),
	)
}
