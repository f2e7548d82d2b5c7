package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	auditDomain "dealflow-backend/internal/domain/audit"
	contractDomain "dealflow-backend/internal/domain/contract"
	inspectionDomain "dealflow-backend/internal/domain/inspection"
	domain "dealflow-backend/internal/domain/property"
	"dealflow-backend/internal/domain/uow"
	"dealflow-backend/internal/testutil/propertymock"
	"dealflow-backend/internal/testutil/uowmock"
	uc "dealflow-backend/internal/usecase/acquisition"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// no-op repos shared by handler tests; the handler tests wire a real
// usecase over mocks.

type nopInspRepo struct{}

func (nopInspRepo) Create(ctx context.Context, i *inspectionDomain.Inspection) error { return nil }
func (nopInspRepo) ListByPropertyID(ctx context.Context, pid uint64) ([]inspectionDomain.Inspection, error) {
	return nil, nil
}
func (nopInspRepo) GetLatestByPropertyID(ctx context.Context, pid uint64) (*inspectionDomain.Inspection, error) {
	return nil, gorm.ErrRecordNotFound
}

type nopContractRepo struct{}

func (nopContractRepo) Create(ctx context.Context, c *contractDomain.Contract) error { return nil }
func (nopContractRepo) GetByPropertyID(ctx context.Context, pid uint64) (*contractDomain.Contract, error) {
	return nil, gorm.ErrRecordNotFound
}
func (nopContractRepo) GetByContractID(ctx context.Context, id string) (*contractDomain.Contract, error) {
	return nil, gorm.ErrRecordNotFound
}

type nopAuditRepo struct{}

func (nopAuditRepo) Append(ctx context.Context, tr *auditDomain.Transition) error { return nil }
func (nopAuditRepo) ListByPropertyID(ctx context.Context, pid uint64) ([]auditDomain.Transition, error) {
	return nil, nil
}

func newDealHandler(t *testing.T, prop *domain.Property) (*DealHandler, *propertymock.Repo) {
	t.Helper()
	props := &propertymock.Repo{
		GetByPropertyIDFn: func(ctx context.Context, pid string) (*domain.Property, error) {
			if prop == nil || pid != prop.PropertyID {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *prop
			return &cp, nil
		},
		SaveVersionedFn: func(ctx context.Context, p *domain.Property) error {
			p.Version++
			*prop = *p
			return nil
		},
	}
	repos := uow.Repos{Properties: props, Inspections: nopInspRepo{}, Contracts: nopContractRepo{}, Audit: nopAuditRepo{}}
	usecase := uc.NewUsecase(props, nopInspRepo{}, nopContractRepo{}, nopAuditRepo{}, uowmock.Passthrough(repos), 3)
	return NewDealHandler(usecase), props
}

func post(e *echo.Echo, target string, body any, paramName, paramValue string) (echo.Context, *httptest.ResponseRecorder) {
	var rd *bytes.Reader
	if body != nil {
		rd = mustJSON(body)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(stdhttp.MethodPost, target, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(paramName)
	c.SetParamValues(paramValue)
	return c, rec
}

func seedProperty(stage domain.Stage) *domain.Property {
	p := &domain.Property{
		ID:          7,
		PropertyID:  strings.Repeat("a", 32),
		Address:     "12 Pinewood Park Lot 4",
		TitleStatus: domain.TitleOther,
		Stage:       stage,
		Status:      domain.StatusLabel(stage),
		Version:     1,
	}
	return p
}

// -------- tests --------

func TestSubmitPrices_Pass(t *testing.T) {
	e := newEchoWithValidator()
	prop := seedProperty(domain.StageInitial)
	h, _ := newDealHandler(t, prop)

	c, rec := post(e, "/properties/:property_id/prices", map[string]any{
		"asking_price": 10000,
		"market_value": 40000,
	}, "property_id", prop.PropertyID)

	if err := h.SubmitPrices(c); err != nil {
		t.Fatalf("SubmitPrices: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Decision string `json:"decision"`
		Stage    string `json:"acquisition_stage"`
		Rule     struct {
			Threshold decimal.Decimal `json:"threshold"`
		} `json:"rule"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Decision != "proceed" || out.Stage != "passed_70_rule" {
		t.Fatalf("got %s/%s", out.Decision, out.Stage)
	}
	if !out.Rule.Threshold.Equal(decimal.NewFromInt(28000)) {
		t.Fatalf("threshold = %s", out.Rule.Threshold)
	}
}

func TestSubmitPrices_BlockedIs200(t *testing.T) {
	e := newEchoWithValidator()
	prop := seedProperty(domain.StageInitial)
	h, _ := newDealHandler(t, prop)

	c, rec := post(e, "/properties/:property_id/prices", map[string]any{
		"asking_price": 35000,
		"market_value": 40000,
	}, "property_id", prop.PropertyID)

	if err := h.SubmitPrices(c); err != nil {
		t.Fatalf("SubmitPrices: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("a blocked decision is a successful outcome, status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"decision":"blocked"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestSubmitPrices_ValidationFailure(t *testing.T) {
	e := newEchoWithValidator()
	prop := seedProperty(domain.StageInitial)
	h, _ := newDealHandler(t, prop)

	// missing market_value, 3 decimal places on asking_price
	c, rec := post(e, "/properties/:property_id/prices", map[string]any{
		"asking_price": 10000.123,
	}, "property_id", prop.PropertyID)

	if err := h.SubmitPrices(c); err != nil {
		t.Fatalf("SubmitPrices: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var out ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if !containsFieldMsg(out.Details, "MarketValue", "required") {
		t.Fatalf("details = %+v", out.Details)
	}
	if !containsFieldMsg(out.Details, "AskingPrice", "decimal places") {
		t.Fatalf("details = %+v", out.Details)
	}
}

func TestSubmitArv_WrongStageIs409(t *testing.T) {
	e := newEchoWithValidator()
	prop := seedProperty(domain.StageInitial)
	h, _ := newDealHandler(t, prop)

	c, rec := post(e, "/properties/:property_id/arv", map[string]any{
		"arv": 60000,
	}, "property_id", prop.PropertyID)

	if err := h.SubmitArv(c); err != nil {
		t.Fatalf("SubmitArv: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "inspection_done") {
		t.Fatalf("violation must name the required stage, body = %s", rec.Body.String())
	}
}

func TestSubmitPrices_UnknownPropertyIs404(t *testing.T) {
	e := newEchoWithValidator()
	h, _ := newDealHandler(t, nil)

	c, rec := post(e, "/properties/:property_id/prices", map[string]any{
		"asking_price": 10000,
		"market_value": 40000,
	}, "property_id", strings.Repeat("f", 32))

	if err := h.SubmitPrices(c); err != nil {
		t.Fatalf("SubmitPrices: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGenerateContract_DirtyTitleIs412(t *testing.T) {
	e := newEchoWithValidator()
	prop := seedProperty(domain.StagePassed80Rule)
	prop.TitleStatus = domain.TitleLien
	prop.AskingPrice = decimal.NewNullDecimal(decimal.NewFromInt(10000))
	h, _ := newDealHandler(t, prop)

	c, rec := post(e, "/properties/:property_id/contract", map[string]any{
		"buyer_name":  "Dealflow Homes LLC",
		"seller_name": "J. Martinez",
	}, "property_id", prop.PropertyID)

	if err := h.GenerateContract(c); err != nil {
		t.Fatalf("GenerateContract: %v", err)
	}
	if rec.Code != stdhttp.StatusPreconditionFailed {
		t.Fatalf("status = %d, want 412", rec.Code)
	}
}

func TestOverrideReview_MissingJustificationIs422(t *testing.T) {
	e := newEchoWithValidator()
	prop := seedProperty(domain.StageReviewRequired)
	h, _ := newDealHandler(t, prop)

	c, rec := post(e, "/properties/:property_id/review/override", map[string]any{}, "property_id", prop.PropertyID)

	if err := h.OverrideReview(c); err != nil {
		t.Fatalf("OverrideReview: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}
