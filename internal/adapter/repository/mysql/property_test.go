package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domain "dealflow-backend/internal/domain/property"
	"dealflow-backend/pkg/id"
)

// --- SQLite-friendly schemas only for tests (no ENUM) ---

type propertySQLite struct {
	ID             uint64         `gorm:"primaryKey;column:id"`
	PropertyID     string         `gorm:"size:32;column:property_id"`
	Address        string         `gorm:"column:address"`
	AskingPrice    *string        `gorm:"column:asking_price"`
	MarketValue    *string        `gorm:"column:market_value"`
	ARV            *string        `gorm:"column:arv"`
	RepairEstimate *string        `gorm:"column:repair_estimate"`
	TitleStatus    string         `gorm:"type:text;column:title_status"` // no enum
	Status         string         `gorm:"column:status"`
	Stage          string         `gorm:"type:text;column:acquisition_stage"` // no enum
	StageUpdatedAt time.Time      `gorm:"column:stage_updated_at"`
	Version        uint64         `gorm:"column:version"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy      string         `gorm:"column:deleted_by"`
}

func (propertySQLite) TableName() string { return "properties" }

type inspectionSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	InspectionID   string    `gorm:"size:32;column:inspection_id"`
	PropertyID     uint64    `gorm:"column:property_id"`
	Defects        string    `gorm:"column:defects"`
	TitleStatus    string    `gorm:"column:title_status"`
	RepairEstimate string    `gorm:"column:repair_estimate"`
	Notes          string    `gorm:"column:notes"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (inspectionSQLite) TableName() string { return "inspections" }

type contractSQLite struct {
	ID            uint64    `gorm:"primaryKey;column:id"`
	ContractID    string    `gorm:"size:32;column:contract_id"`
	PropertyID    uint64    `gorm:"column:property_id;uniqueIndex"`
	ContractText  string    `gorm:"column:contract_text"`
	BuyerName     string    `gorm:"column:buyer_name"`
	SellerName    string    `gorm:"column:seller_name"`
	PurchasePrice string    `gorm:"column:purchase_price"`
	DepositAmount string    `gorm:"column:deposit_amount"`
	ClosingDate   time.Time `gorm:"column:closing_date"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (contractSQLite) TableName() string { return "contracts" }

type transitionSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	PropertyID uint64    `gorm:"column:property_id"`
	Event      string    `gorm:"column:event"`
	FromStage  string    `gorm:"column:from_stage"`
	ToStage    string    `gorm:"column:to_stage"`
	Decision   string    `gorm:"column:decision"`
	Reason     string    `gorm:"column:reason"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (transitionSQLite) TableName() string { return "stage_transitions" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&propertySQLite{}, &inspectionSQLite{}, &contractSQLite{}, &transitionSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeProperty(propertyID string) *domain.Property {
	return &domain.Property{
		PropertyID:     propertyID,
		Address:        "12 Pinewood Park Lot 4",
		TitleStatus:    domain.TitleOther,
		Stage:          domain.StageInitial,
		Status:         domain.StatusLabel(domain.StageInitial),
		StageUpdatedAt: time.Now().UTC(),
		Version:        1,
	}
}

func TestPropertyCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	pid := id.NewID32()
	p := makeProperty(pid)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByPropertyID(ctx, pid)
	if err != nil {
		t.Fatalf("GetByPropertyID: %v", err)
	}
	if got.PropertyID != pid || got.Stage != domain.StageInitial {
		t.Fatalf("got %+v", got)
	}
	if got.AskingPrice.Valid {
		t.Fatalf("asking price must be NULL until supplied")
	}
}

func TestPropertyGet_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewPropertyRepository(db)

	_, err := repo.GetByPropertyID(context.Background(), id.NewID32())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestSaveVersioned_BumpsVersionAndPersistsFacts(t *testing.T) {
	db := openTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	p := makeProperty(id.NewID32())
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	p.AskingPrice = decimal.NewNullDecimal(decimal.NewFromInt(10000))
	p.MarketValue = decimal.NewNullDecimal(decimal.NewFromInt(40000))
	p.Stage = domain.StagePassed70Rule
	p.Status = domain.StatusLabel(p.Stage)
	if err := repo.SaveVersioned(ctx, p); err != nil {
		t.Fatalf("SaveVersioned: %v", err)
	}
	if p.Version != 2 {
		t.Fatalf("version = %d, want 2", p.Version)
	}

	got, err := repo.GetByPropertyID(ctx, p.PropertyID)
	if err != nil {
		t.Fatalf("GetByPropertyID: %v", err)
	}
	if got.Stage != domain.StagePassed70Rule || got.Version != 2 {
		t.Fatalf("stage/version = %s/%d", got.Stage, got.Version)
	}
	if !got.AskingPrice.Valid || !got.AskingPrice.Decimal.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("asking price not persisted: %+v", got.AskingPrice)
	}
}

func TestSaveVersioned_StaleVersionLosesRace(t *testing.T) {
	db := openTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	p := makeProperty(id.NewID32())
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Two readers load the same version.
	a, _ := repo.GetByPropertyID(ctx, p.PropertyID)
	b, _ := repo.GetByPropertyID(ctx, p.PropertyID)

	a.Stage = domain.StagePassed70Rule
	a.Status = domain.StatusLabel(a.Stage)
	if err := repo.SaveVersioned(ctx, a); err != nil {
		t.Fatalf("first save: %v", err)
	}

	b.Stage = domain.StageRejected
	b.Status = domain.StatusLabel(b.Stage)
	if err := repo.SaveVersioned(ctx, b); !errors.Is(err, domain.ErrStaleVersion) {
		t.Fatalf("second save err = %v, want ErrStaleVersion", err)
	}

	// The losing write must not have landed.
	got, _ := repo.GetByPropertyID(ctx, p.PropertyID)
	if got.Stage != domain.StagePassed70Rule {
		t.Fatalf("stage = %s, stale write leaked through", got.Stage)
	}
}

func TestPropertyList(t *testing.T) {
	db := openTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, makeProperty(id.NewID32())); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}
	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
}
