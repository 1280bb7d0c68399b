package services

import (
	"testing"
	"time"

	"rental-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testOwnerID = uint(1)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// an in-memory sqlite database exists per connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Owner{},
		&models.Building{},
		&models.Room{},
		&models.Tenant{},
		&models.Service{},
		&models.Contract{},
		&models.Invoice{},
	))
	return db
}

type fixture struct {
	db        *gorm.DB
	rooms     *RoomService
	tenants   *TenantService
	catalog   *CatalogService
	contracts *ContractService
	invoices  *InvoiceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)
	rooms := NewRoomService(db)
	tenants := NewTenantService(db)
	catalog := NewCatalogService(db)
	contracts := NewContractService(db, rooms, tenants, catalog)
	invoices := NewInvoiceService(db, contracts)
	return &fixture{
		db:        db,
		rooms:     rooms,
		tenants:   tenants,
		catalog:   catalog,
		contracts: contracts,
		invoices:  invoices,
	}
}

func (f *fixture) seedRoom(t *testing.T, number string, cfg models.PricingConfiguration) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomNumber: number,
		Pricing:    datatypes.NewJSONType(cfg),
	}
	require.NoError(t, f.rooms.Create(testOwnerID, room))
	return room
}

func (f *fixture) seedTenant(t *testing.T, name string) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{
		FullName: name,
		Phone:    "0900000001",
		IDCard:   "ID-" + name,
	}
	require.NoError(t, f.tenants.Create(testOwnerID, tenant))
	return tenant
}

func (f *fixture) reloadRoom(t *testing.T, id uint) *models.Room {
	t.Helper()
	room, err := f.rooms.FindByID(testOwnerID, id)
	require.NoError(t, err)
	return room
}

func (f *fixture) reloadTenant(t *testing.T, id uint) *models.Tenant {
	t.Helper()
	tenant, err := f.tenants.FindByID(testOwnerID, id)
	require.NoError(t, err)
	return tenant
}

func ptr[T any](v T) *T { return &v }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
