package services

import (
	"testing"

	"rental-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestRoomCreate(t *testing.T) {
	f := newFixture(t)

	t.Run("assigns code and default status", func(t *testing.T) {
		room := f.seedRoom(t, "301", longTermConfig())
		assert.Regexp(t, `^RM-[0-9A-Z]+-[0-9]{4,5}$`, room.RoomCode)
		assert.Equal(t, models.RoomStatusAvailable, room.Status)
	})

	t.Run("room number required", func(t *testing.T) {
		room := &models.Room{RoomNumber: "   ", Pricing: datatypes.NewJSONType(longTermConfig())}
		assert.ErrorIs(t, f.rooms.Create(testOwnerID, room), ErrRoomNumberRequired)
	})

	t.Run("pricing template validated", func(t *testing.T) {
		room := &models.Room{
			RoomNumber: "302",
			Pricing: datatypes.NewJSONType(models.PricingConfiguration{
				RoomType: models.RoomTypeLongTerm, // missing long-term payload
			}),
		}
		assert.ErrorIs(t, f.rooms.Create(testOwnerID, room), ErrLongTermConfigRequired)
	})

	t.Run("duplicate number within owner rejected", func(t *testing.T) {
		room := &models.Room{RoomNumber: "301", Pricing: datatypes.NewJSONType(longTermConfig())}
		assert.ErrorIs(t, f.rooms.Create(testOwnerID, room), ErrRoomNumberTaken)
	})

	t.Run("same number under another owner allowed", func(t *testing.T) {
		room := &models.Room{RoomNumber: "301", Pricing: datatypes.NewJSONType(longTermConfig())}
		require.NoError(t, f.rooms.Create(testOwnerID+1, room))
	})
}

func TestRoomStatusGuard(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "303", longTermConfig())

	t.Run("maintenance toggle allowed", func(t *testing.T) {
		updated, err := f.rooms.Update(testOwnerID, room.ID, RoomPatch{Status: ptr(models.RoomStatusMaintenance)})
		require.NoError(t, err)
		assert.Equal(t, models.RoomStatusMaintenance, updated.Status)

		_, err = f.rooms.Update(testOwnerID, room.ID, RoomPatch{Status: ptr(models.RoomStatusAvailable)})
		require.NoError(t, err)
	})

	t.Run("lifecycle-owned statuses rejected from the api", func(t *testing.T) {
		_, err := f.rooms.Update(testOwnerID, room.ID, RoomPatch{Status: ptr(models.RoomStatusOccupied)})
		assert.ErrorIs(t, err, ErrRoomStatusLocked)
	})

	t.Run("occupied room cannot be edited out of its status or deleted", func(t *testing.T) {
		tenant := f.seedTenant(t, "Occupant")
		spec := draftSpec(room.ID, tenant.ID)
		spec.Status = models.ContractStatusActive
		_, err := f.contracts.Create(testOwnerID, spec)
		require.NoError(t, err)

		_, err = f.rooms.Update(testOwnerID, room.ID, RoomPatch{Status: ptr(models.RoomStatusAvailable)})
		assert.ErrorIs(t, err, ErrRoomStatusLocked)

		assert.ErrorIs(t, f.rooms.Delete(testOwnerID, room.ID), ErrRoomNotDeletable)
	})
}

func TestRoomBuildingCounter(t *testing.T) {
	f := newFixture(t)
	building := &models.Building{Name: "Block A"}
	require.NoError(t, NewBuildingService(f.db).Create(testOwnerID, building))

	room := &models.Room{
		RoomNumber: "304",
		BuildingID: &building.ID,
		Pricing:    datatypes.NewJSONType(longTermConfig()),
	}
	require.NoError(t, f.rooms.Create(testOwnerID, room))

	var got models.Building
	require.NoError(t, f.db.First(&got, building.ID).Error)
	assert.Equal(t, 1, got.RoomCount)

	require.NoError(t, f.rooms.Delete(testOwnerID, room.ID))
	require.NoError(t, f.db.First(&got, building.ID).Error)
	assert.Equal(t, 0, got.RoomCount)
}

func TestTenantGuards(t *testing.T) {
	f := newFixture(t)

	t.Run("create requires contact fields", func(t *testing.T) {
		err := f.tenants.Create(testOwnerID, &models.Tenant{FullName: "No Contact"})
		assert.ErrorIs(t, err, ErrIncompleteNewTenant)
	})

	t.Run("lifecycle-owned statuses rejected from the api", func(t *testing.T) {
		tenant := f.seedTenant(t, "Guarded")
		_, err := f.tenants.Update(testOwnerID, tenant.ID, TenantPatch{Status: ptr(models.TenantStatusRenting)})
		assert.ErrorIs(t, err, ErrTenantStatusLocked)
	})

	t.Run("tenant attached to a room cannot be deleted", func(t *testing.T) {
		room := f.seedRoom(t, "305", longTermConfig())
		tenant := f.seedTenant(t, "Attached")
		_, err := f.contracts.Create(testOwnerID, draftSpec(room.ID, tenant.ID))
		require.NoError(t, err)

		assert.ErrorIs(t, f.tenants.Delete(testOwnerID, tenant.ID), ErrTenantHasRoom)
	})
}

func TestCatalogValidation(t *testing.T) {
	f := newFixture(t)

	t.Run("fixed service needs a positive price and drops tiers", func(t *testing.T) {
		err := f.catalog.Create(testOwnerID, &models.Service{
			Name: "Wifi", PricingType: models.ServicePricingFixed, Price: 0,
		})
		assert.ErrorIs(t, err, ErrServicePriceInvalid)

		service := &models.Service{
			Name:        "Wifi",
			PricingType: models.ServicePricingFixed,
			Price:       100000,
			Tiers:       []models.PriceTier{tier(0, -1, 1)},
		}
		require.NoError(t, f.catalog.Create(testOwnerID, service))
		assert.Empty(t, service.Tiers)
	})

	t.Run("metered service needs a valid tier table and drops the unit price", func(t *testing.T) {
		err := f.catalog.Create(testOwnerID, &models.Service{
			Name: "Water", PricingType: models.ServicePricingMetered,
		})
		var tierErr *TierError
		assert.ErrorAs(t, err, &tierErr)

		service := &models.Service{
			Name:        "Water",
			PricingType: models.ServicePricingMetered,
			Price:       12345,
			Tiers:       []models.PriceTier{tier(0, 10, 15000), tier(10, -1, 20000)},
		}
		require.NoError(t, f.catalog.Create(testOwnerID, service))
		assert.Zero(t, service.Price)
	})

	t.Run("unknown pricing type rejected", func(t *testing.T) {
		err := f.catalog.Create(testOwnerID, &models.Service{Name: "X", PricingType: "HOURLY"})
		assert.ErrorIs(t, err, ErrServicePricingTypeInvalid)
	})
}

func TestBuildingDeleteGuard(t *testing.T) {
	f := newFixture(t)
	buildings := NewBuildingService(f.db)

	building := &models.Building{Name: "Block B"}
	require.NoError(t, buildings.Create(testOwnerID, building))

	room := &models.Room{
		RoomNumber: "306",
		BuildingID: &building.ID,
		Pricing:    datatypes.NewJSONType(longTermConfig()),
	}
	require.NoError(t, f.rooms.Create(testOwnerID, room))

	assert.ErrorIs(t, buildings.Delete(testOwnerID, building.ID), ErrBuildingHasRooms)

	require.NoError(t, f.rooms.Delete(testOwnerID, room.ID))
	require.NoError(t, buildings.Delete(testOwnerID, building.ID))
}
