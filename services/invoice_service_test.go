package services

import (
	"testing"
	"time"

	"rental-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedActiveContract creates an ACTIVE long-term contract starting 2026-01-01
// with the standard long-term config (rent 3,000,000; electricity 3,500/unit;
// water 15,000/unit; initial indices 100 and 50; due day 5).
func seedActiveContract(t *testing.T, f *fixture, roomNumber string, charges []models.ServiceCharge) *models.Contract {
	t.Helper()
	room := f.seedRoom(t, roomNumber, longTermConfig())
	tenant := f.seedTenant(t, "Tenant "+roomNumber)

	spec := draftSpec(room.ID, tenant.ID)
	spec.Status = models.ContractStatusActive
	spec.StartDate = ptr(date(2026, time.January, 1))
	spec.ServiceCharges = charges
	contract, err := f.contracts.Create(testOwnerID, spec)
	require.NoError(t, err)
	return contract
}

func TestInvoiceCreateComputesAmounts(t *testing.T) {
	f := newFixture(t)
	f.invoices.Clock = func() time.Time { return date(2026, time.January, 20) }
	contract := seedActiveContract(t, f, "201", nil)

	invoice, err := f.invoices.Create(testOwnerID, InvoiceSpec{
		ContractID:           contract.ID,
		Month:                1,
		Year:                 2026,
		CurrentElectricIndex: 150,
		CurrentWaterIndex:    50,
		ServiceCharges:       ptr([]models.ServiceCharge{{Name: "Cleaning", Amount: 50000}}),
	})
	require.NoError(t, err)

	// previous indices fall back to the contract's initial readings
	assert.Equal(t, 100.0, invoice.PreviousElectricIndex)
	assert.Equal(t, 50.0, invoice.PreviousWaterIndex)

	assert.Equal(t, 3000000.0, invoice.RentAmount)
	assert.Equal(t, 175000.0, invoice.ElectricityAmount) // 50 units x 3,500
	assert.Equal(t, 0.0, invoice.WaterAmount)
	assert.Equal(t, 50000.0, invoice.ServiceAmount)
	assert.Equal(t, 3225000.0, invoice.TotalAmount)
	assert.Equal(t, 3225000.0, invoice.RemainingAmount)

	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)
	require.NotNil(t, invoice.DueDate)
	assert.True(t, invoice.DueDate.Equal(date(2026, time.February, 5)))
	assert.Regexp(t, `^INV-[0-9A-Z]+-[0-9]{4,5}$`, invoice.InvoiceNumber)
}

func TestInvoiceApplyPayment(t *testing.T) {
	f := newFixture(t)
	f.invoices.Clock = func() time.Time { return date(2026, time.January, 20) }
	contract := seedActiveContract(t, f, "202", nil)

	invoice, err := f.invoices.Create(testOwnerID, InvoiceSpec{
		ContractID:           contract.ID,
		Month:                1,
		Year:                 2026,
		CurrentElectricIndex: 150,
		CurrentWaterIndex:    50,
		ServiceCharges:       ptr([]models.ServiceCharge{{Name: "Cleaning", Amount: 50000}}),
	})
	require.NoError(t, err)

	t.Run("partial payment", func(t *testing.T) {
		paid, err := f.invoices.ApplyPayment(testOwnerID, invoice.ID, 2000000, nil)
		require.NoError(t, err)
		assert.Equal(t, 1225000.0, paid.RemainingAmount)
		assert.Equal(t, models.InvoiceStatusPartial, paid.Status)
	})

	t.Run("full payment", func(t *testing.T) {
		when := date(2026, time.January, 25)
		paid, err := f.invoices.ApplyPayment(testOwnerID, invoice.ID, 3225000, &when)
		require.NoError(t, err)
		assert.Equal(t, 0.0, paid.RemainingAmount)
		assert.Equal(t, models.InvoiceStatusPaid, paid.Status)
		require.NotNil(t, paid.PaidDate)
		assert.True(t, paid.PaidDate.Equal(when))
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := f.invoices.ApplyPayment(testOwnerID, invoice.ID, -1, nil)
		assert.ErrorIs(t, err, ErrPaymentAmountInvalid)
	})
}

func TestInvoicePreviousIndexChaining(t *testing.T) {
	f := newFixture(t)
	f.invoices.Clock = func() time.Time { return date(2026, time.February, 20) }
	contract := seedActiveContract(t, f, "203", nil)

	_, err := f.invoices.Create(testOwnerID, InvoiceSpec{
		ContractID:           contract.ID,
		Month:                1,
		Year:                 2026,
		CurrentElectricIndex: 150,
		CurrentWaterIndex:    60,
	})
	require.NoError(t, err)

	t.Run("next period starts from last readings", func(t *testing.T) {
		second, err := f.invoices.Create(testOwnerID, InvoiceSpec{
			ContractID:           contract.ID,
			Month:                2,
			Year:                 2026,
			CurrentElectricIndex: 180,
			CurrentWaterIndex:    65,
		})
		require.NoError(t, err)
		assert.Equal(t, 150.0, second.PreviousElectricIndex)
		assert.Equal(t, 60.0, second.PreviousWaterIndex)
		assert.Equal(t, 105000.0, second.ElectricityAmount) // 30 units x 3,500
		assert.Equal(t, 75000.0, second.WaterAmount)        // 5 units x 15,000
	})

	t.Run("explicit previous indices win", func(t *testing.T) {
		third, err := f.invoices.Create(testOwnerID, InvoiceSpec{
			ContractID:            contract.ID,
			Month:                 3,
			Year:                  2026,
			CurrentElectricIndex:  200,
			CurrentWaterIndex:     70,
			PreviousElectricIndex: ptr(190.0),
			PreviousWaterIndex:    ptr(68.0),
		})
		require.NoError(t, err)
		assert.Equal(t, 190.0, third.PreviousElectricIndex)
		assert.Equal(t, 68.0, third.PreviousWaterIndex)
	})
}

func TestInvoiceCreateRejections(t *testing.T) {
	f := newFixture(t)
	f.invoices.Clock = func() time.Time { return date(2026, time.January, 20) }
	contract := seedActiveContract(t, f, "204", nil)

	t.Run("meter running backwards", func(t *testing.T) {
		_, err := f.invoices.Create(testOwnerID, InvoiceSpec{
			ContractID:           contract.ID,
			Month:                1,
			Year:                 2026,
			CurrentElectricIndex: 90, // initial index is 100
			CurrentWaterIndex:    50,
		})
		assert.ErrorIs(t, err, ErrNegativeUsage)
	})

	t.Run("invalid billing period", func(t *testing.T) {
		_, err := f.invoices.Create(testOwnerID, InvoiceSpec{
			ContractID:           contract.ID,
			Month:                13,
			Year:                 2026,
			CurrentElectricIndex: 150,
			CurrentWaterIndex:    50,
		})
		assert.ErrorIs(t, err, ErrBillingPeriodInvalid)
	})

	t.Run("duplicate billing period", func(t *testing.T) {
		spec := InvoiceSpec{
			ContractID:           contract.ID,
			Month:                1,
			Year:                 2026,
			CurrentElectricIndex: 150,
			CurrentWaterIndex:    50,
		}
		_, err := f.invoices.Create(testOwnerID, spec)
		require.NoError(t, err)

		_, err = f.invoices.Create(testOwnerID, spec)
		assert.ErrorIs(t, err, ErrInvoicePeriodExists)
	})

	t.Run("short-term contracts are not invoiceable", func(t *testing.T) {
		room := f.seedRoom(t, "204B", models.PricingConfiguration{
			RoomType:             models.RoomTypeShortTerm,
			ShortTermPricingType: models.ShortTermPricingFixed,
			FixedPrice:           500000,
		})
		tenant := f.seedTenant(t, "Short Stay")
		spec := draftSpec(room.ID, tenant.ID)
		spec.Status = models.ContractStatusActive
		shortTerm, err := f.contracts.Create(testOwnerID, spec)
		require.NoError(t, err)

		_, err = f.invoices.Create(testOwnerID, InvoiceSpec{
			ContractID:           shortTerm.ID,
			Month:                1,
			Year:                 2026,
			CurrentElectricIndex: 1,
			CurrentWaterIndex:    1,
		})
		assert.ErrorIs(t, err, ErrContractNotLongTerm)
	})
}

func TestInvoiceRecurringChargesDefault(t *testing.T) {
	f := newFixture(t)
	f.invoices.Clock = func() time.Time { return date(2026, time.January, 20) }
	contract := seedActiveContract(t, f, "205", []models.ServiceCharge{
		{Name: "Parking", Amount: 100000, IsRecurring: true},
		{Name: "Move-in Fee", Amount: 300000},
	})

	invoice, err := f.invoices.Create(testOwnerID, InvoiceSpec{
		ContractID:           contract.ID,
		Month:                1,
		Year:                 2026,
		CurrentElectricIndex: 100,
		CurrentWaterIndex:    50,
	})
	require.NoError(t, err)

	// only the recurring charge carries over; the one-off fee does not
	require.Len(t, invoice.ServiceCharges, 1)
	assert.Equal(t, "Parking", invoice.ServiceCharges[0].Name)
	assert.Equal(t, 100000.0, invoice.ServiceAmount)
	assert.Equal(t, 3100000.0, invoice.TotalAmount)
}

func TestInvoiceOverdueStatus(t *testing.T) {
	f := newFixture(t)
	now := date(2026, time.January, 20)
	f.invoices.Clock = func() time.Time { return now }
	contract := seedActiveContract(t, f, "206", nil)

	invoice, err := f.invoices.Create(testOwnerID, InvoiceSpec{
		ContractID:           contract.ID,
		Month:                1,
		Year:                 2026,
		CurrentElectricIndex: 150,
		CurrentWaterIndex:    50,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)

	// move past the due date; refresh flips the unpaid invoice to OVERDUE
	now = date(2026, time.February, 6)
	refreshed, err := f.invoices.RefreshStatus(testOwnerID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusOverdue, refreshed.Status)

	// a partial payment past due stays OVERDUE, full payment settles it
	partial, err := f.invoices.ApplyPayment(testOwnerID, invoice.ID, 1000, nil)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusOverdue, partial.Status)

	paid, err := f.invoices.ApplyPayment(testOwnerID, invoice.ID, partial.TotalAmount, nil)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paid.Status)
}

func TestDefaultDueDateClamping(t *testing.T) {
	// due day 31 in a January period lands in February and clamps to the 28th
	assert.Equal(t, date(2026, time.February, 28), defaultDueDate(2026, 1, 31))
	// december rolls into january of the next year
	assert.Equal(t, date(2027, time.January, 5), defaultDueDate(2026, 12, 5))
	// non-positive due day floors at the 1st
	assert.Equal(t, date(2026, time.April, 1), defaultDueDate(2026, 3, 0))
}
