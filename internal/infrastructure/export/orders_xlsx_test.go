package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dukkan/internal/domain/entity"
)

func TestWriteOrders(t *testing.T) {
	orders := []*entity.Order{
		{
			ID:        "o1",
			Status:    entity.OrderCompleted,
			UserPhone: "0770",
			Customer:  entity.OrderCustomer{Name: "علي", Phone: "0780", Province: "بغداد"},
			Items: []entity.OrderItem{
				{Name: "قميص", Quantity: 2, Color: "أحمر"},
				{Name: "حذاء", Quantity: 1},
			},
			CustomerPrice: 30000, DeliveryFee: 5000, TotalWithDelivery: 35000, WholesaleTotal: 25000, Profit: 5000,
			CreatedAt: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC),
		},
		{ID: "o2", Status: entity.OrderPending, CustomerPrice: 10000, TotalWithDelivery: 10000, WholesaleTotal: 8000, Profit: 2000},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, orders))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ordersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, orderHeaders[0], rows[0][0])
	assert.Equal(t, "o1", rows[1][0])
	assert.Equal(t, "completed", rows[1][2])
	assert.Equal(t, "قميص × 2 (أحمر)، حذاء × 1", rows[1][8])
	assert.Equal(t, "المجموع", rows[3][0])
	assert.Equal(t, "7000", rows[3][13])
}

func TestWriteOrdersEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ordersSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
