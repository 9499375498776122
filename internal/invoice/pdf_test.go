package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

func TestRenderProducesPDF(t *testing.T) {
	order := &models.Order{
		ID:            42,
		CustomerName:  "Test Customer",
		CustomerPhone: "9876543210",
		PickupTime:    time.Date(2026, 8, 23, 17, 0, 0, 0, time.UTC),
		TotalAmount:   165,
		Status:        models.StatusPending,
		CreatedAt:     time.Date(2026, 8, 23, 9, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{OrderID: 42, ProductID: 1, Quantity: 0.5, Price: 120},
			{OrderID: 42, ProductID: 3, Quantity: 1, Price: 45},
			{OrderID: 42, ProductID: 99, Quantity: 2, Price: 30}, // deleted product
		},
	}
	products := map[uint]ProductInfo{
		1: {Name: "Fresh Apples", UnitType: "kg"},
		3: {Name: "Whole Wheat Bread", UnitType: "quantity"},
	}

	data, err := Render(order, products)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderEmptyItemsStillRenders(t *testing.T) {
	order := &models.Order{
		ID:            1,
		CustomerName:  "X",
		CustomerPhone: "1",
		PickupTime:    time.Now(),
		CreatedAt:     time.Now(),
		Status:        models.StatusCompleted,
	}

	data, err := Render(order, nil)
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(data[:4]))
}
