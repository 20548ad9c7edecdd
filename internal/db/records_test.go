package db_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keoroanthony/go-food-ordering/internal/backend"
	"github.com/Keoroanthony/go-food-ordering/internal/db"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
	"github.com/Keoroanthony/go-food-ordering/internal/testkit"
)

func TestClientCreateAndQuery(t *testing.T) {
	client := db.NewClient(testkit.NewDB(t), 0)
	ctx := context.Background()

	for _, item := range []models.MenuItem{
		{Name: "Margherita", Price: decimal.NewFromInt(9), Category: "Pizza"},
		{Name: "Pepperoni", Price: decimal.NewFromInt(11), Category: "Pizza"},
		{Name: "Tiramisu", Price: decimal.NewFromInt(6), Category: "Dessert"},
	} {
		item := item
		require.NoError(t, client.CreateRecord(ctx, backend.TableMenuItems, &item))
		assert.Greater(t, item.ID, uint(0))
	}

	var pizzas []models.MenuItem
	err := client.QueryRecords(ctx, backend.TableMenuItems, backend.Query{
		Filter:  backend.Filter{"category": "Pizza"},
		OrderBy: "price desc",
	}, &pizzas)
	require.NoError(t, err)
	require.Len(t, pizzas, 2)
	assert.Equal(t, "Pepperoni", pizzas[0].Name)
	assert.True(t, decimal.NewFromInt(11).Equal(pizzas[0].Price))

	var some []models.MenuItem
	err = client.QueryRecords(ctx, backend.TableMenuItems, backend.Query{
		Filter: backend.Filter{"category": []string{"Pizza", "Dessert"}},
		Limit:  2,
	}, &some)
	require.NoError(t, err)
	assert.Len(t, some, 2)
}

func TestClientOrderWithItems(t *testing.T) {
	client := db.NewClient(testkit.NewDB(t), 0)
	ctx := context.Background()

	order := models.Order{
		UserID:          "u-1",
		Status:          models.StatusPending,
		TotalPrice:      decimal.NewFromInt(30),
		CustomerName:    "Ada",
		CustomerAddress: "1 Loop Rd",
		PaymentMethod:   models.PaymentPayPal,
		Items: []models.OrderItem{
			{ProductID: 1, Name: "Pizza", Quantity: 3, Price: decimal.NewFromInt(10)},
		},
	}
	require.NoError(t, client.CreateRecord(ctx, backend.TableOrders, &order))

	var stored []models.Order
	err := client.QueryRecords(ctx, backend.TableOrders, backend.Query{
		Filter:  backend.Filter{"id": order.ID},
		Include: []string{"Items"},
	}, &stored)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Len(t, stored[0].Items, 1)
	assert.Equal(t, "Pizza", stored[0].Items[0].Name)
	assert.Equal(t, uint(3), stored[0].Items[0].Quantity)
}

func TestClientConditionalUpdate(t *testing.T) {
	client := db.NewClient(testkit.NewDB(t), 0)
	ctx := context.Background()

	order := models.Order{
		Status:          models.StatusPending,
		TotalPrice:      decimal.NewFromInt(5),
		CustomerName:    "Ada",
		CustomerAddress: "1 Loop Rd",
		PaymentMethod:   models.PaymentCreditCard,
	}
	require.NoError(t, client.CreateRecord(ctx, backend.TableOrders, &order))

	n, err := client.UpdateRecords(ctx, backend.TableOrders,
		backend.Filter{"id": order.ID, "status": string(models.StatusPreparing)},
		map[string]any{"status": string(models.StatusCancelled)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = client.UpdateRecords(ctx, backend.TableOrders,
		backend.Filter{"id": order.ID, "status": string(models.StatusPending)},
		map[string]any{"status": string(models.StatusCancelled)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = client.UpdateRecords(ctx, backend.TableOrders, nil, map[string]any{"status": "x"})
	assert.Error(t, err)
}
