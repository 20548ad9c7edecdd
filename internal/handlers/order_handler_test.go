package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

func checkoutBody() map[string]interface{} {
	return map[string]interface{}{
		"customer_name":    "Ada Lovelace",
		"customer_address": "12 Analytical Row",
		"payment_method":   "Credit Card",
	}
}

func placeOrder(t *testing.T, env *testEnv, userID, browser string) uint {
	t.Helper()
	env.performRequest(http.MethodPost, "/api/cart/items", map[string]interface{}{"id": 1}, "", browser)

	recorder := env.performRequest(http.MethodPost, "/api/orders", checkoutBody(), userID, browser)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response struct {
		Message string `json:"message"`
		OrderID uint   `json:"order_id"`
	}
	decode(t, recorder, &response)
	assert.Equal(t, "order created successfully", response.Message)
	return response.OrderID
}

func TestCreateOrderHandler(t *testing.T) {
	env := setupTestRouter(t)

	t.Run("Returns 401 without a session", func(t *testing.T) {
		recorder := env.performRequest(http.MethodPost, "/api/orders", checkoutBody(), "", "b1")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Returns 400 for an empty cart without writing", func(t *testing.T) {
		recorder := env.performRequest(http.MethodPost, "/api/orders", checkoutBody(), "cust-1", "b1")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "cart")
		assert.Equal(t, 0, env.records.CreateCount())
	})

	t.Run("Returns 400 for missing customer details", func(t *testing.T) {
		env.performRequest(http.MethodPost, "/api/cart/items", map[string]interface{}{"id": 1}, "", "b1")

		recorder := env.performRequest(http.MethodPost, "/api/orders", map[string]interface{}{"payment_method": "Cheque"}, "cust-1", "b1")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var response map[string]string
		decode(t, recorder, &response)
		assert.Equal(t, "missing or invalid: customer_name, customer_address, payment_method", response["error"])
	})

	t.Run("Successfully creates an order and clears the cart", func(t *testing.T) {
		id := placeOrder(t, env, "cust-1", "b1")

		var order models.Order
		require.NoError(t, env.db.Preload("Items").First(&order, id).Error)
		assert.Equal(t, models.StatusPending, order.Status)
		assert.Equal(t, "cust-1", order.UserID)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, uint(2), order.Items[0].Quantity)

		var cartState cartResponse
		decode(t, env.performRequest(http.MethodGet, "/api/cart", nil, "", "b1"), &cartState)
		assert.Empty(t, cartState.Items)
	})
}

func TestOrderTrackingHandlers(t *testing.T) {
	env := setupTestRouter(t)
	first := placeOrder(t, env, "cust-1", "b1")
	second := placeOrder(t, env, "cust-2", "b2")

	t.Run("Customers list only their orders", func(t *testing.T) {
		var list []models.Order
		decode(t, env.performRequest(http.MethodGet, "/api/orders", nil, "cust-1", ""), &list)
		require.Len(t, list, 1)
		assert.Equal(t, first, list[0].ID)

		assert.Equal(t, http.StatusForbidden, env.performRequest(http.MethodGet, "/api/orders/"+itoa(second), nil, "cust-1", "").Code)
	})

	t.Run("Admins list every order", func(t *testing.T) {
		var list []models.Order
		decode(t, env.performRequest(http.MethodGet, "/api/orders", nil, "admin-1", ""), &list)
		assert.Len(t, list, 2)
	})

	t.Run("Only admins update status and only forwards", func(t *testing.T) {
		path := "/api/orders/" + itoa(second) + "/status"

		assert.Equal(t, http.StatusForbidden, env.performRequest(http.MethodPatch, path, map[string]string{"status": "Preparing"}, "cust-1", "").Code)
		assert.Equal(t, http.StatusBadRequest, env.performRequest(http.MethodPatch, path, map[string]string{"status": "Lost"}, "admin-1", "").Code)

		recorder := env.performRequest(http.MethodPatch, path, map[string]string{"status": "Delivered"}, "admin-1", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		var order models.Order
		decode(t, recorder, &order)
		assert.Equal(t, models.StatusDelivered, order.Status)

		recorder = env.performRequest(http.MethodPatch, path, map[string]string{"status": "Pending"}, "admin-1", "")
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("Owner cancels a pending order once", func(t *testing.T) {
		path := "/api/orders/" + itoa(first) + "/cancel"

		assert.Equal(t, http.StatusForbidden, env.performRequest(http.MethodPost, path, nil, "cust-2", "").Code)

		recorder := env.performRequest(http.MethodPost, path, nil, "cust-1", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		recorder = env.performRequest(http.MethodPost, path, nil, "cust-1", "")
		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Pending")
	})

	t.Run("Cancelling a preparing order is rejected", func(t *testing.T) {
		third := placeOrder(t, env, "cust-1", "b1")
		env.db.Model(&models.Order{}).Where("id = ?", third).Update("status", models.StatusPreparing)

		recorder := env.performRequest(http.MethodPost, "/api/orders/"+itoa(third)+"/cancel", nil, "cust-1", "")
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}
