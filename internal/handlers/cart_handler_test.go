package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keoroanthony/go-food-ordering/internal/cart"
)

type cartResponse struct {
	Items []cart.Line `json:"items"`
	Total string      `json:"total"`
}

func TestCartHandlers(t *testing.T) {
	env := setupTestRouter(t)
	const browser = "browser-1"

	t.Run("Adding the same item merges into one line", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			recorder := env.performRequest(http.MethodPost, "/api/cart/items", map[string]interface{}{"id": 1}, "", browser)
			require.Equal(t, http.StatusOK, recorder.Code)
		}

		var response cartResponse
		decode(t, env.performRequest(http.MethodGet, "/api/cart", nil, "", browser), &response)
		require.Len(t, response.Items, 1)
		assert.Equal(t, 3, response.Items[0].Quantity)
		assert.Equal(t, "30", response.Total)
	})

	t.Run("Cart is persisted per browser", func(t *testing.T) {
		lines, ok, err := env.carts.Load(context.Background(), cart.Key(browser))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Len(t, lines, 1)

		var response cartResponse
		decode(t, env.performRequest(http.MethodGet, "/api/cart", nil, "", "browser-2"), &response)
		assert.Empty(t, response.Items)
	})

	t.Run("Quantity never drops below one", func(t *testing.T) {
		recorder := env.performRequest(http.MethodPatch, "/api/cart/items/1", map[string]interface{}{"quantity": 0}, "", browser)
		require.Equal(t, http.StatusOK, recorder.Code)

		var response cartResponse
		decode(t, recorder, &response)
		assert.Equal(t, 1, response.Items[0].Quantity)
		assert.Equal(t, "10", response.Total)
	})

	t.Run("Unknown menu item is rejected", func(t *testing.T) {
		recorder := env.performRequest(http.MethodPost, "/api/cart/items", map[string]interface{}{"id": 99}, "", browser)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Remove and clear", func(t *testing.T) {
		env.performRequest(http.MethodPost, "/api/cart/items", map[string]interface{}{"id": 2}, "", browser)

		var response cartResponse
		decode(t, env.performRequest(http.MethodDelete, "/api/cart/items/1", nil, "", browser), &response)
		require.Len(t, response.Items, 1)
		assert.Equal(t, uint(2), response.Items[0].ID)

		decode(t, env.performRequest(http.MethodDelete, "/api/cart", nil, "", browser), &response)
		assert.Empty(t, response.Items)
		assert.Equal(t, "0", response.Total)
	})

	t.Run("First visit issues a cart id", func(t *testing.T) {
		recorder := env.performRequest(http.MethodGet, "/api/cart", nil, "", "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get("Set-Cookie"))
	})
}
