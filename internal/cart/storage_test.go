package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageMissingKey(t *testing.T) {
	lines, ok, err := NewMemoryStorage().Load(context.Background(), Key("nobody"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, lines)
}

func TestSerializedFieldNames(t *testing.T) {
	data, err := json.Marshal([]Line{{ID: 1, Name: "Pizza", Price: decimal.NewFromInt(10), Quantity: 3}})
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.ElementsMatch(t, []string{"id", "name", "price", "quantity"}, keys(raw[0]))
	assert.EqualValues(t, 1, raw[0]["id"])
	assert.EqualValues(t, 3, raw[0]["quantity"])
	assert.Equal(t, float64(10), raw[0]["price"])
}

func TestPriceIsWrittenAsNumber(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(ctx, Key("b1"), []Line{{ID: 2, Name: "Salad", Price: decimal.RequireFromString("7.50"), Quantity: 1}}))

	assert.JSONEq(t, `[{"id":2,"name":"Salad","price":7.5,"quantity":1}]`, string(storage.carts[Key("b1")]))

	lines, ok, err := storage.Load(ctx, Key("b1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("7.5").Equal(lines[0].Price))
}

func TestDecodeAcceptsNumericPrice(t *testing.T) {
	var lines []Line
	err := json.Unmarshal([]byte(`[{"id":4,"name":"Soup","price":4.25,"quantity":2}]`), &lines)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("8.5").Equal(Total(lines)))
}

func TestRedisStorageKey(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedisStorage(client, "", time.Hour)
	assert.Equal(t, "storefront:cart:abc", s.redisKey(Key("abc")))

	s = NewRedisStorage(client, "shop", time.Hour)
	assert.Equal(t, "shop:cart:abc", s.redisKey(Key("abc")))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
