package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"CANTINA", "BAR"} {
		c, err := ParseCategory(valid)
		require.NoError(t, err)
		assert.Equal(t, Category(valid), c)
	}
	for _, invalid := range []string{"", "cantina", "TAKEAWAY", "BAR "} {
		_, err := ParseCategory(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestProductOptionalImage(t *testing.T) {
	var products []Product
	err := json.Unmarshal([]byte(`[
		{"id":1,"name":"Café","category":"drinks","price":0.70},
		{"id":2,"name":"Tosta","category":"snacks","price":2.20,"image":"tosta.png"}
	]`), &products)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Nil(t, products[0].Image)
	require.NotNil(t, products[1].Image)
	assert.True(t, products[0].Price.Equal(decimal.New(70, -2)))
}
