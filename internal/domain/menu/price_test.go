package menu

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_UnmarshalJSON(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		var p Price
		require.NoError(t, json.Unmarshal([]byte(`45000`), &p))
		n, ok := p.Number()
		require.True(t, ok)
		assert.InDelta(t, 45000, n, 0.001)
	})

	t.Run("fractional number", func(t *testing.T) {
		var p Price
		require.NoError(t, json.Unmarshal([]byte(`1499.9`), &p))
		n, ok := p.Number()
		require.True(t, ok)
		assert.InDelta(t, 1499.9, n, 0.001)
	})

	t.Run("string", func(t *testing.T) {
		var p Price
		require.NoError(t, json.Unmarshal([]byte(`"$12.90"`), &p))
		s, ok := p.Text()
		require.True(t, ok)
		assert.Equal(t, "$12.90", s)
	})

	t.Run("null", func(t *testing.T) {
		var p Price
		require.NoError(t, json.Unmarshal([]byte(`null`), &p))
		assert.True(t, p.IsAbsent())
	})

	t.Run("object rejected", func(t *testing.T) {
		var p Price
		assert.Error(t, json.Unmarshal([]byte(`{"v":1}`), &p))
	})
}

func TestPrice_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NumberPrice(45000))
	require.NoError(t, err)
	assert.Equal(t, `45000`, string(data))

	data, err = json.Marshal(TextPrice("$5"))
	require.NoError(t, err)
	assert.Equal(t, `"$5"`, string(data))

	data, err = json.Marshal(Price{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}
