package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_Decoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    float64
		present bool
	}{
		{name: "number", raw: `3`, want: 3, present: true},
		{name: "decimal", raw: `2.5`, want: 2.5, present: true},
		{name: "numeric string", raw: `"4"`, want: 4, present: true},
		{name: "padded string", raw: `" 7 "`, want: 7, present: true},
		{name: "garbage string", raw: `"abc"`, present: false},
		{name: "null", raw: `null`, present: false},
		{name: "object", raw: `{"x":1}`, present: false},
		{name: "bool", raw: `true`, present: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &n))

			v, ok := n.Float64()
			assert.Equal(t, tt.present, ok)
			if tt.present {
				assert.InDelta(t, tt.want, v, 1e-9)
			}
		})
	}
}

func TestNumber_PositiveInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{raw: `5`, want: 5, ok: true},
		{raw: `"12"`, want: 12, ok: true},
		{raw: `0`, ok: false},
		{raw: `-2`, ok: false},
		{raw: `2.5`, ok: false},
		{raw: `null`, ok: false},
	}

	for _, tt := range tests {
		var n Number
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &n))

		v, ok := n.PositiveInt()
		assert.Equal(t, tt.ok, ok, "raw %s", tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, v)
		}
	}
}

func TestOrderRequest_ItemsVersusCartPresence(t *testing.T) {
	t.Parallel()

	var req OrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"cart": [{"id": 1, "qty": 2}]}`), &req))
	assert.Nil(t, req.Items)
	require.NotNil(t, req.Cart)
	assert.Len(t, *req.Cart, 1)

	req = OrderRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"items": [], "cart": null}`), &req))
	require.NotNil(t, req.Items)
	assert.Empty(t, *req.Items)
	assert.Nil(t, req.Cart)
}
