package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProficiencyStore_RoundTrip(t *testing.T) {
	store := NewMemoryProficiencyStore()
	ctx := context.Background()

	levels, err := store.Load(ctx, "maria")
	require.NoError(t, err)
	assert.Empty(t, levels)

	require.NoError(t, store.Save(ctx, "maria", map[string]float64{
		"aritmetica": 1.25,
		"algebra":    0.85,
	}))

	levels, err = store.Load(ctx, "maria")
	require.NoError(t, err)
	assert.InDelta(t, 1.25, levels["aritmetica"], 1e-9)
	assert.InDelta(t, 0.85, levels["algebra"], 1e-9)

	// Other users stay isolated.
	other, err := store.Load(ctx, "carlos")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryProficiencyStore_DefensiveCopies(t *testing.T) {
	store := NewMemoryProficiencyStore()
	ctx := context.Background()

	input := map[string]float64{"aritmetica": 1.0}
	require.NoError(t, store.Save(ctx, "maria", input))
	input["aritmetica"] = 99.0

	levels, err := store.Load(ctx, "maria")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, levels["aritmetica"], 1e-9)

	// Mutating a loaded map must not leak back into the store.
	levels["aritmetica"] = 42.0
	reloaded, err := store.Load(ctx, "maria")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, reloaded["aritmetica"], 1e-9)
}
