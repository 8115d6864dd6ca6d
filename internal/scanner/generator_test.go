package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorCompleteness(t *testing.T) {
	g := Generator{MinTier: 4, MaxTier: 8, MaxEnchant: 3}
	require.NoError(t, g.Validate())

	variants := g.All([]string{"A", "B"})
	require.Len(t, variants, 40) // 5 tiers x 4 enchants x 2 bases

	seen := make(map[string]bool)
	for _, v := range variants {
		assert.False(t, seen[v.ItemID], "duplicate item id %s", v.ItemID)
		seen[v.ItemID] = true

		if v.Enchantment == 0 {
			assert.NotContains(t, v.ItemID, "@")
		} else {
			assert.Contains(t, v.ItemID, "@")
		}
	}
}

func TestGeneratorOrdering(t *testing.T) {
	g := Generator{MinTier: 4, MaxTier: 5, MaxEnchant: 1}

	variants := g.All([]string{"BAG"})
	want := []string{"T4_BAG", "T4_BAG@1", "T5_BAG", "T5_BAG@1"}
	require.Len(t, variants, len(want))
	for i, id := range want {
		assert.Equal(t, id, variants[i].ItemID)
	}
}

func TestGeneratorRestartable(t *testing.T) {
	g := Generator{MinTier: 4, MaxTier: 8, MaxEnchant: 3}

	first := g.All([]string{"BAG"})
	second := g.All([]string{"BAG"})
	assert.Equal(t, first, second)
}

func TestGeneratorEachStopsEarly(t *testing.T) {
	g := Generator{MinTier: 4, MaxTier: 8, MaxEnchant: 3}

	var got []string
	g.Each([]string{"BAG"}, func(v Variant) bool {
		got = append(got, v.ItemID)
		return len(got) < 3
	})
	assert.Equal(t, []string{"T4_BAG", "T4_BAG@1", "T4_BAG@2"}, got)
}

func TestGeneratorInvalidRange(t *testing.T) {
	err := Generator{MinTier: 8, MaxTier: 4, MaxEnchant: 3}.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "tier range"))

	err = Generator{MinTier: 4, MaxTier: 8, MaxEnchant: -1}.Validate()
	require.Error(t, err)
}

func TestItemID(t *testing.T) {
	assert.Equal(t, "T4_BAG", ItemID(4, "BAG", 0))
	assert.Equal(t, "T8_2H_BOW@3", ItemID(8, "2H_BOW", 3))
}
