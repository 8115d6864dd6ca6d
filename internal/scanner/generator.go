package scanner

import "fmt"

// Generator expands base item codes into the full set of tradeable variants,
// one per (base code, tier, enchantment) triple.
type Generator struct {
	MinTier    int
	MaxTier    int
	MaxEnchant int
}

// Validate reports malformed ranges as a configuration error.
func (g Generator) Validate() error {
	if g.MinTier > g.MaxTier {
		return fmt.Errorf("invalid tier range: min %d > max %d", g.MinTier, g.MaxTier)
	}
	if g.MaxEnchant < 0 {
		return fmt.Errorf("invalid enchantment range: max %d < 0", g.MaxEnchant)
	}
	return nil
}

// Each walks every variant for the given base codes, tiers ascending and
// enchantments ascending within each tier. The walk stops early when fn
// returns false. Each call restarts from the beginning.
func (g Generator) Each(baseCodes []string, fn func(Variant) bool) {
	for _, base := range baseCodes {
		for tier := g.MinTier; tier <= g.MaxTier; tier++ {
			for enchant := 0; enchant <= g.MaxEnchant; enchant++ {
				v := Variant{
					ItemID:      ItemID(tier, base, enchant),
					BaseCode:    base,
					Tier:        tier,
					Enchantment: enchant,
				}
				if !fn(v) {
					return
				}
			}
		}
	}
}

// All materializes the full variant sequence.
func (g Generator) All(baseCodes []string) []Variant {
	variants := make([]Variant, 0, len(baseCodes)*(g.MaxTier-g.MinTier+1)*(g.MaxEnchant+1))
	g.Each(baseCodes, func(v Variant) bool {
		variants = append(variants, v)
		return true
	})
	return variants
}

// ItemID derives the canonical item identifier: T{tier}_{base} for the plain
// variant, T{tier}_{base}@{enchant} for enchanted ones.
func ItemID(tier int, baseCode string, enchant int) string {
	if enchant == 0 {
		return fmt.Sprintf("T%d_%s", tier, baseCode)
	}
	return fmt.Sprintf("T%d_%s@%d", tier, baseCode, enchant)
}
