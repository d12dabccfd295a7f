package domain

import "math"

// Gelds is the in-game currency, shown to players as "Data".
type Gelds uint64

// Add returns g+o, saturating at the maximum representable amount.
func (g Gelds) Add(o Gelds) Gelds {
	if g > math.MaxUint64-o {
		return math.MaxUint64
	}
	return g + o
}

// Mul returns g*n, saturating at the maximum representable amount.
func (g Gelds) Mul(n uint64) Gelds {
	if g == 0 || n == 0 {
		return 0
	}
	if uint64(g) > math.MaxUint64/n {
		return math.MaxUint64
	}
	return g * Gelds(n)
}

// Sub returns g-o and false when o exceeds g, leaving the balance untouched.
func (g Gelds) Sub(o Gelds) (Gelds, bool) {
	if o > g {
		return g, false
	}
	return g - o, true
}

// CanAfford reports whether the balance covers cost.
func (g Gelds) CanAfford(cost Gelds) bool {
	return g >= cost
}
