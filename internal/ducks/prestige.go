package ducks

// PrestigeBucket grants Percent chance while kills today <= UpTo.
type PrestigeBucket struct {
	UpTo    int
	Percent int
}

// PrestigeCurve is the decaying chance of a bonus on natural kills,
// bucketed by the hunter's kills today.
type PrestigeCurve struct {
	Buckets []PrestigeBucket
	Beyond  int
	Bonus   int64
}

// DefaultPrestigeCurve returns the stock tuning.
func DefaultPrestigeCurve() PrestigeCurve {
	return PrestigeCurve{
		Buckets: []PrestigeBucket{
			{UpTo: 5, Percent: 100},
			{UpTo: 10, Percent: 50},
			{UpTo: 50, Percent: 10},
			{UpTo: 100, Percent: 7},
		},
		Beyond: 2,
		Bonus:  5,
	}
}

// Chance returns the bonus percent for the given kills-today count.
// Buckets must be sorted by UpTo.
func (c PrestigeCurve) Chance(killsToday int) int {
	for _, b := range c.Buckets {
		if killsToday <= b.UpTo {
			return b.Percent
		}
	}
	return c.Beyond
}

// Roll reports whether the bonus is granted.
func (c PrestigeCurve) Roll(killsToday int, dice Dice) bool {
	chance := c.Chance(killsToday)
	if chance <= 0 || c.Bonus == 0 {
		return false
	}
	return chance >= 100 || dice.IntN(100) < chance
}
