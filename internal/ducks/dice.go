package ducks

import (
	"math/rand/v2"
	"sync"
)

// Dice is the source of randomness for every game roll. Implementations
// return a value in [0, n).
type Dice interface {
	IntN(n int) int
}

type systemDice struct{}

func (systemDice) IntN(n int) int {
	return rand.IntN(n)
}

// SystemDice returns a Dice backed by the global generator.
func SystemDice() Dice {
	return systemDice{}
}

type seededDice struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (d *seededDice) IntN(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.IntN(n)
}

// SeededDice returns a reproducible Dice safe for concurrent use.
func SeededDice(seed uint64) Dice {
	return &seededDice{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
