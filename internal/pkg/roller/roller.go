// Package roller provides dice.Roller implementations whose results can be
// reproduced, either from a seed or from a fixed script.
package roller

import (
	"math/rand"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

var (
	_ dice.Roller = (*Seeded)(nil)
	_ dice.Roller = (*Scripted)(nil)
)

// Seeded rolls from a pseudo-random source started at a fixed seed. Two
// rollers with the same seed produce the same sequence.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a roller from a seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// Roll returns a value in [1, size]
func (r *Seeded) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(size) + 1, nil
}

// RollN rolls count dice of the given size
func (r *Seeded) RollN(count, size int) ([]int, error) {
	return rollN(r, count, size)
}

// Scripted returns a fixed sequence of results, wrapping around at the end.
// Each value is reduced into [1, size] so a script works for any die.
type Scripted struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewScripted creates a roller that replays values in order
func NewScripted(values ...int) *Scripted {
	if len(values) == 0 {
		values = []int{1}
	}
	return &Scripted{values: values}
}

// Roll returns the next scripted value
func (r *Scripted) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	v := r.values[r.next%len(r.values)]
	r.next++
	return ((v-1)%size+size)%size + 1, nil
}

// RollN rolls count dice of the given size
func (r *Scripted) RollN(count, size int) ([]int, error) {
	return rollN(r, count, size)
}

// Calls returns how many dice have been rolled
func (r *Scripted) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next
}

func rollN(r dice.Roller, count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative, got %d", count)
	}
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
