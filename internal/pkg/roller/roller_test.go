package roller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/roller"
)

func TestSeededIsReproducible(t *testing.T) {
	a := roller.NewSeeded(42)
	b := roller.NewSeeded(42)

	ra, err := a.RollN(20, 6)
	require.NoError(t, err)
	rb, err := b.RollN(20, 6)
	require.NoError(t, err)

	assert.Equal(t, ra, rb)
	for _, v := range ra {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 6)
	}
}

func TestSeededRejectsBadSize(t *testing.T) {
	_, err := roller.NewSeeded(1).Roll(0)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestScripted(t *testing.T) {
	r := roller.NewScripted(1, 2, 7)

	got, err := r.RollN(4, 2)
	require.NoError(t, err)
	// 7 on a d2 wraps to 1, then the script starts over
	assert.Equal(t, []int{1, 2, 1, 1}, got)
	assert.Equal(t, 4, r.Calls())

	v, err := r.Roll(20)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestScriptedWrapsNegativeValues(t *testing.T) {
	r := roller.NewScripted(-6, -7, 0)

	got, err := r.RollN(3, 6)
	require.NoError(t, err)
	// -6 and 0 land on 6, -7 lands on 5
	assert.Equal(t, []int{6, 5, 6}, got)
}
