package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolReusesReleasedValues(t *testing.T) {
	get, release, stats := CreatePool(
		func() []int { return make([]int, 0, 8) },
		func(x *[]int) { *x = (*x)[:0] },
	)

	a := get()
	*a = append(*a, 1, 2, 3)
	release(a)

	b := get()
	assert.Same(t, a, b)
	assert.Empty(t, *b)
	assert.Equal(t, 8, cap(*b))

	assert.Equal(t, "creates: 1, resets: 1, hits: 1", stats().String())
}
