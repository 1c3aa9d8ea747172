package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNil(t *testing.T) {
	var err error
	assert.True(t, IsNil(err))

	var traceableErr Error = NilError
	assert.True(t, IsNil(traceableErr))
	assert.True(t, IsNil(Wrap(nil)))

	assert.False(t, IsNil(Errorf("bad square %v", "z9")))
	assert.False(t, IsNil(Wrap(errors.New("boom"))))
}

func TestJoin(t *testing.T) {
	assert.True(t, IsNil(Join(NilError, NilError)))

	a := Errorf("first")
	b := Errorf("second")
	joined := Join(a, NilError, b)
	assert.Equal(t, 2, joined.NumErrors())
	assert.Contains(t, joined.Error(), "first")
	assert.Contains(t, joined.Error(), "second")
	assert.Equal(t, "first", joined.Message())
}

func TestErrorRef(t *testing.T) {
	ref := ErrorRef{}
	assert.False(t, ref.HasError())
	assert.True(t, IsNil(ref.Error()))

	ref.Add(NilError)
	assert.False(t, ref.HasError())

	copied := ref
	ref.Add(Errorf("one"))
	ref.Add(Errorf("two"))
	assert.True(t, ref.HasError())
	assert.Equal(t, 2, ref.NumErrors())
	assert.Equal(t, 0, copied.NumErrors())
}
