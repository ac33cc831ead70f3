package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptional(t *testing.T) {
	assert.True(t, Empty[int]().IsEmpty())
	assert.False(t, Some(3).IsEmpty())
	assert.Equal(t, 3, Some(3).Value())
	assert.Equal(t, 7, Empty[int]().ValueOr(7))
	assert.Equal(t, 3, Some(3).ValueOr(7))
}

func TestSliceHelpers(t *testing.T) {
	assert.Equal(t, []int{2, 4}, FilterSlice([]int{1, 2, 3, 4}, func(i int) bool {
		return i%2 == 0
	}))
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, func(i int) string {
		return string(rune('0' + i))
	}))
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))
	assert.Equal(t, 3, Last([]int{1, 2, 3}).Value())
	assert.True(t, Last([]int{}).IsEmpty())
}

func TestErrors(t *testing.T) {
	assert.True(t, IsNil(NilError))
	assert.True(t, IsNil(Wrap(nil)))
	assert.False(t, IsNil(Errorf("oops %v", 1)))
	assert.False(t, IsNil(Wrap(errors.New("oops"))))

	joined := Join(NilError, Errorf("a"), Errorf("b"))
	assert.False(t, IsNil(joined))
	assert.True(t, IsNil(Join(NilError, NilError)))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "$ a\n$ b", Indent("a\nb", "$ "))
}
