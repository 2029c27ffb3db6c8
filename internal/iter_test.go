package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := []string{"x", "y"}
	b := []string{"z"}

	keys := []int{}
	values := []string{}
	for key, value := range IterSeq2Concat(slices.All(a), slices.All(b)) {
		keys = append(keys, key)
		values = append(values, value)
	}
	assert.Equal([]int{0, 1, 0}, keys)
	assert.Equal([]string{"x", "y", "z"}, values)

	count := 0
	for range IterSeq2Concat(slices.All(a), slices.All(b)) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)

	assert.Equal(0, len(maps.Collect(IterSeq2Concat[string, int]())))
}
