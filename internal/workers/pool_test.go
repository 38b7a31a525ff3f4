package workers

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelForVisitsEveryIndexOnce(t *testing.T) {
	p := NewPool(4)
	p.Start()
	defer p.Stop()

	for _, n := range []int{1, 3, 4, 5, 17, 320} {
		counts := make([]int32, n)
		p.ParallelFor(0, n, func(i int) {
			atomic.AddInt32(&counts[i], 1)
		})
		for i, c := range counts {
			assert.Equal(t, int32(1), c, "n=%d index %d", n, i)
		}
	}
}

func TestParallelForEmptyRange(t *testing.T) {
	p := NewPool(2)
	p.Start()
	defer p.Stop()

	called := false
	p.ParallelFor(5, 5, func(int) { called = true })
	p.ParallelFor(5, 2, func(int) { called = true })
	assert.False(t, called)
}

func TestRangeInlineWithoutPool(t *testing.T) {
	var got []int
	Range(nil, 2, 6, func(i int) { got = append(got, i) })
	assert.Equal(t, []int{2, 3, 4, 5}, got)
}

func TestNewPoolDefaultsToCPUCount(t *testing.T) {
	assert.Equal(t, runtime.NumCPU(), NewPool(0).Workers())
	assert.Equal(t, 3, NewPool(3).Workers())
}

func TestStopIsIdempotent(t *testing.T) {
	p := NewPool(1)
	p.Start()
	p.Stop()
	assert.NotPanics(t, p.Stop)
}
