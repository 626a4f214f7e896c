package progressbar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminateBar(t *testing.T) {
	var out bytes.Buffer
	b := New(WithTitle("dl"), WithTotal(200), WithInterval(0), WithOutput(&out))
	assert.True(t, b.Determinate())

	b.Add(100)
	assert.Contains(t, out.String(), "50.00%")
	assert.Contains(t, out.String(), "200 B")

	b.Add(100)
	b.Finish()
	assert.EqualValues(t, 200, b.Cur())
	assert.Contains(t, out.String(), "100.00%")
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestIndeterminateBar(t *testing.T) {
	var out bytes.Buffer
	b := New(WithTitle("dl"), WithInterval(0), WithOutput(&out))
	assert.False(t, b.Determinate())

	b.Add(10)
	b.Add(0)
	b.Finish()
	assert.EqualValues(t, 10, b.Cur())
	assert.Contains(t, out.String(), "10 B")
	assert.NotContains(t, out.String(), "%")
	assert.NotContains(t, out.String(), "ETA")
}

func TestBarThrottlesRendering(t *testing.T) {
	var out bytes.Buffer
	b := New(WithTotal(1000), WithOutput(&out))
	for i := 0; i < 100; i++ {
		b.Add(1)
	}
	assert.Empty(t, out.String())
	b.Finish()
	assert.Equal(t, 1, strings.Count(out.String(), "\r"))
}

func TestFinishRunsHookOnce(t *testing.T) {
	var calls int
	var out bytes.Buffer
	b := New(WithOutput(&out), WithFinishHook(func() { calls++ }))
	b.Finish()
	b.Finish()
	b.Add(5)
	assert.Equal(t, 1, calls)
	assert.EqualValues(t, 0, b.Cur())
}
