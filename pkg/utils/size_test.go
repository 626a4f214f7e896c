package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsedFormat(t *testing.T) {
	assert.Equal(t, "0m 0s", ElapsedFormat(0))
	assert.Equal(t, "0m 59s", ElapsedFormat(59900*time.Millisecond))
	assert.Equal(t, "2m 5s", ElapsedFormat(125*time.Second))
	assert.Equal(t, "61m 1s", ElapsedFormat(time.Hour+61*time.Second))
	assert.Equal(t, "0m 0s", ElapsedFormat(-time.Second))
}

func TestMiBFormat(t *testing.T) {
	assert.Equal(t, "0.00 MiB", MiBFormat(0))
	assert.Equal(t, "1.50 MiB", MiBFormat(MiB+MiB/2))
}

func TestETAFormat(t *testing.T) {
	assert.Equal(t, "--", ETAFormat(100, 0))
	assert.Equal(t, "0s", ETAFormat(0, 10))
	assert.Equal(t, "10s", ETAFormat(100, 10))
	assert.Equal(t, "2m0s", ETAFormat(1200, 10))
}

func TestRateFormat(t *testing.T) {
	assert.Equal(t, "0 B/s", RateFormat(0))
	assert.Equal(t, "0 B/s", RateFormat(-5))
	assert.Equal(t, "512 B/s", RateFormat(512))
	assert.Equal(t, "2.0 KiB/s", RateFormat(2048))
	assert.Equal(t, "1.5 MiB/s", RateFormat(1.5*MiB))
}
