package dl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkSize(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		want  int
	}{
		{"unknown", UnknownSize, 8192},
		{"empty", 0, 1024},
		{"small", 512 * kib, 1024},
		{"just under 1MiB", mib - 1, 1024},
		{"1MiB", mib, 8192},
		{"just under 100MiB", 100*mib - 1, 8192},
		{"100MiB", 100 * mib, 65536},
		{"just under 1GiB", gib - 1, 65536},
		{"1GiB", gib, 262144},
		{"huge", 50 * gib, 262144},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ChunkSize(c.total))
		})
	}
}

func TestChunkSizeIsOneOfTheBuckets(t *testing.T) {
	allowed := map[int]bool{1024: true, 8192: true, 65536: true, 262144: true}
	for s := int64(0); s < 4*gib; s += 7*mib + 12345 {
		if !allowed[ChunkSize(s)] {
			t.Fatalf("ChunkSize(%d) = %d", s, ChunkSize(s))
		}
	}
}
