package dl

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// UnknownSize marks a response without a usable Content-Length.
const UnknownSize int64 = -1

// ChunkSize picks the read/write block size for a transfer of total bytes.
// Small files get fine grained progress, large ones fewer syscalls. Each
// bucket includes its lower bound.
func ChunkSize(total int64) int {
	switch {
	case total < 0:
		return 8 * kib
	case total < mib:
		return kib
	case total < 100*mib:
		return 8 * kib
	case total < gib:
		return 64 * kib
	default:
		return 256 * kib
	}
}
