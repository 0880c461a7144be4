package utils

import "sync"

var scratchPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 64)
	},
}

// GetScratch returns a reusable byte slice of at least size bytes, for the
// short-lived fixed-width scratch buffers the codec primitives use when
// packing/unpacking a single scalar.
func GetScratch(size int) []byte {
	buf := scratchPool.Get().([]byte)
	if cap(buf) < size {
		return make([]byte, size)
	}
	return buf[:size]
}

// ReleaseScratch returns buf to the pool.
func ReleaseScratch(buf []byte) {
	//nolint:staticcheck // SA6002: slice descriptor copy is acceptable for sync.Pool
	scratchPool.Put(buf[:0])
}
