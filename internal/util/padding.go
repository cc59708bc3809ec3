package util

import (
	"sync/atomic"
	"unsafe"
)

// CacheLineSize matches typical modern CPUs. The runtime's own constant is
// unexported; 64 is right on every platform this module targets.
const CacheLineSize = 64

// PaddedAtomicInt64 is an atomic int64 occupying a full cache line, so that
// hot counters updated by different goroutines never share a line.
type PaddedAtomicInt64 struct {
	atomic.Int64
	_ [CacheLineSize - 8]byte
}

// Size must stay exactly one cache line.
var _ [CacheLineSize - int(unsafe.Sizeof(PaddedAtomicInt64{}))]byte
