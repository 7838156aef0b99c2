package shm

import (
	"sync/atomic"
	"unsafe"
)

// LoadInt32 atomically loads the int32 at off in shared memory. off must be
// 4-byte aligned relative to a page-aligned mapping.
func LoadInt32(mem []byte, off int) int32 {
	return atomic.LoadInt32((*int32)(unsafe.Pointer(&mem[off])))
}

// StoreInt32 atomically stores val at off in shared memory.
func StoreInt32(mem []byte, off int, val int32) {
	atomic.StoreInt32((*int32)(unsafe.Pointer(&mem[off])), val)
}
