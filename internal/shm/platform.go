// Package shm contains the platform-specific mapping of named shared memory.
package shm

import "errors"

var (
	// ErrUnsupportedPlatform is returned where named shared memory is not implemented.
	ErrUnsupportedPlatform = errors.New("shm: named shared memory is not supported on this platform")
	// ErrInvalidSize is returned for a non-positive mapping size.
	ErrInvalidSize = errors.New("shm: invalid region size")
	// ErrNoSpace is returned when /dev/shm cannot hold a new region.
	ErrNoSpace = errors.New("shm: not enough space left for shared memory")
	// ErrRegionTooSmall is returned when an existing object is smaller than requested.
	ErrRegionTooSmall = errors.New("shm: existing region smaller than requested size")
)

// MappedRegion represents a memory-mapped shared region.
type MappedRegion struct {
	Addr []byte
	Name string
	Size int
	// platform handle, zero where the descriptor is closed right after mmap
	handle uintptr
}

// MapOptions defines options for mapping shared memory.
type MapOptions struct {
	Name string
	Size int
	// Create makes the object when the publisher has not created it yet.
	Create bool
	// Writable maps the view read-write; readers leave it false.
	Writable bool
}

// Function implementations are provided in platform-specific files (platform_linux.go, platform_windows.go, platform_other.go).
