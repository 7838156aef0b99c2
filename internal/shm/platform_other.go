//go:build !linux && !windows

package shm

import "context"

// ObjectName returns name unchanged.
func ObjectName(name string) string {
	return name
}

// MapRegion is not implemented on this platform.
func MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	return nil, ErrUnsupportedPlatform
}

// UnmapRegion is not implemented on this platform.
func UnmapRegion(ctx context.Context, region *MappedRegion) error {
	return nil
}

// RemoveRegion is not implemented on this platform.
func RemoveRegion(name string) error {
	return nil
}
